// Package encode converts values into their canonical little-endian wire
// form through a bounded Output cursor.
//
// An Output wraps a caller-owned buffer; it never grows it. Writes that do
// not fit fail with errors.OutputError and leave the cursor untouched, so a
// caller can size buffers with MaxEncodedSize and treat any overflow as a
// bug rather than a runtime condition:
//
//	buf := make([]byte, msg.MaxEncodedSize())
//	out := encode.NewOutput(buf)
//	if err := msg.Encode(out); err != nil {
//		return err
//	}
//	send(out.Bytes())
//
// Primitive rules are exposed as functions of the form
// func(*Output, T) error, all assignable to the generic Func[T]. Composite
// rules (Slice, Array, Option, Map) are combinators parameterized by element
// functions, so codecs compose the way the types do:
//
//	points := encode.Slice(encode.Uint32)   // Func[[]uint32]
//	maybe := encode.Option(encode.Rune)     // Func[*rune]
//
// Types with non-trivial encodings implement Encoder (and usually Sized);
// Of adapts such a type to function form for use with the combinators.
//
// Encoding failures are exceptional: they mean the value cannot be
// represented (a uint beyond the 16-bit wire size, an unpaired surrogate) or
// the buffer was undersized. Nothing in this package panics on data.
package encode
