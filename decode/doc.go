// Package decode reads values back out of their canonical little-endian
// wire form through a bounded Input cursor.
//
// An Input wraps the received bytes without copying them; Read hands out
// subslices of the original buffer and advances past them. Exhaustion is
// always an errors.InputError carrying the capacity, position, and requested
// count. Decoding is the untrusted direction: no sequence of input bytes can
// cause a panic, only an error.
//
// Primitive rules mirror the encode package as functions of the form
// func(*Input) (T, error), assignable to the generic Func[T], with the same
// combinator composition:
//
//	in := decode.NewInput(data)
//	points, err := decode.Slice(decode.Uint32)(in)
//
// Types with hand-written decodings implement Decoder on a pointer receiver;
// Of adapts such a type to function form.
//
// Validation happens here, not after: booleans must be 0x00 or 0x01, code
// points must be unicode scalar values, strings must be valid UTF-8, so a
// value that decodes successfully always re-encodes to the same bytes.
package decode
