// Package seq provides fixed-capacity containers that participate in the
// codec without per-operation allocation.
//
// A Vec[T] owns storage for a fixed number of elements, chosen at
// construction, and tracks how many of them are live. It refuses to grow:
// offering more elements than the capacity holds is an errors.LengthError,
// on construction and on decode alike. Capacity is a runtime construction
// parameter; Go has no type-level lengths, so two Vecs of the same element
// type but different capacities share a type and differ only in behavior.
//
// Vec cannot know how to encode its elements, so its codec entry points
// take element functions, mirroring the combinators in encode and decode:
//
//	v, err := seq.VecFromSlice(8, readings)
//	err = v.EncodeWith(out, encode.Float64)
//
//	dec := seq.DecodeVec(8, decode.Float64) // decode.Func[Vec[float64]]
//
// String is the UTF-8 specialization: a byte container whose live prefix is
// always valid UTF-8. All mutation goes through validating entry points, and
// decoding checks the length against capacity before touching the bytes.
// String implements encode.Encoder and decode.Decoder directly, using the
// receiver's capacity.
//
// Copies of a Vec or String share backing storage the way Go slices do; a
// Vec is handed around by pointer once constructed.
package seq
