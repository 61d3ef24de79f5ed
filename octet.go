package octet

import (
	"slices"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/encode"
	"github.com/wippyai/octet/errors"
)

// Marshal returns v's canonical encoding in a fresh buffer sized from its
// MaxEncodedSize.
func Marshal(v encode.Sized) ([]byte, error) {
	return MarshalEncoder(v, v.MaxEncodedSize())
}

// MarshalEncoder encodes v into a fresh buffer of the given capacity, for
// encoders without a static bound. The returned slice holds exactly the
// written bytes.
func MarshalEncoder(v encode.Encoder, size int) ([]byte, error) {
	o := encode.NewOutput(make([]byte, size))
	if err := v.Encode(o); err != nil {
		return nil, err
	}
	return o.Bytes(), nil
}

// Unmarshal decodes one encoding from the front of data into v. Trailing
// bytes are not an error; callers framing multiple values track positions
// through an explicit decode.Input instead.
func Unmarshal(data []byte, v decode.Decoder) error {
	return v.Decode(decode.NewInput(data))
}

// Append encodes v and appends the written bytes to dst, growing it at
// most once. size bounds the encoding, typically MaxEncodedSize for sized
// types. On failure dst is returned unchanged.
func Append(dst []byte, v encode.Encoder, size int) ([]byte, error) {
	base := len(dst)
	dst = slices.Grow(dst, size)[:base+size]
	o := encode.NewOutput(dst[base:])
	if err := v.Encode(o); err != nil {
		return dst[:base], err
	}
	return dst[:base+len(o.Bytes())], nil
}

// Result carries exactly one of two outcomes. On the wire it is a tag
// byte, 0 for Ok or 1 for Err, followed by the matching payload. The
// derive package recognizes the same shape structurally.
type Result[T, E any] struct {
	Ok  *T
	Err *E
}

// Ok returns a Result holding a success value.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{Ok: &v}
}

// Err returns a Result holding a failure value.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{Err: &e}
}

// IsOk reports whether the result holds a success value.
func (r Result[T, E]) IsOk() bool { return r.Ok != nil && r.Err == nil }

// IsErr reports whether the result holds a failure value.
func (r Result[T, E]) IsErr() bool { return r.Err != nil && r.Ok == nil }

// EncodeResult builds an encoder for Result values from the two payload
// encoders. A value with zero or two cases set fails with
// errors.VariantError.
func EncodeResult[T, E any](okFn encode.Func[T], errFn encode.Func[E]) encode.Func[Result[T, E]] {
	return func(o *encode.Output, r Result[T, E]) error {
		switch {
		case r.IsOk():
			if err := encode.Uint8(o, 0); err != nil {
				return err
			}
			if err := okFn(o, *r.Ok); err != nil {
				return errors.Field("Ok", err)
			}
			return nil
		case r.IsErr():
			if err := encode.Uint8(o, 1); err != nil {
				return err
			}
			if err := errFn(o, *r.Err); err != nil {
				return errors.Field("Err", err)
			}
			return nil
		case r.Ok != nil:
			return errors.VariantError{Set: 2}
		default:
			return errors.VariantError{Set: 0}
		}
	}
}

// DecodeResult builds the matching decoder. An unknown tag fails with
// errors.UnassignedDiscriminantError.
func DecodeResult[T, E any](okFn decode.Func[T], errFn decode.Func[E]) decode.Func[Result[T, E]] {
	return func(in *decode.Input) (Result[T, E], error) {
		var r Result[T, E]
		tag, err := decode.Uint8(in)
		if err != nil {
			return r, errors.DiscriminantError{Err: err}
		}
		switch tag {
		case 0:
			v, err := okFn(in)
			if err != nil {
				return r, errors.Field("Ok", err)
			}
			r.Ok = &v
		case 1:
			e, err := errFn(in)
			if err != nil {
				return r, errors.Field("Err", err)
			}
			r.Err = &e
		default:
			return r, errors.UnassignedDiscriminantError{Value: int64(tag)}
		}
		return r, nil
	}
}

// ResultMaxSize bounds a result encoding from its payload bounds.
func ResultMaxSize(okSize, errSize int) int {
	return encode.SizeTag + max(okSize, errSize)
}
