package seq

import (
	"iter"
	"unicode/utf8"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/encode"
	"github.com/wippyai/octet/errors"
	"github.com/wippyai/octet/internal/wire"
)

// String is a byte container with construction-time capacity whose live
// prefix is always valid UTF-8. Every entry point validates, so the
// invariant cannot be broken from outside.
type String struct {
	buf []byte
	n   int
}

// NewString returns an empty String with room for capacity bytes.
func NewString(capacity int) String {
	return String{buf: make([]byte, capacity)}
}

// StringFrom returns a String holding a copy of s. It fails with
// errors.LengthError when s does not fit and errors.UTF8Error when s is not
// valid UTF-8.
func StringFrom(capacity int, s string) (String, error) {
	if len(s) > capacity {
		return String{}, errors.LengthError{Remaining: capacity, Count: len(s)}
	}
	if err := wire.CheckUTF8String(s); err != nil {
		return String{}, err
	}
	v := NewString(capacity)
	v.n = copy(v.buf, s)
	return v, nil
}

// StringFromBytes is StringFrom for raw bytes, reporting the first invalid
// byte and its offset when b is not UTF-8.
func StringFromBytes(capacity int, b []byte) (String, error) {
	if len(b) > capacity {
		return String{}, errors.LengthError{Remaining: capacity, Count: len(b)}
	}
	if err := wire.CheckUTF8(b); err != nil {
		return String{}, err
	}
	v := NewString(capacity)
	v.n = copy(v.buf, b)
	return v, nil
}

// CollectString drains src into a new String, stopping at the first rune
// that does not fit the remaining capacity. Runes are never split.
func CollectString(capacity int, src iter.Seq[rune]) String {
	v := NewString(capacity)
	for r := range src {
		if v.AppendRune(r) != nil {
			break
		}
	}
	return v
}

// Len returns the number of live bytes, not runes.
func (s String) Len() int { return s.n }

// Cap returns the fixed capacity in bytes.
func (s String) Cap() int { return len(s.buf) }

// IsEmpty reports whether no bytes are live.
func (s String) IsEmpty() bool { return s.n == 0 }

// String returns the contents as a Go string.
func (s String) String() string {
	return string(s.buf[:s.n])
}

// Bytes returns the live bytes as a view of the backing storage. Treat it
// as read-only: writing through it can break the UTF-8 invariant.
func (s String) Bytes() []byte {
	return s.buf[:s.n]
}

// Runes iterates the code points of the contents.
func (s String) Runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s.String() {
			if !yield(r) {
				return
			}
		}
	}
}

// AppendRune appends the UTF-8 encoding of r. It fails with
// errors.CharError when r is not a scalar value and errors.LengthError when
// the encoding does not fit the remaining capacity.
func (s *String) AppendRune(r rune) error {
	if !utf8.ValidRune(r) {
		return errors.CharError{CodePoint: uint32(r)}
	}
	size := utf8.RuneLen(r)
	if size > len(s.buf)-s.n {
		return errors.LengthError{Remaining: len(s.buf) - s.n, Count: size}
	}
	s.n += utf8.EncodeRune(s.buf[s.n:], r)
	return nil
}

// Clear resets the String to empty without releasing storage.
func (s *String) Clear() {
	s.n = 0
}

// Encode writes a length prefix followed by the raw bytes.
func (s String) Encode(o *encode.Output) error {
	if err := encode.Uint(o, uint(s.n)); err != nil {
		return err
	}
	return o.Write(s.buf[:s.n])
}

// MaxEncodedSize bounds the encoded size: the length prefix plus a full
// buffer. The bound follows the receiver's capacity, the construction-time
// stand-in for a type-level length.
func (s String) MaxEncodedSize() int {
	return encode.SizeUint + len(s.buf)
}

// Decode replaces the contents with a decoded string. The length prefix is
// checked against the capacity before the bytes are read; over-long input
// fails with errors.LengthError, malformed content with errors.UTF8Error
// reporting the first bad byte. After any failure the String is empty.
func (s *String) Decode(in *decode.Input) error {
	s.n = 0

	n, err := decode.Uint(in)
	if err != nil {
		return err
	}
	if int(n) > len(s.buf) {
		return errors.LengthError{Remaining: len(s.buf), Count: int(n)}
	}
	p, err := in.Read(int(n))
	if err != nil {
		return err
	}
	if err := wire.CheckUTF8(p); err != nil {
		return err
	}
	s.n = copy(s.buf, p)
	return nil
}

// DecodeString returns a decoder producing Strings of the given capacity.
func DecodeString(capacity int) decode.Func[String] {
	return func(in *decode.Input) (String, error) {
		s := NewString(capacity)
		if err := s.Decode(in); err != nil {
			return String{}, err
		}
		return s, nil
	}
}

// StringMaxSize bounds the encoded size of a String of the given capacity.
func StringMaxSize(capacity int) int {
	return encode.SizeUint + capacity
}
