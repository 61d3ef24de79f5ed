// Package slot pairs one reusable byte buffer with a codec, for call sites
// that move a single value across a boundary over and over: fill, send,
// receive, read. The buffer is allocated once; Write and Read reuse it.
package slot

import (
	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/encode"
	"github.com/wippyai/octet/errors"
)

// Slot is a single-value encode/decode buffer. Write records how many bytes
// the encoding used; Read decodes from exactly that prefix, so stale bytes
// past the last encoding are never interpreted.
type Slot[T any] struct {
	buf []byte
	n   int
	enc encode.Func[T]
	dec decode.Func[T]
}

// New returns a Slot with the given buffer capacity and codec pair.
func New[T any](capacity int, enc encode.Func[T], dec decode.Func[T]) *Slot[T] {
	return &Slot[T]{
		buf: make([]byte, capacity),
		enc: enc,
		dec: dec,
	}
}

// NewFor returns a Slot sized by the type's own encoded-size bound, for
// value types whose zero value answers MaxEncodedSize.
func NewFor[T encode.Sized](dec decode.Func[T]) *Slot[T] {
	var zero T
	return New(zero.MaxEncodedSize(), encode.Of[T](), dec)
}

// Write encodes v into the buffer, replacing the previous contents. After a
// failed encode the Slot reads as empty rather than exposing a torn
// encoding.
func (s *Slot[T]) Write(v T) error {
	out := encode.NewOutput(s.buf)
	if err := s.enc(out, v); err != nil {
		s.n = 0
		return err
	}
	s.n = out.Position()
	return nil
}

// Read decodes the value last written or received.
func (s *Slot[T]) Read() (T, error) {
	return s.dec(decode.NewInput(s.buf[:s.n]))
}

// Bytes returns the encoded prefix, aliasing the buffer. Valid until the
// next Write.
func (s *Slot[T]) Bytes() []byte {
	return s.buf[:s.n]
}

// Buffer returns the full backing buffer for receive paths that fill it
// externally. Follow with SetLen to record how many bytes arrived.
func (s *Slot[T]) Buffer() []byte {
	return s.buf
}

// SetLen records that the first n buffer bytes hold an encoding, after an
// external fill through Buffer.
func (s *Slot[T]) SetLen(n int) error {
	if n < 0 || n > len(s.buf) {
		return errors.LengthError{Remaining: len(s.buf), Count: n}
	}
	s.n = n
	return nil
}

// Len returns the size of the current encoding.
func (s *Slot[T]) Len() int {
	return s.n
}

// Cap returns the buffer capacity.
func (s *Slot[T]) Cap() int {
	return len(s.buf)
}

// IsEmpty reports whether the Slot holds no encoding.
func (s *Slot[T]) IsEmpty() bool {
	return s.n == 0
}

// Clear discards the current encoding without releasing the buffer.
func (s *Slot[T]) Clear() {
	s.n = 0
}
