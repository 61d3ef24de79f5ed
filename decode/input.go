package decode

import (
	"github.com/wippyai/octet/errors"
)

// Input is a bounded read cursor over received bytes. Reads return
// subslices of the wrapped buffer without copying; the cursor never reads
// past the end, returning errors.InputError instead.
type Input struct {
	buf []byte
	pos int
}

// NewInput wraps data in a cursor positioned at its start. The cursor
// borrows data; the caller must not mutate it while decoding.
func NewInput(data []byte) *Input {
	return &Input{buf: data}
}

// Read returns the next n bytes and advances past them. The returned slice
// aliases the wrapped buffer and is valid for as long as the buffer is.
func (in *Input) Read(n int) ([]byte, error) {
	if n < 0 || n > len(in.buf)-in.pos {
		return nil, errors.InputError{Capacity: len(in.buf), Position: in.pos, Count: n}
	}
	p := in.buf[in.pos : in.pos+n]
	in.pos += n
	return p, nil
}

// ReadInto copies the next len(dst) bytes into dst and advances past them.
func (in *Input) ReadInto(dst []byte) error {
	p, err := in.Read(len(dst))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

// ReadByte returns the next byte.
func (in *Input) ReadByte() (byte, error) {
	if in.pos >= len(in.buf) {
		return 0, errors.InputError{Capacity: len(in.buf), Position: in.pos, Count: 1}
	}
	b := in.buf[in.pos]
	in.pos++
	return b, nil
}

// Peek returns the next n bytes without advancing.
func (in *Input) Peek(n int) ([]byte, error) {
	if n < 0 || n > len(in.buf)-in.pos {
		return nil, errors.InputError{Capacity: len(in.buf), Position: in.pos, Count: n}
	}
	return in.buf[in.pos : in.pos+n], nil
}

// PeekInto copies the next len(dst) bytes into dst without advancing.
func (in *Input) PeekInto(dst []byte) error {
	p, err := in.Peek(len(dst))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

// Position returns the number of bytes consumed so far.
func (in *Input) Position() int {
	return in.pos
}

// Capacity returns the total size of the wrapped buffer.
func (in *Input) Capacity() int {
	return len(in.buf)
}

// Remaining returns how many bytes are left to read.
func (in *Input) Remaining() int {
	return len(in.buf) - in.pos
}

// Bytes returns the unread suffix of the buffer without advancing.
func (in *Input) Bytes() []byte {
	return in.buf[in.pos:]
}
