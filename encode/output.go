package encode

import (
	"github.com/wippyai/octet/errors"
)

// Output is a bounded write cursor over a caller-owned buffer. The capacity
// is fixed at construction; writes past it fail instead of reallocating.
// Writes are all-or-nothing: a failed write advances nothing.
type Output struct {
	buf []byte
	pos int
}

// NewOutput wraps buf in a cursor positioned at its start. The cursor writes
// into buf directly; the caller keeps ownership of the memory.
func NewOutput(buf []byte) *Output {
	return &Output{buf: buf}
}

// Write copies p into the buffer at the current position and advances past
// it. When p does not fit in the remaining space it returns
// errors.OutputError and writes nothing.
func (o *Output) Write(p []byte) error {
	if len(p) > len(o.buf)-o.pos {
		return errors.OutputError{Capacity: len(o.buf), Position: o.pos, Count: len(p)}
	}
	o.pos += copy(o.buf[o.pos:], p)
	return nil
}

// WriteByte writes a single byte.
func (o *Output) WriteByte(b byte) error {
	if o.pos >= len(o.buf) {
		return errors.OutputError{Capacity: len(o.buf), Position: o.pos, Count: 1}
	}
	o.buf[o.pos] = b
	o.pos++
	return nil
}

// Position returns the number of bytes written so far.
func (o *Output) Position() int {
	return o.pos
}

// Capacity returns the total size of the underlying buffer.
func (o *Output) Capacity() int {
	return len(o.buf)
}

// Remaining returns how many more bytes fit.
func (o *Output) Remaining() int {
	return len(o.buf) - o.pos
}

// Bytes returns the written prefix of the buffer. The slice aliases the
// underlying storage and stays valid until the next write.
func (o *Output) Bytes() []byte {
	return o.buf[:o.pos]
}
