package encode

import (
	"bytes"
	"testing"

	"github.com/wippyai/octet/errors"
)

func TestOutputWrite(t *testing.T) {
	out := NewOutput(make([]byte, 4))

	if err := out.Write([]byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if out.Position() != 2 {
		t.Errorf("Position = %d, want 2", out.Position())
	}
	if out.Remaining() != 2 {
		t.Errorf("Remaining = %d, want 2", out.Remaining())
	}

	if err := out.Write([]byte{0xCC, 0xDD}); err != nil {
		t.Fatalf("write to exact capacity: %v", err)
	}
	if !bytes.Equal(out.Bytes(), []byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Errorf("Bytes = %x, want aabbccdd", out.Bytes())
	}
}

func TestOutputOverflow(t *testing.T) {
	out := NewOutput(make([]byte, 2))
	if err := out.WriteByte(0x01); err != nil {
		t.Fatalf("write byte: %v", err)
	}

	err := out.Write([]byte{0x02, 0x03})
	want := errors.OutputError{Capacity: 2, Position: 1, Count: 2}
	if err != want {
		t.Fatalf("Write = %v, want %v", err, want)
	}

	// A failed write must not move the cursor or touch the buffer.
	if out.Position() != 1 {
		t.Errorf("Position after failed write = %d, want 1", out.Position())
	}
	if !bytes.Equal(out.Bytes(), []byte{0x01}) {
		t.Errorf("Bytes after failed write = %x, want 01", out.Bytes())
	}
}

func TestOutputWriteByteFull(t *testing.T) {
	out := NewOutput(nil)
	err := out.WriteByte(0xFF)
	want := errors.OutputError{Capacity: 0, Position: 0, Count: 1}
	if err != want {
		t.Fatalf("WriteByte = %v, want %v", err, want)
	}
}

func TestOutputEmptyWrite(t *testing.T) {
	out := NewOutput(nil)
	if err := out.Write(nil); err != nil {
		t.Fatalf("empty write should succeed on a full cursor: %v", err)
	}
	if out.Position() != 0 || out.Capacity() != 0 {
		t.Errorf("Position = %d, Capacity = %d, want 0, 0", out.Position(), out.Capacity())
	}
}
