package slot

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/encode"
	"github.com/wippyai/octet/errors"
)

func TestSlotWriteRead(t *testing.T) {
	s := New(encode.SizeUint32, encode.Uint32, decode.Uint32)

	if err := s.Write(0xDEADBEEF); err != nil {
		t.Fatalf("write: %v", err)
	}
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Len())
	}
	if !bytes.Equal(s.Bytes(), []byte{0xEF, 0xBE, 0xAD, 0xDE}) {
		t.Errorf("Bytes = % X", s.Bytes())
	}

	v, err := s.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != 0xDEADBEEF {
		t.Errorf("Read = %#x, want 0xdeadbeef", v)
	}
}

type beat struct {
	seq uint16
}

func (b beat) Encode(o *encode.Output) error {
	return encode.Uint16(o, b.seq)
}

func (b *beat) Decode(in *decode.Input) error {
	seq, err := decode.Uint16(in)
	b.seq = seq
	return err
}

func (beat) MaxEncodedSize() int {
	return encode.SizeUint16
}

func TestNewForSizesFromType(t *testing.T) {
	s := NewFor[beat](decode.Of[beat]())

	if s.Cap() != encode.SizeUint16 {
		t.Fatalf("Cap = %d, want %d", s.Cap(), encode.SizeUint16)
	}
	if err := s.Write(beat{seq: 9}); err != nil {
		t.Fatalf("write: %v", err)
	}
	v, err := s.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v.seq != 9 {
		t.Errorf("Read = %+v, want seq 9", v)
	}
}

func TestSlotReadUsesWrittenPrefix(t *testing.T) {
	// A short encoding after a long one must not see the stale tail.
	s := New(32, encode.String, decode.String)

	if err := s.Write("a longer value"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write("hi"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if s.Len() != encode.SizeUint+2 {
		t.Errorf("Len = %d, want %d", s.Len(), encode.SizeUint+2)
	}

	v, err := s.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != "hi" {
		t.Errorf("Read = %q, want \"hi\"", v)
	}
}

func TestSlotWriteOverflow(t *testing.T) {
	s := New(4, encode.String, decode.String)

	err := s.Write("too long for four bytes")
	if err == nil {
		t.Fatal("write past capacity should fail")
	}
	var outErr errors.OutputError
	if !stderrors.As(err, &outErr) {
		t.Fatalf("error %v is not an OutputError", err)
	}

	// The failed write must leave the slot empty.
	if !s.IsEmpty() {
		t.Errorf("Len after failed write = %d, want 0", s.Len())
	}
	if _, err := s.Read(); err == nil {
		t.Error("reading an empty slot should fail")
	}
}

func TestSlotReceivePath(t *testing.T) {
	s := New(16, encode.Uint16, decode.Uint16)

	// Simulate a transport filling the buffer directly.
	n := copy(s.Buffer(), []byte{0x34, 0x12})
	if err := s.SetLen(n); err != nil {
		t.Fatalf("set len: %v", err)
	}

	v, err := s.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != 0x1234 {
		t.Errorf("Read = %#x, want 0x1234", v)
	}

	err = s.SetLen(17)
	want := errors.LengthError{Remaining: 16, Count: 17}
	if err != want {
		t.Errorf("SetLen(17) = %v, want %v", err, want)
	}
	if err := s.SetLen(-1); err == nil {
		t.Error("SetLen(-1) should fail")
	}
}

func TestSlotClear(t *testing.T) {
	s := New(8, encode.Uint16, decode.Uint16)
	if err := s.Write(7); err != nil {
		t.Fatalf("write: %v", err)
	}
	s.Clear()
	if !s.IsEmpty() || s.Cap() != 8 {
		t.Errorf("IsEmpty = %v, Cap = %d after Clear", s.IsEmpty(), s.Cap())
	}
}
