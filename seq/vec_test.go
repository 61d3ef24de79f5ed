package seq

import (
	"bytes"
	"slices"
	"testing"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/encode"
	"github.com/wippyai/octet/errors"
)

func TestVecFromSlice(t *testing.T) {
	v, err := VecFromSlice(4, []uint32{10, 20, 30})
	if err != nil {
		t.Fatalf("VecFromSlice: %v", err)
	}
	if v.Len() != 3 || v.Cap() != 4 {
		t.Errorf("Len = %d, Cap = %d, want 3, 4", v.Len(), v.Cap())
	}
	if v.IsEmpty() || v.IsFull() {
		t.Errorf("IsEmpty = %v, IsFull = %v, want false, false", v.IsEmpty(), v.IsFull())
	}
	if !slices.Equal(v.Slice(), []uint32{10, 20, 30}) {
		t.Errorf("Slice = %v", v.Slice())
	}
}

func TestVecFromSliceOverflow(t *testing.T) {
	_, err := VecFromSlice(4, []int{1, 2, 3, 4, 5})
	want := errors.LengthError{Remaining: 4, Count: 5}
	if err != want {
		t.Fatalf("VecFromSlice = %v, want %v", err, want)
	}
}

func TestVecAtSet(t *testing.T) {
	v, err := VecFromSlice(3, []string{"a", "b"})
	if err != nil {
		t.Fatalf("VecFromSlice: %v", err)
	}

	if got := v.At(1); got != "b" {
		t.Errorf("At(1) = %q, want \"b\"", got)
	}

	v.Set(0, "z")
	if got := v.At(0); got != "z" {
		t.Errorf("At(0) after Set = %q, want \"z\"", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("At past the length should panic like slice indexing")
		}
	}()
	v.At(2)
}

func TestVecSetLen(t *testing.T) {
	p1, p2, p3 := new(int), new(int), new(int)
	v, err := VecFromSlice(4, []*int{p1, p2, p3})
	if err != nil {
		t.Fatalf("VecFromSlice: %v", err)
	}

	if err := v.SetLen(1); err != nil {
		t.Fatalf("SetLen(1): %v", err)
	}
	if v.Len() != 1 {
		t.Errorf("Len = %d, want 1", v.Len())
	}
	// Dropped slots must not pin their old referents.
	if v.buf[1] != nil || v.buf[2] != nil {
		t.Error("SetLen left dropped slots populated")
	}

	err = v.SetLen(2)
	want := errors.LengthError{Remaining: 1, Count: 2}
	if err != want {
		t.Errorf("SetLen(2) = %v, want %v", err, want)
	}

	if err := v.SetLen(-1); err == nil {
		t.Error("SetLen(-1) should fail")
	}
}

func TestVecTruncate(t *testing.T) {
	v, err := VecFromSlice(4, []int{1, 2, 3})
	if err != nil {
		t.Fatalf("VecFromSlice: %v", err)
	}

	v.Truncate(5)
	if v.Len() != 3 {
		t.Errorf("Truncate(5) changed the length to %d", v.Len())
	}

	v.Truncate(1)
	if !slices.Equal(v.Slice(), []int{1}) {
		t.Errorf("Slice after Truncate = %v, want [1]", v.Slice())
	}
}

func TestVecCopyFromSlice(t *testing.T) {
	v, err := VecFromSlice(4, []int{1, 2, 3})
	if err != nil {
		t.Fatalf("VecFromSlice: %v", err)
	}

	if err := v.CopyFromSlice([]int{9}); err != nil {
		t.Fatalf("CopyFromSlice: %v", err)
	}
	if !slices.Equal(v.Slice(), []int{9}) {
		t.Errorf("Slice = %v, want [9]", v.Slice())
	}

	err = v.CopyFromSlice([]int{1, 2, 3, 4, 5})
	want := errors.LengthError{Remaining: 4, Count: 5}
	if err != want {
		t.Errorf("CopyFromSlice = %v, want %v", err, want)
	}
}

func TestVecCollect(t *testing.T) {
	v := CollectVec(4, slices.Values([]int{1, 2, 3, 4, 5, 6}))
	if !slices.Equal(v.Slice(), []int{1, 2, 3, 4}) {
		t.Errorf("CollectVec = %v, want the first four elements", v.Slice())
	}
	if !v.IsFull() {
		t.Error("IsFull = false after collecting past capacity")
	}

	exact := CollectVec(4, slices.Values([]int{1, 2}))
	if exact.Len() != 2 {
		t.Errorf("Len = %d, want 2", exact.Len())
	}
}

func TestVecIterators(t *testing.T) {
	v, err := VecFromSlice(8, []int{5, 6, 7})
	if err != nil {
		t.Fatalf("VecFromSlice: %v", err)
	}

	var idx []int
	var got []int
	for i, x := range v.All() {
		idx = append(idx, i)
		got = append(got, x)
	}
	if !slices.Equal(idx, []int{0, 1, 2}) || !slices.Equal(got, []int{5, 6, 7}) {
		t.Errorf("All = %v %v", idx, got)
	}

	var first int
	for x := range v.Values() {
		first = x
		break
	}
	if first != 5 {
		t.Errorf("Values first = %d, want 5", first)
	}

	if !slices.Equal(v.AppendTo([]int{0}), []int{0, 5, 6, 7}) {
		t.Errorf("AppendTo = %v", v.AppendTo([]int{0}))
	}
}

func TestVecEncodeDecode(t *testing.T) {
	v, err := VecFromSlice(4, []uint16{1, 2})
	if err != nil {
		t.Fatalf("VecFromSlice: %v", err)
	}

	out := encode.NewOutput(make([]byte, VecMaxSize(encode.SizeUint16, 4)))
	if err := v.EncodeWith(out, encode.Uint16); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0x02, 0x00, 0x01, 0x00, 0x02, 0x00}
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("encoded % X, want % X", out.Bytes(), want)
	}

	got, err := DecodeVec(4, decode.Uint16)(decode.NewInput(out.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !slices.Equal(got.Slice(), v.Slice()) {
		t.Errorf("round trip = %v, want %v", got.Slice(), v.Slice())
	}
	if got.Cap() != 4 {
		t.Errorf("decoded Cap = %d, want 4", got.Cap())
	}

	// Re-encode must reproduce the bytes.
	again := encode.NewOutput(make([]byte, VecMaxSize(encode.SizeUint16, 4)))
	if err := got.EncodeWith(again, encode.Uint16); err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(again.Bytes(), want) {
		t.Errorf("re-encode = % X, want % X", again.Bytes(), want)
	}
}

func TestVecDecodeOverCapacity(t *testing.T) {
	// Five elements promised against capacity four.
	in := decode.NewInput([]byte{0x05, 0x00, 1, 2, 3, 4, 5})
	_, err := DecodeVec(4, decode.Uint8)(in)
	want := errors.LengthError{Remaining: 4, Count: 5}
	if err != want {
		t.Fatalf("DecodeVec = %v, want %v", err, want)
	}
}

func TestVecDecodeItemError(t *testing.T) {
	v, err := VecFromSlice(4, []bool{true})
	if err != nil {
		t.Fatalf("VecFromSlice: %v", err)
	}

	// Second element is not a boolean byte.
	in := decode.NewInput([]byte{0x02, 0x00, 0x01, 0x05})
	err = v.DecodeWith(in, decode.Bool)
	want := errors.Item(1, errors.BoolError{Value: 0x05})
	if err != want {
		t.Fatalf("DecodeWith = %v, want %v", err, want)
	}
	// A failed decode leaves nothing visible, including the old contents.
	if v.Len() != 0 {
		t.Errorf("Len after failed decode = %d, want 0", v.Len())
	}
}

func TestVecDecodeTruncated(t *testing.T) {
	in := decode.NewInput([]byte{0x02, 0x00, 0x07})
	_, err := DecodeVec(4, decode.Uint16)(in)
	if err == nil {
		t.Fatal("decode of truncated input should fail")
	}
}

func TestVecMaxSizeBound(t *testing.T) {
	if got := VecMaxSize(encode.SizeUint16, 4); got != 10 {
		t.Fatalf("VecMaxSize = %d, want 10", got)
	}

	full, err := VecFromSlice(4, []uint16{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("VecFromSlice: %v", err)
	}
	out := encode.NewOutput(make([]byte, VecMaxSize(encode.SizeUint16, 4)))
	if err := full.EncodeWith(out, encode.Uint16); err != nil {
		t.Fatalf("a full Vec must fit its own bound: %v", err)
	}
	if out.Position() != 10 {
		t.Errorf("full encoding used %d bytes, bound is 10", out.Position())
	}
}
