package seq

import (
	"iter"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/encode"
	"github.com/wippyai/octet/errors"
)

// Vec is a sequence with construction-time capacity and a logical length.
// The live elements occupy the storage prefix; slots past the length are
// zeroed so abandoned references are released promptly.
type Vec[T any] struct {
	buf []T
	n   int
}

// NewVec returns an empty Vec with room for capacity elements.
func NewVec[T any](capacity int) Vec[T] {
	return Vec[T]{buf: make([]T, capacity)}
}

// VecFromSlice returns a Vec holding a copy of data. When data does not fit
// the capacity it fails with errors.LengthError reporting the capacity as
// the remaining space.
func VecFromSlice[T any](capacity int, data []T) (Vec[T], error) {
	if len(data) > capacity {
		return Vec[T]{}, errors.LengthError{Remaining: capacity, Count: len(data)}
	}
	v := NewVec[T](capacity)
	v.n = copy(v.buf, data)
	return v, nil
}

// CollectVec drains src into a new Vec, stopping once the capacity is
// reached. Overflow is silent; use VecFromSlice when it must be detected.
func CollectVec[T any](capacity int, src iter.Seq[T]) Vec[T] {
	v := NewVec[T](capacity)
	for x := range src {
		if v.n == capacity {
			break
		}
		v.buf[v.n] = x
		v.n++
	}
	return v
}

// Len returns the number of live elements.
func (v Vec[T]) Len() int { return v.n }

// Cap returns the fixed capacity.
func (v Vec[T]) Cap() int { return len(v.buf) }

// IsEmpty reports whether no elements are live.
func (v Vec[T]) IsEmpty() bool { return v.n == 0 }

// IsFull reports whether the length has reached the capacity.
func (v Vec[T]) IsFull() bool { return v.n == len(v.buf) }

// At returns the element at index i. Indexing past the length panics the
// way slice indexing does.
func (v Vec[T]) At(i int) T {
	return v.buf[:v.n][i]
}

// Set replaces the element at index i.
func (v *Vec[T]) Set(i int, x T) {
	v.buf[:v.n][i] = x
}

// Slice returns the live elements as a view of the backing storage. Writing
// through it mutates the Vec; it stays valid until the next length change.
func (v Vec[T]) Slice() []T {
	return v.buf[:v.n]
}

// SetLen shrinks the length to n, zeroing the dropped slots. Growing is
// rejected with errors.LengthError: slots past the length hold no live
// values to expose.
func (v *Vec[T]) SetLen(n int) error {
	if n < 0 || n > v.n {
		return errors.LengthError{Remaining: v.n, Count: n}
	}
	clear(v.buf[n:v.n])
	v.n = n
	return nil
}

// Truncate shortens the Vec to at most n elements. Unlike SetLen it is a
// no-op when n is not smaller than the current length.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < v.n {
		clear(v.buf[n:v.n])
		v.n = n
	}
}

// CopyFromSlice replaces the contents with a copy of data, failing with
// errors.LengthError when data exceeds the capacity.
func (v *Vec[T]) CopyFromSlice(data []T) error {
	if len(data) > len(v.buf) {
		return errors.LengthError{Remaining: len(v.buf), Count: len(data)}
	}
	n := copy(v.buf, data)
	clear(v.buf[n:v.n])
	v.n = n
	return nil
}

// All iterates index/element pairs of the live prefix.
func (v Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

// Values iterates the live elements.
func (v Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(v.buf[i]) {
				return
			}
		}
	}
}

// AppendTo appends the live elements to dst and returns the result.
func (v Vec[T]) AppendTo(dst []T) []T {
	return append(dst, v.buf[:v.n]...)
}

// ToSlice returns the live elements as a fresh slice.
func (v Vec[T]) ToSlice() []T {
	return v.AppendTo(nil)
}

// EncodeWith writes a length prefix followed by each live element encoded
// with elem.
func (v Vec[T]) EncodeWith(o *encode.Output, elem encode.Func[T]) error {
	if err := encode.Uint(o, uint(v.n)); err != nil {
		return err
	}
	for i := 0; i < v.n; i++ {
		if err := elem(o, v.buf[i]); err != nil {
			return errors.Item(i, err)
		}
	}
	return nil
}

// DecodeWith replaces the contents with a decoded sequence. The length
// prefix is checked against the capacity before any element is read; a
// length beyond it fails with errors.LengthError and element failures are
// wrapped in errors.ItemError. After any failure the Vec is empty rather
// than partially filled.
func (v *Vec[T]) DecodeWith(in *decode.Input, elem decode.Func[T]) error {
	clear(v.buf[:v.n])
	v.n = 0

	n, err := decode.Uint(in)
	if err != nil {
		return err
	}
	if int(n) > len(v.buf) {
		return errors.LengthError{Remaining: len(v.buf), Count: int(n)}
	}
	for i := 0; i < int(n); i++ {
		x, err := elem(in)
		if err != nil {
			clear(v.buf[:i])
			return errors.Item(i, err)
		}
		v.buf[i] = x
	}
	v.n = int(n)
	return nil
}

// EncodeVec adapts EncodeWith to combinator form.
func EncodeVec[T any](elem encode.Func[T]) encode.Func[Vec[T]] {
	return func(o *encode.Output, v Vec[T]) error {
		return v.EncodeWith(o, elem)
	}
}

// DecodeVec returns a decoder producing Vecs of the given capacity.
func DecodeVec[T any](capacity int, elem decode.Func[T]) decode.Func[Vec[T]] {
	return func(in *decode.Input) (Vec[T], error) {
		v := NewVec[T](capacity)
		if err := v.DecodeWith(in, elem); err != nil {
			return Vec[T]{}, err
		}
		return v, nil
	}
}

// VecMaxSize bounds the encoded size of a Vec whose elements each encode in
// at most elemSize bytes: the length prefix plus a full payload. An actual
// encode never exceeds it.
func VecMaxSize(elemSize, capacity int) int {
	return encode.SizeUint + elemSize*capacity
}
