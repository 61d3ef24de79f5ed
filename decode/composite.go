package decode

import (
	"cmp"

	"github.com/wippyai/octet/errors"
)

// Slice returns a decoder reading a length prefix and that many elements.
// Element failures are wrapped in errors.ItemError with the element index.
func Slice[T any](elem Func[T]) Func[[]T] {
	return func(in *Input) ([]T, error) {
		n, err := Uint(in)
		if err != nil {
			return nil, err
		}
		s := make([]T, 0, n)
		for i := 0; i < int(n); i++ {
			v, err := elem(in)
			if err != nil {
				return nil, errors.Item(i, err)
			}
			s = append(s, v)
		}
		return s, nil
	}
}

// Array returns a decoder reading exactly n elements with no length prefix.
func Array[T any](n int, elem Func[T]) Func[[]T] {
	return func(in *Input) ([]T, error) {
		s := make([]T, 0, n)
		for i := 0; i < n; i++ {
			v, err := elem(in)
			if err != nil {
				return nil, errors.Item(i, err)
			}
			s = append(s, v)
		}
		return s, nil
	}
}

// ArrayInto decodes exactly len(dst) elements into dst, for fixed-size
// arrays whose storage already exists: ArrayInto(in, arr[:], elem).
func ArrayInto[T any](in *Input, dst []T, elem Func[T]) error {
	for i := range dst {
		v, err := elem(in)
		if err != nil {
			return errors.Item(i, err)
		}
		dst[i] = v
	}
	return nil
}

// Option returns a decoder reading a presence tag, then the payload into a
// fresh pointee when present. The tag follows the boolean rule: bytes other
// than 0x00 and 0x01 fail with errors.BoolError.
func Option[T any](elem Func[T]) Func[*T] {
	return func(in *Input) (*T, error) {
		present, err := Bool(in)
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, nil
		}
		v, err := elem(in)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}

// Map returns a decoder reading a length prefix and that many key/value
// pairs.
func Map[K cmp.Ordered, V any](key Func[K], val Func[V]) Func[map[K]V] {
	return func(in *Input) (map[K]V, error) {
		n, err := Uint(in)
		if err != nil {
			return nil, err
		}
		m := make(map[K]V, n)
		for i := 0; i < int(n); i++ {
			k, err := key(in)
			if err != nil {
				return nil, errors.Item(i, err)
			}
			v, err := val(in)
			if err != nil {
				return nil, errors.Item(i, err)
			}
			m[k] = v
		}
		return m, nil
	}
}
