package encode

import (
	"cmp"
	"slices"

	"github.com/wippyai/octet/errors"
)

// Slice returns an encoder writing a length prefix followed by each element.
// Element failures are wrapped in errors.ItemError with the element index.
func Slice[T any](elem Func[T]) Func[[]T] {
	return func(o *Output, s []T) error {
		if err := Uint(o, uint(len(s))); err != nil {
			return err
		}
		for i, v := range s {
			if err := elem(o, v); err != nil {
				return errors.Item(i, err)
			}
		}
		return nil
	}
}

// Array returns an encoder writing each element with no length prefix, for
// sequences whose length is part of the type. Callers with a Go array pass
// arr[:].
func Array[T any](elem Func[T]) Func[[]T] {
	return func(o *Output, s []T) error {
		for i, v := range s {
			if err := elem(o, v); err != nil {
				return errors.Item(i, err)
			}
		}
		return nil
	}
}

// Option returns an encoder writing a presence tag, then the pointee when
// non-nil.
func Option[T any](elem Func[T]) Func[*T] {
	return func(o *Output, v *T) error {
		if v == nil {
			return o.WriteByte(0x00)
		}
		if err := o.WriteByte(0x01); err != nil {
			return err
		}
		return elem(o, *v)
	}
}

// Map returns an encoder writing a length prefix followed by key/value
// pairs. Keys are written in ascending order so that equal maps always
// produce equal bytes.
func Map[K cmp.Ordered, V any](key Func[K], val Func[V]) Func[map[K]V] {
	return func(o *Output, m map[K]V) error {
		if err := Uint(o, uint(len(m))); err != nil {
			return err
		}
		keys := make([]K, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for i, k := range keys {
			if err := key(o, k); err != nil {
				return errors.Item(i, err)
			}
			if err := val(o, m[k]); err != nil {
				return errors.Item(i, err)
			}
		}
		return nil
	}
}
