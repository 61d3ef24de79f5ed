package derive

import (
	"fmt"
	"reflect"

	"github.com/wippyai/octet/derive/internal/plan"
	"github.com/wippyai/octet/encode"
	"github.com/wippyai/octet/errors"
)

// sizeValue returns a byte count sufficient for v's encoding: exact for
// structural shapes, the address family bound for addresses, and the
// instance's MaxEncodedSize for delegated codecs. Marshal allocates from
// it, so overshooting wastes a few bytes while undershooting would be a
// bug.
func sizeValue(p *plan.Plan, v reflect.Value) (int, error) {
	if w := p.Kind.Width(); w >= 0 {
		return w, nil
	}
	switch p.Kind {
	case plan.KindString:
		return encode.SizeUint + len(v.String()), nil
	case plan.KindBytes:
		return encode.SizeUint + v.Len(), nil
	case plan.KindStruct:
		total := 0
		for i := range p.Fields {
			n, err := sizeValue(p.Fields[i].Plan, v.Field(p.Fields[i].Index))
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	case plan.KindSlice:
		return sizeSeq(p.Elem, v, encode.SizeUint)
	case plan.KindArray:
		return sizeSeq(p.Elem, v, 0)
	case plan.KindOption:
		if v.IsNil() {
			return encode.SizeTag, nil
		}
		n, err := sizeValue(p.Elem, v.Elem())
		if err != nil {
			return 0, err
		}
		return encode.SizeTag + n, nil
	case plan.KindResult:
		_, idx, payload, err := resultState(p, v)
		if err != nil {
			return 0, err
		}
		n, err := sizeValue(payload, v.Field(idx).Elem())
		if err != nil {
			return 0, err
		}
		return encode.SizeTag + n, nil
	case plan.KindMap:
		total := encode.SizeUint
		iter := v.MapRange()
		for iter.Next() {
			n, err := sizeValue(p.Key, iter.Key())
			if err != nil {
				return 0, err
			}
			total += n
			if n, err = sizeValue(p.Val, iter.Value()); err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	case plan.KindEnum:
		return p.Base.Width(), nil
	case plan.KindVariant:
		idx, err := variantState(p, v)
		if err != nil {
			return 0, err
		}
		cs := &p.Cases[idx]
		n, err := sizeValue(cs.Plan, v.Field(cs.Index).Elem())
		if err != nil {
			return 0, err
		}
		return encode.SizeInt + n, nil
	case plan.KindCodec:
		return sizeCodec(p, v)
	default:
		return 0, fmt.Errorf("unhandled plan kind %s", p.Kind)
	}
}

func sizeSeq(elem *plan.Plan, v reflect.Value, prefix int) (int, error) {
	n := v.Len()
	if w := elem.Kind.Width(); w >= 0 {
		return prefix + n*w, nil
	}
	total := prefix
	for i := range n {
		m, err := sizeValue(elem, v.Index(i))
		if err != nil {
			return 0, err
		}
		total += m
	}
	return total, nil
}

func sizeCodec(p *plan.Plan, v reflect.Value) (int, error) {
	if s, ok := v.Interface().(encode.Sized); ok {
		return s.MaxEncodedSize(), nil
	}
	if v.CanAddr() {
		if s, ok := v.Addr().Interface().(encode.Sized); ok {
			return s.MaxEncodedSize(), nil
		}
	} else if reflect.PointerTo(p.Type).Implements(sizedType) {
		nv := reflect.New(p.Type)
		nv.Elem().Set(v)
		return nv.Interface().(encode.Sized).MaxEncodedSize(), nil
	}
	return 0, fmt.Errorf("%s implements encode.Encoder but not encode.Sized, so its size cannot be computed", p.Type)
}

// resultState validates that exactly one carrier field is set and returns
// the wire tag, the active field index, and its payload plan.
func resultState(p *plan.Plan, v reflect.Value) (byte, int, *plan.Plan, error) {
	okSet := !v.Field(p.OkIndex).IsNil()
	errSet := !v.Field(p.ErrIndex).IsNil()
	switch {
	case okSet && !errSet:
		return 0, p.OkIndex, p.Ok, nil
	case errSet && !okSet:
		return 1, p.ErrIndex, p.Err, nil
	case okSet && errSet:
		return 0, 0, nil, errors.VariantError{Set: 2}
	default:
		return 0, 0, nil, errors.VariantError{Set: 0}
	}
}

// variantState validates that exactly one case field is set and returns its
// index in the plan's case list.
func variantState(p *plan.Plan, v reflect.Value) (int, error) {
	idx, set := -1, 0
	for i := range p.Cases {
		if !v.Field(p.Cases[i].Index).IsNil() {
			set++
			idx = i
		}
	}
	if set != 1 {
		return 0, errors.VariantError{Set: set}
	}
	return idx, nil
}
