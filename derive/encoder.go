package derive

import (
	"cmp"
	"fmt"
	"net/netip"
	"reflect"
	"slices"
	"time"

	"github.com/wippyai/octet/derive/internal/plan"
	"github.com/wippyai/octet/encode"
	"github.com/wippyai/octet/errors"
)

// encodeValue walks one plan node, appending v's canonical encoding to o.
// Failures surface through the shared taxonomy with field and item wrapping
// along the walk path.
func encodeValue(o *encode.Output, p *plan.Plan, v reflect.Value) error {
	if p.NonZero && intIsZero(p.Kind, v) {
		return errors.NonZeroError{}
	}

	switch p.Kind {
	case plan.KindBool:
		return encode.Bool(o, v.Bool())
	case plan.KindUint8:
		return encode.Uint8(o, uint8(v.Uint()))
	case plan.KindUint16:
		return encode.Uint16(o, uint16(v.Uint()))
	case plan.KindUint32:
		return encode.Uint32(o, uint32(v.Uint()))
	case plan.KindUint64:
		return encode.Uint64(o, v.Uint())
	case plan.KindUint:
		return encode.Uint(o, uint(v.Uint()))
	case plan.KindInt8:
		return encode.Int8(o, int8(v.Int()))
	case plan.KindInt16:
		return encode.Int16(o, int16(v.Int()))
	case plan.KindInt32:
		return encode.Int32(o, int32(v.Int()))
	case plan.KindInt64:
		return encode.Int64(o, v.Int())
	case plan.KindInt:
		return encode.Int(o, int(v.Int()))
	case plan.KindRune:
		return encode.Rune(o, rune(v.Int()))
	case plan.KindFloat32:
		return encode.Float32(o, float32(v.Float()))
	case plan.KindFloat64:
		return encode.Float64(o, v.Float())
	case plan.KindTime:
		return encode.Time(o, v.Interface().(time.Time))
	case plan.KindDuration:
		return encode.Duration(o, time.Duration(v.Int()))
	case plan.KindAddr:
		return encode.Addr(o, v.Interface().(netip.Addr))
	case plan.KindAddrPort:
		return encode.AddrPort(o, v.Interface().(netip.AddrPort))
	case plan.KindEmpty:
		return nil
	case plan.KindString:
		return encode.String(o, v.String())
	case plan.KindBytes:
		return encode.Bytes(o, v.Bytes())
	case plan.KindStruct:
		return encodeStruct(o, p, v)
	case plan.KindSlice:
		return encodeSlice(o, p, v)
	case plan.KindArray:
		return encodeArray(o, p, v)
	case plan.KindOption:
		return encodeOption(o, p, v)
	case plan.KindResult:
		return encodeResult(o, p, v)
	case plan.KindMap:
		return encodeMap(o, p, v)
	case plan.KindEnum:
		return encodeEnum(o, p, v)
	case plan.KindVariant:
		return encodeVariant(o, p, v)
	case plan.KindCodec:
		return encodeCodec(o, p, v)
	default:
		return fmt.Errorf("unhandled plan kind %s", p.Kind)
	}
}

func intIsZero(k plan.Kind, v reflect.Value) bool {
	if k.IsUnsigned() {
		return v.Uint() == 0
	}
	return v.Int() == 0
}

func encodeStruct(o *encode.Output, p *plan.Plan, v reflect.Value) error {
	for i := range p.Fields {
		f := &p.Fields[i]
		if err := encodeValue(o, f.Plan, v.Field(f.Index)); err != nil {
			return errors.Field(f.Name, err)
		}
	}
	return nil
}

func encodeSlice(o *encode.Output, p *plan.Plan, v reflect.Value) error {
	n := v.Len()
	if err := encode.Uint(o, uint(n)); err != nil {
		return err
	}
	for i := range n {
		if err := encodeValue(o, p.Elem, v.Index(i)); err != nil {
			return errors.Item(i, err)
		}
	}
	return nil
}

func encodeArray(o *encode.Output, p *plan.Plan, v reflect.Value) error {
	for i := range p.ArrayLen {
		if err := encodeValue(o, p.Elem, v.Index(i)); err != nil {
			return errors.Item(i, err)
		}
	}
	return nil
}

func encodeOption(o *encode.Output, p *plan.Plan, v reflect.Value) error {
	if v.IsNil() {
		return encode.Bool(o, false)
	}
	if err := encode.Bool(o, true); err != nil {
		return err
	}
	return encodeValue(o, p.Elem, v.Elem())
}

func encodeResult(o *encode.Output, p *plan.Plan, v reflect.Value) error {
	tag, idx, payload, err := resultState(p, v)
	if err != nil {
		return err
	}
	if err := encode.Uint8(o, tag); err != nil {
		return err
	}
	if err := encodeValue(o, payload, v.Field(idx).Elem()); err != nil {
		return errors.Field(p.Type.Field(idx).Name, err)
	}
	return nil
}

// encodeMap writes entries in ascending key order, so a map has exactly one
// encoding regardless of Go's iteration order.
func encodeMap(o *encode.Output, p *plan.Plan, v reflect.Value) error {
	if err := encode.Uint(o, uint(v.Len())); err != nil {
		return err
	}
	keys := v.MapKeys()
	sortKeys(p.Key.Kind, keys)
	for i, k := range keys {
		if err := encodeValue(o, p.Key, k); err != nil {
			return errors.Item(i, err)
		}
		if err := encodeValue(o, p.Val, v.MapIndex(k)); err != nil {
			return errors.Item(i, err)
		}
	}
	return nil
}

func sortKeys(k plan.Kind, keys []reflect.Value) {
	switch {
	case k == plan.KindString:
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) })
	case k == plan.KindFloat32 || k == plan.KindFloat64:
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.Float(), b.Float()) })
	case k.IsUnsigned():
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) })
	default:
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) })
	}
}

func encodeEnum(o *encode.Output, p *plan.Plan, v reflect.Value) error {
	var d int64
	if p.Base.IsUnsigned() {
		d = int64(v.Uint())
	} else {
		d = v.Int()
	}
	if _, ok := p.Values[d]; !ok {
		return errors.UnassignedDiscriminantError{Value: d}
	}
	if err := encodeBase(o, p.Base, v); err != nil {
		return errors.DiscriminantError{Err: err}
	}
	return nil
}

func encodeBase(o *encode.Output, base plan.Kind, v reflect.Value) error {
	switch base {
	case plan.KindUint8:
		return encode.Uint8(o, uint8(v.Uint()))
	case plan.KindUint16:
		return encode.Uint16(o, uint16(v.Uint()))
	case plan.KindUint32:
		return encode.Uint32(o, uint32(v.Uint()))
	case plan.KindUint64:
		return encode.Uint64(o, v.Uint())
	case plan.KindUint:
		return encode.Uint(o, uint(v.Uint()))
	case plan.KindInt8:
		return encode.Int8(o, int8(v.Int()))
	case plan.KindInt16:
		return encode.Int16(o, int16(v.Int()))
	case plan.KindInt32:
		return encode.Int32(o, int32(v.Int()))
	case plan.KindInt64:
		return encode.Int64(o, v.Int())
	default:
		return encode.Int(o, int(v.Int()))
	}
}

func encodeVariant(o *encode.Output, p *plan.Plan, v reflect.Value) error {
	idx, err := variantState(p, v)
	if err != nil {
		return err
	}
	cs := &p.Cases[idx]
	if err := encode.Int(o, int(cs.Disc)); err != nil {
		return errors.DiscriminantError{Err: err}
	}
	if err := encodeValue(o, cs.Plan, v.Field(cs.Index).Elem()); err != nil {
		return errors.Field(cs.Name, err)
	}
	return nil
}

func encodeCodec(o *encode.Output, p *plan.Plan, v reflect.Value) error {
	if enc, ok := v.Interface().(encode.Encoder); ok {
		return enc.Encode(o)
	}
	if v.CanAddr() {
		return v.Addr().Interface().(encode.Encoder).Encode(o)
	}
	nv := reflect.New(p.Type)
	nv.Elem().Set(v)
	return nv.Interface().(encode.Encoder).Encode(o)
}
