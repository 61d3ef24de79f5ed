package derive

import (
	"fmt"
	"reflect"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/derive/internal/plan"
	"github.com/wippyai/octet/errors"
)

// decodeValue walks one plan node, consuming its encoding from in and
// filling v, which must be addressable. On failure the target's contents
// are unspecified; callers that need all-or-nothing semantics decode into a
// fresh value first.
func decodeValue(in *decode.Input, p *plan.Plan, v reflect.Value) error {
	if err := decodeInto(in, p, v); err != nil {
		return err
	}
	if p.NonZero && intIsZero(p.Kind, v) {
		return errors.NonZeroError{}
	}
	return nil
}

func decodeInto(in *decode.Input, p *plan.Plan, v reflect.Value) error {
	switch p.Kind {
	case plan.KindBool:
		b, err := decode.Bool(in)
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil
	case plan.KindUint8:
		x, err := decode.Uint8(in)
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case plan.KindUint16:
		x, err := decode.Uint16(in)
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case plan.KindUint32:
		x, err := decode.Uint32(in)
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case plan.KindUint64:
		x, err := decode.Uint64(in)
		if err != nil {
			return err
		}
		v.SetUint(x)
		return nil
	case plan.KindUint:
		x, err := decode.Uint(in)
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case plan.KindInt8:
		x, err := decode.Int8(in)
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case plan.KindInt16:
		x, err := decode.Int16(in)
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case plan.KindInt32:
		x, err := decode.Int32(in)
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case plan.KindInt64:
		x, err := decode.Int64(in)
		if err != nil {
			return err
		}
		v.SetInt(x)
		return nil
	case plan.KindInt:
		x, err := decode.Int(in)
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case plan.KindRune:
		r, err := decode.Rune(in)
		if err != nil {
			return err
		}
		v.SetInt(int64(r))
		return nil
	case plan.KindFloat32:
		f, err := decode.Float32(in)
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))
		return nil
	case plan.KindFloat64:
		f, err := decode.Float64(in)
		if err != nil {
			return err
		}
		v.SetFloat(f)
		return nil
	case plan.KindTime:
		t, err := decode.Time(in)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(t))
		return nil
	case plan.KindDuration:
		d, err := decode.Duration(in)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	case plan.KindAddr:
		a, err := decode.Addr(in)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(a))
		return nil
	case plan.KindAddrPort:
		ap, err := decode.AddrPort(in)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(ap))
		return nil
	case plan.KindEmpty:
		return nil
	case plan.KindString:
		s, err := decode.String(in)
		if err != nil {
			return err
		}
		v.SetString(s)
		return nil
	case plan.KindBytes:
		b, err := decode.Bytes(in)
		if err != nil {
			return err
		}
		v.SetBytes(b)
		return nil
	case plan.KindStruct:
		return decodeStruct(in, p, v)
	case plan.KindSlice:
		return decodeSlice(in, p, v)
	case plan.KindArray:
		return decodeArray(in, p, v)
	case plan.KindOption:
		return decodeOption(in, p, v)
	case plan.KindResult:
		return decodeResult(in, p, v)
	case plan.KindMap:
		return decodeMap(in, p, v)
	case plan.KindEnum:
		return decodeEnum(in, p, v)
	case plan.KindVariant:
		return decodeVariant(in, p, v)
	case plan.KindCodec:
		return v.Addr().Interface().(decode.Decoder).Decode(in)
	default:
		return fmt.Errorf("unhandled plan kind %s", p.Kind)
	}
}

func decodeStruct(in *decode.Input, p *plan.Plan, v reflect.Value) error {
	for i := range p.Fields {
		f := &p.Fields[i]
		if err := decodeValue(in, f.Plan, v.Field(f.Index)); err != nil {
			return errors.Field(f.Name, err)
		}
	}
	return nil
}

func decodeSlice(in *decode.Input, p *plan.Plan, v reflect.Value) error {
	n, err := decode.Uint(in)
	if err != nil {
		return err
	}
	s := reflect.MakeSlice(p.Type, int(n), int(n))
	for i := range int(n) {
		if err := decodeValue(in, p.Elem, s.Index(i)); err != nil {
			return errors.Item(i, err)
		}
	}
	v.Set(s)
	return nil
}

func decodeArray(in *decode.Input, p *plan.Plan, v reflect.Value) error {
	for i := range p.ArrayLen {
		if err := decodeValue(in, p.Elem, v.Index(i)); err != nil {
			return errors.Item(i, err)
		}
	}
	return nil
}

func decodeOption(in *decode.Input, p *plan.Plan, v reflect.Value) error {
	present, err := decode.Bool(in)
	if err != nil {
		return err
	}
	if !present {
		v.SetZero()
		return nil
	}
	nv := reflect.New(p.Type.Elem())
	if err := decodeValue(in, p.Elem, nv.Elem()); err != nil {
		return err
	}
	v.Set(nv)
	return nil
}

func decodeResult(in *decode.Input, p *plan.Plan, v reflect.Value) error {
	tag, err := decode.Uint8(in)
	if err != nil {
		return errors.DiscriminantError{Err: err}
	}
	var idx int
	var payload *plan.Plan
	switch tag {
	case 0:
		idx, payload = p.OkIndex, p.Ok
	case 1:
		idx, payload = p.ErrIndex, p.Err
	default:
		return errors.UnassignedDiscriminantError{Value: int64(tag)}
	}
	f := p.Type.Field(idx)
	nv := reflect.New(f.Type.Elem())
	if err := decodeValue(in, payload, nv.Elem()); err != nil {
		return errors.Field(f.Name, err)
	}
	v.Field(p.OkIndex).SetZero()
	v.Field(p.ErrIndex).SetZero()
	v.Field(idx).Set(nv)
	return nil
}

func decodeMap(in *decode.Input, p *plan.Plan, v reflect.Value) error {
	n, err := decode.Uint(in)
	if err != nil {
		return err
	}
	m := reflect.MakeMapWithSize(p.Type, int(n))
	for i := range int(n) {
		k := reflect.New(p.Type.Key()).Elem()
		if err := decodeValue(in, p.Key, k); err != nil {
			return errors.Item(i, err)
		}
		val := reflect.New(p.Type.Elem()).Elem()
		if err := decodeValue(in, p.Val, val); err != nil {
			return errors.Item(i, err)
		}
		m.SetMapIndex(k, val)
	}
	v.Set(m)
	return nil
}

func decodeEnum(in *decode.Input, p *plan.Plan, v reflect.Value) error {
	d, err := decodeBase(in, p.Base)
	if err != nil {
		return errors.DiscriminantError{Err: err}
	}
	if _, ok := p.Values[d]; !ok {
		return errors.UnassignedDiscriminantError{Value: d}
	}
	if p.Base.IsUnsigned() {
		v.SetUint(uint64(d))
	} else {
		v.SetInt(d)
	}
	return nil
}

func decodeBase(in *decode.Input, base plan.Kind) (int64, error) {
	switch base {
	case plan.KindUint8:
		x, err := decode.Uint8(in)
		return int64(x), err
	case plan.KindUint16:
		x, err := decode.Uint16(in)
		return int64(x), err
	case plan.KindUint32:
		x, err := decode.Uint32(in)
		return int64(x), err
	case plan.KindUint64:
		x, err := decode.Uint64(in)
		return int64(x), err
	case plan.KindUint:
		x, err := decode.Uint(in)
		return int64(x), err
	case plan.KindInt8:
		x, err := decode.Int8(in)
		return int64(x), err
	case plan.KindInt16:
		x, err := decode.Int16(in)
		return int64(x), err
	case plan.KindInt32:
		x, err := decode.Int32(in)
		return int64(x), err
	case plan.KindInt64:
		return decode.Int64(in)
	default:
		x, err := decode.Int(in)
		return int64(x), err
	}
}

func decodeVariant(in *decode.Input, p *plan.Plan, v reflect.Value) error {
	d, err := decode.Int(in)
	if err != nil {
		return errors.DiscriminantError{Err: err}
	}
	idx, ok := p.CaseByDisc[int64(d)]
	if !ok {
		return errors.UnassignedDiscriminantError{Value: int64(d)}
	}
	cs := &p.Cases[idx]
	nv := reflect.New(p.Type.Field(cs.Index).Type.Elem())
	if err := decodeValue(in, cs.Plan, nv.Elem()); err != nil {
		return errors.Field(cs.Name, err)
	}
	for i := range p.Cases {
		v.Field(p.Cases[i].Index).SetZero()
	}
	v.Field(cs.Index).Set(nv)
	return nil
}
