package derive

import (
	"fmt"
	"math"
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/wippyai/octet/errors"
)

// Integer constrains enum base types to Go's integer kinds.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// The registries are process-wide, like gob's type registry, and consulted
// by every Compiler at plan build time. Registration happens during program
// setup; the maps tolerate concurrent readers while late registrations come
// in.
var (
	enums    = xsync.NewMapOf[reflect.Type, *enumSet]()
	variants = xsync.NewMapOf[reflect.Type, *variantSpec]()
)

type enumSet struct {
	values map[int64]struct{}
}

type variantSpec struct {
	cases []registeredCase
}

type registeredCase struct {
	field string
	index int
	disc  int64
}

// RegisterEnum declares the assigned value set of a named integer type.
// Codecs built for the type reject values outside the set in both
// directions, and the type's underlying width becomes the wire width.
// Register from an init function, before the first codec touches the type.
// Registering a type twice panics, as does a value outside the type's wire
// range or a duplicate value.
func RegisterEnum[T Integer](values ...T) {
	t := reflect.TypeFor[T]()
	if t.PkgPath() == "" {
		panic(fmt.Sprintf("derive: enum type %s must be a named type", t))
	}
	if len(values) == 0 {
		panic(fmt.Sprintf("derive: enum %s needs at least one value", t))
	}
	lo, hi := wireRange(t.Kind())
	set := &enumSet{values: make(map[int64]struct{}, len(values))}
	for _, v := range values {
		d := int64(v)
		if d < lo || d > hi {
			panic(fmt.Sprintf("derive: enum %s value %d is outside the wire range %d..%d", t, d, lo, hi))
		}
		if _, dup := set.values[d]; dup {
			panic(fmt.Sprintf("derive: enum %s value %d registered twice", t, d))
		}
		set.values[d] = struct{}{}
	}
	if _, loaded := enums.LoadOrStore(t, set); loaded {
		panic(fmt.Sprintf("derive: enum %s already registered", t))
	}
}

// wireRange returns the value range an integer kind can carry on the wire.
// uint and int travel as 16-bit forms, so their range is narrower than the
// in-memory type.
func wireRange(k reflect.Kind) (int64, int64) {
	switch k {
	case reflect.Uint8:
		return 0, math.MaxUint8
	case reflect.Uint16, reflect.Uint:
		return 0, errors.MaxUint
	case reflect.Uint32:
		return 0, math.MaxUint32
	case reflect.Uint64:
		return 0, math.MaxInt64
	case reflect.Int8:
		return math.MinInt8, math.MaxInt8
	case reflect.Int16, reflect.Int:
		return errors.MinInt, errors.MaxInt
	case reflect.Int32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// Case declares one variant case for RegisterVariant. Build cases with Auto
// and At.
type Case struct {
	// Field names the exported pointer field carrying the case payload.
	Field string

	// Value is the explicit discriminant, meaningful when Explicit is set.
	Value int64

	Explicit bool
}

// Auto declares a case whose discriminant continues the sequence.
func Auto(field string) Case {
	return Case{Field: field}
}

// At declares a case with an explicit discriminant. The sequence resumes
// counting upward from it.
func At(field string, value int64) Case {
	return Case{Field: field, Value: value, Explicit: true}
}

// Discriminants resolves a declared case list to concrete values: the first
// case takes 0, an implicit case takes the previous value plus one, and an
// explicit value resets the sequence to itself.
func Discriminants(cases ...Case) []int64 {
	out := make([]int64, len(cases))
	next := int64(0)
	for i, c := range cases {
		if c.Explicit {
			next = c.Value
		}
		out[i] = next
		next++
	}
	return out
}

// RegisterVariant declares the case set of a variant struct: one exported
// pointer field per case, of which exactly one is non-nil in a valid value.
// Use *struct{} for cases without a payload. Discriminants follow the
// sequence rule, see Discriminants, and are written per the default signed
// rule, so they must fit 16 bits. Registering a type twice, naming a
// missing, promoted, or non-pointer field, or producing a duplicate
// discriminant panics.
func RegisterVariant[T any](cases ...Case) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("derive: variant type %s must be a struct", t))
	}
	if len(cases) == 0 {
		panic(fmt.Sprintf("derive: variant %s needs at least one case", t))
	}
	discs := Discriminants(cases...)
	spec := &variantSpec{cases: make([]registeredCase, len(cases))}
	usedDisc := make(map[int64]string, len(cases))
	usedField := make(map[string]bool, len(cases))
	for i, cs := range cases {
		f, ok := t.FieldByName(cs.Field)
		if !ok || len(f.Index) != 1 || !f.IsExported() {
			panic(fmt.Sprintf("derive: variant %s has no case field %s", t, cs.Field))
		}
		if f.Type.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("derive: variant %s case field %s must be a pointer", t, cs.Field))
		}
		if usedField[cs.Field] {
			panic(fmt.Sprintf("derive: variant %s case field %s declared twice", t, cs.Field))
		}
		usedField[cs.Field] = true
		d := discs[i]
		if d < errors.MinInt || d > errors.MaxInt {
			panic(fmt.Sprintf("derive: variant %s case %s discriminant %d does not fit the wire form", t, cs.Field, d))
		}
		if prev, dup := usedDisc[d]; dup {
			panic(fmt.Sprintf("derive: variant %s cases %s and %s share discriminant %d", t, prev, cs.Field, d))
		}
		usedDisc[d] = cs.Field
		spec.cases[i] = registeredCase{field: cs.Field, index: f.Index[0], disc: d}
	}
	if _, loaded := variants.LoadOrStore(t, spec); loaded {
		panic(fmt.Sprintf("derive: variant %s already registered", t))
	}
}
