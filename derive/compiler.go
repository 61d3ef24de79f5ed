package derive

import (
	"fmt"
	"net/netip"
	"reflect"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/derive/internal/plan"
	"github.com/wippyai/octet/encode"
)

var (
	encoderType = reflect.TypeOf((*encode.Encoder)(nil)).Elem()
	sizedType   = reflect.TypeOf((*encode.Sized)(nil)).Elem()
	decoderType = reflect.TypeOf((*decode.Decoder)(nil)).Elem()

	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	addrType     = reflect.TypeOf(netip.Addr{})
	addrPortType = reflect.TypeOf(netip.AddrPort{})
	byteSlice    = reflect.TypeOf([]byte(nil))
)

// Compiler maps Go types to codec plans. Each type compiles once; the plan
// cache is safe for concurrent use and shared by every operation that goes
// through the same Compiler.
type Compiler struct {
	cache *xsync.MapOf[reflect.Type, *plan.Plan]
}

// NewCompiler returns a Compiler with an empty plan cache. Registered enums
// and variants are process-wide and visible to every Compiler.
func NewCompiler() *Compiler {
	return &Compiler{cache: xsync.NewMapOf[reflect.Type, *plan.Plan]()}
}

// Compile returns the codec plan for t, building it on first use.
func (c *Compiler) Compile(t reflect.Type) (*plan.Plan, error) {
	if p, ok := c.cache.Load(t); ok {
		return p, nil
	}
	p, err := c.compile(t, make(map[reflect.Type]*plan.Plan))
	if err != nil {
		return nil, err
	}
	actual, loaded := c.cache.LoadOrStore(t, p)
	if !loaded {
		debugf("compiled %s: kind %s, bound %d", t, p.Kind, p.MaxSize)
	}
	return actual, nil
}

// compile resolves one type. seen holds the plans already under construction
// in this session, so recursive types close back on their own shell instead
// of recursing forever; an in-progress shell reports no static bound, which
// is correct for any type that contains itself.
func (c *Compiler) compile(t reflect.Type, seen map[reflect.Type]*plan.Plan) (*plan.Plan, error) {
	if p, ok := seen[t]; ok {
		return p, nil
	}
	if p, ok := c.cache.Load(t); ok {
		return p, nil
	}

	switch t {
	case timeType:
		return leaf(t, plan.KindTime), nil
	case durationType:
		return leaf(t, plan.KindDuration), nil
	case addrType:
		return leaf(t, plan.KindAddr), nil
	case addrPortType:
		return leaf(t, plan.KindAddrPort), nil
	}

	if set, ok := enums.Load(t); ok {
		return c.compileEnum(t, set)
	}
	if spec, ok := variants.Load(t); ok {
		return c.compileVariant(t, spec, seen)
	}

	// Hand-written codecs win over structural derivation, except on pointer
	// types, which always carry option semantics.
	if t.Kind() != reflect.Pointer {
		encImpl := t.Implements(encoderType) || reflect.PointerTo(t).Implements(encoderType)
		decImpl := reflect.PointerTo(t).Implements(decoderType)
		switch {
		case encImpl && decImpl:
			return compileCodec(t), nil
		case encImpl:
			return nil, fmt.Errorf("%s implements encode.Encoder but *%s does not implement decode.Decoder", t, t)
		case decImpl:
			return nil, fmt.Errorf("*%s implements decode.Decoder but %s does not implement encode.Encoder", t, t)
		}
	}

	switch t.Kind() {
	case reflect.Bool:
		return leaf(t, plan.KindBool), nil
	case reflect.Uint8:
		return leaf(t, plan.KindUint8), nil
	case reflect.Uint16:
		return leaf(t, plan.KindUint16), nil
	case reflect.Uint32:
		return leaf(t, plan.KindUint32), nil
	case reflect.Uint64:
		return leaf(t, plan.KindUint64), nil
	case reflect.Uint:
		return leaf(t, plan.KindUint), nil
	case reflect.Int8:
		return leaf(t, plan.KindInt8), nil
	case reflect.Int16:
		return leaf(t, plan.KindInt16), nil
	case reflect.Int32:
		// Indistinguishable from rune; the octet:"char" tag opts a field
		// into code point validation.
		return leaf(t, plan.KindInt32), nil
	case reflect.Int64:
		return leaf(t, plan.KindInt64), nil
	case reflect.Int:
		return leaf(t, plan.KindInt), nil
	case reflect.Float32:
		return leaf(t, plan.KindFloat32), nil
	case reflect.Float64:
		return leaf(t, plan.KindFloat64), nil
	case reflect.String:
		return leaf(t, plan.KindString), nil
	case reflect.Slice:
		if t == byteSlice {
			return leaf(t, plan.KindBytes), nil
		}
		return c.compileSlice(t, seen)
	case reflect.Array:
		return c.compileArray(t, seen)
	case reflect.Map:
		return c.compileMap(t, seen)
	case reflect.Pointer:
		return c.compileOption(t, seen)
	case reflect.Struct:
		return c.compileStruct(t, seen)
	default:
		return nil, fmt.Errorf("cannot derive a codec for %s", t)
	}
}

func leaf(t reflect.Type, k plan.Kind) *plan.Plan {
	return &plan.Plan{Type: t, Kind: k, MaxSize: k.Width()}
}

// compileCodec plans a type with its own Encode and Decode. MaxEncodedSize
// is a method here, so its answer can depend on the instance; no static
// bound is claimed, and sizing asks the value being encoded instead.
func compileCodec(t reflect.Type) *plan.Plan {
	return &plan.Plan{Type: t, Kind: plan.KindCodec, MaxSize: -1}
}

func (c *Compiler) compileEnum(t reflect.Type, set *enumSet) (*plan.Plan, error) {
	base, ok := enumBase(t.Kind())
	if !ok {
		return nil, fmt.Errorf("enum %s: base type must be an integer", t)
	}
	return &plan.Plan{
		Type:    t,
		Kind:    plan.KindEnum,
		Base:    base,
		Values:  set.values,
		MaxSize: base.Width(),
	}, nil
}

// enumBase maps an enum's underlying Go kind to its wire form. The enum's
// declared type chooses the discriminant width.
func enumBase(k reflect.Kind) (plan.Kind, bool) {
	switch k {
	case reflect.Uint8:
		return plan.KindUint8, true
	case reflect.Uint16:
		return plan.KindUint16, true
	case reflect.Uint32:
		return plan.KindUint32, true
	case reflect.Uint64:
		return plan.KindUint64, true
	case reflect.Uint:
		return plan.KindUint, true
	case reflect.Int8:
		return plan.KindInt8, true
	case reflect.Int16:
		return plan.KindInt16, true
	case reflect.Int32:
		return plan.KindInt32, true
	case reflect.Int64:
		return plan.KindInt64, true
	case reflect.Int:
		return plan.KindInt, true
	}
	return 0, false
}

func (c *Compiler) compileSlice(t reflect.Type, seen map[reflect.Type]*plan.Plan) (*plan.Plan, error) {
	p := &plan.Plan{Type: t, Kind: plan.KindSlice, MaxSize: -1}
	seen[t] = p
	elem, err := c.compile(t.Elem(), seen)
	if err != nil {
		return nil, fmt.Errorf("%s element: %w", t, err)
	}
	p.Elem = elem
	return p, nil
}

func (c *Compiler) compileArray(t reflect.Type, seen map[reflect.Type]*plan.Plan) (*plan.Plan, error) {
	p := &plan.Plan{Type: t, Kind: plan.KindArray, ArrayLen: t.Len(), MaxSize: -1}
	seen[t] = p
	elem, err := c.compile(t.Elem(), seen)
	if err != nil {
		return nil, fmt.Errorf("%s element: %w", t, err)
	}
	p.Elem = elem
	if elem.Bounded() {
		p.MaxSize = elem.MaxSize * p.ArrayLen
	}
	return p, nil
}

func (c *Compiler) compileMap(t reflect.Type, seen map[reflect.Type]*plan.Plan) (*plan.Plan, error) {
	p := &plan.Plan{Type: t, Kind: plan.KindMap, MaxSize: -1}
	seen[t] = p
	key, err := c.compile(t.Key(), seen)
	if err != nil {
		return nil, fmt.Errorf("%s key: %w", t, err)
	}
	if !orderedKey(key.Kind) {
		return nil, fmt.Errorf("map key type %s is not ordered", t.Key())
	}
	val, err := c.compile(t.Elem(), seen)
	if err != nil {
		return nil, fmt.Errorf("%s value: %w", t, err)
	}
	p.Key, p.Val = key, val
	return p, nil
}

// orderedKey limits map keys to the shapes with a total order, so the
// canonical key sort is well defined.
func orderedKey(k plan.Kind) bool {
	return k.IsInteger() || k == plan.KindFloat32 || k == plan.KindFloat64 || k == plan.KindString
}

func (c *Compiler) compileOption(t reflect.Type, seen map[reflect.Type]*plan.Plan) (*plan.Plan, error) {
	p := &plan.Plan{Type: t, Kind: plan.KindOption, MaxSize: -1}
	seen[t] = p
	elem, err := c.compile(t.Elem(), seen)
	if err != nil {
		return nil, fmt.Errorf("%s element: %w", t, err)
	}
	p.Elem = elem
	if elem.Bounded() {
		p.MaxSize = encode.SizeTag + elem.MaxSize
	}
	return p, nil
}

func (c *Compiler) compileStruct(t reflect.Type, seen map[reflect.Type]*plan.Plan) (*plan.Plan, error) {
	if t.NumField() == 0 {
		return leaf(t, plan.KindEmpty), nil
	}
	if okIdx, errIdx, ok := resultShape(t); ok {
		return c.compileResult(t, okIdx, errIdx, seen)
	}

	p := &plan.Plan{Type: t, Kind: plan.KindStruct, MaxSize: -1}
	seen[t] = p
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, err := parseTag(f.Tag.Get("octet"))
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t, f.Name, err)
		}
		if tag.skip {
			continue
		}
		child, err := c.compile(f.Type, seen)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t, f.Name, err)
		}
		if tag.char {
			child, err = withChar(child)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", t, f.Name, err)
			}
		}
		if tag.nonzero {
			child, err = withNonZero(child)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", t, f.Name, err)
			}
		}
		p.Fields = append(p.Fields, plan.Field{Name: f.Name, Index: i, Plan: child})
	}
	if len(p.Fields) == 0 {
		return nil, fmt.Errorf("struct %s has no encodable fields", t)
	}

	size := 0
	for _, f := range p.Fields {
		size = addBound(size, f.Plan.MaxSize)
	}
	p.MaxSize = size
	return p, nil
}

func (c *Compiler) compileResult(t reflect.Type, okIdx, errIdx int, seen map[reflect.Type]*plan.Plan) (*plan.Plan, error) {
	p := &plan.Plan{Type: t, Kind: plan.KindResult, OkIndex: okIdx, ErrIndex: errIdx, MaxSize: -1}
	seen[t] = p
	okPlan, err := c.compile(t.Field(okIdx).Type.Elem(), seen)
	if err != nil {
		return nil, fmt.Errorf("result %s ok payload: %w", t, err)
	}
	errPlan, err := c.compile(t.Field(errIdx).Type.Elem(), seen)
	if err != nil {
		return nil, fmt.Errorf("result %s err payload: %w", t, err)
	}
	p.Ok, p.Err = okPlan, errPlan
	if okPlan.Bounded() && errPlan.Bounded() {
		p.MaxSize = encode.SizeTag + max(okPlan.MaxSize, errPlan.MaxSize)
	}
	return p, nil
}

func (c *Compiler) compileVariant(t reflect.Type, spec *variantSpec, seen map[reflect.Type]*plan.Plan) (*plan.Plan, error) {
	p := &plan.Plan{
		Type:       t,
		Kind:       plan.KindVariant,
		CaseByDisc: make(map[int64]int, len(spec.cases)),
		MaxSize:    -1,
	}
	seen[t] = p
	widest := 0
	for i, rc := range spec.cases {
		payload, err := c.compile(t.Field(rc.index).Type.Elem(), seen)
		if err != nil {
			return nil, fmt.Errorf("variant %s case %s: %w", t, rc.field, err)
		}
		p.Cases = append(p.Cases, plan.Case{Name: rc.field, Index: rc.index, Disc: rc.disc, Plan: payload})
		p.CaseByDisc[rc.disc] = i
		if widest >= 0 {
			if !payload.Bounded() {
				widest = -1
			} else if payload.MaxSize > widest {
				widest = payload.MaxSize
			}
		}
	}
	if widest >= 0 {
		p.MaxSize = encode.SizeInt + widest
	}
	return p, nil
}

// resultShape recognizes the two-case success/failure convention: exactly
// two exported pointer fields, one named Ok or Value, the other Err or
// Error. octet.Result has this shape.
func resultShape(t reflect.Type) (okIdx, errIdx int, ok bool) {
	if t.NumField() != 2 {
		return 0, 0, false
	}
	f0, f1 := t.Field(0), t.Field(1)
	if !f0.IsExported() || !f1.IsExported() {
		return 0, 0, false
	}
	if f0.Type.Kind() != reflect.Pointer || f1.Type.Kind() != reflect.Pointer {
		return 0, 0, false
	}
	switch {
	case okName(f0.Name) && errName(f1.Name):
		return 0, 1, true
	case okName(f1.Name) && errName(f0.Name):
		return 1, 0, true
	}
	return 0, 0, false
}

func okName(s string) bool {
	return strings.EqualFold(s, "Ok") || strings.EqualFold(s, "Value")
}

func errName(s string) bool {
	return strings.EqualFold(s, "Err") || strings.EqualFold(s, "Error")
}

type fieldTag struct {
	skip    bool
	char    bool
	nonzero bool
}

func parseTag(tag string) (fieldTag, error) {
	var ft fieldTag
	if tag == "" {
		return ft, nil
	}
	if tag == "-" {
		ft.skip = true
		return ft, nil
	}
	for _, part := range strings.Split(tag, ",") {
		switch part {
		case "char":
			ft.char = true
		case "nonzero":
			ft.nonzero = true
		case "":
		default:
			return ft, fmt.Errorf("unknown octet tag directive %q", part)
		}
	}
	return ft, nil
}

// withChar rewrites an int32-shaped plan into a rune plan. The copy keeps
// the shared original intact for fields without the tag.
func withChar(p *plan.Plan) (*plan.Plan, error) {
	switch {
	case p.Kind == plan.KindInt32:
		return leaf(p.Type, plan.KindRune), nil
	case (p.Kind == plan.KindSlice || p.Kind == plan.KindArray || p.Kind == plan.KindOption) && p.Elem != nil && p.Elem.Kind == plan.KindInt32:
		q := *p
		q.Elem = leaf(p.Elem.Type, plan.KindRune)
		return &q, nil
	}
	return nil, fmt.Errorf("octet tag \"char\" requires an int32-shaped field, got %s", p.Type)
}

// withNonZero marks an integer or rune plan, directly or through one
// pointer, as rejecting zero.
func withNonZero(p *plan.Plan) (*plan.Plan, error) {
	switch {
	case p.Kind.IsInteger() || p.Kind == plan.KindRune:
		q := *p
		q.NonZero = true
		return &q, nil
	case p.Kind == plan.KindOption && p.Elem != nil && (p.Elem.Kind.IsInteger() || p.Elem.Kind == plan.KindRune):
		elem := *p.Elem
		elem.NonZero = true
		q := *p
		q.Elem = &elem
		return &q, nil
	}
	return nil, fmt.Errorf("octet tag \"nonzero\" requires an integer field, got %s", p.Type)
}

func addBound(a, b int) int {
	if a < 0 || b < 0 {
		return -1
	}
	return a + b
}
