package derive

import (
	"fmt"
	"reflect"

	"github.com/wippyai/octet/decode"
	"github.com/wippyai/octet/derive/internal/plan"
	"github.com/wippyai/octet/encode"
)

// defaultCompiler backs the package-level functions. Plans compile once per
// type across the whole program; most callers never need their own
// Compiler.
var defaultCompiler = NewCompiler()

// Marshal returns v's canonical encoding in a fresh buffer. The buffer is
// sized by a pre-pass over the value, so types without a static bound
// marshal fine. v must be the value itself: pointers encode as options
// inside structures and are rejected at the top level.
func Marshal(v any) ([]byte, error) {
	return defaultCompiler.Marshal(v)
}

// Unmarshal decodes one encoding from the front of data into the value out
// points to.
func Unmarshal(data []byte, out any) error {
	return defaultCompiler.Unmarshal(data, out)
}

// Encode appends v's encoding to o.
func Encode(o *encode.Output, v any) error {
	return defaultCompiler.Encode(o, v)
}

// Decode consumes one encoding from in into the value out points to.
func Decode(in *decode.Input, out any) error {
	return defaultCompiler.Decode(in, out)
}

// Size returns a byte count sufficient to encode v: exact for structural
// shapes, an upper bound where addresses or delegated codecs are involved.
func Size(v any) (int, error) {
	return defaultCompiler.Size(v)
}

// MaxEncodedSize returns the static encoded size bound shared by all values
// of t. Types containing strings, slices, maps, themselves, or delegated
// codecs have no bound and return an error.
func MaxEncodedSize(t reflect.Type) (int, error) {
	return defaultCompiler.MaxEncodedSize(t)
}

func (c *Compiler) Marshal(v any) ([]byte, error) {
	rv, p, err := c.planFor(v)
	if err != nil {
		return nil, err
	}
	n, err := sizeValue(p, rv)
	if err != nil {
		return nil, err
	}
	o := encode.NewOutput(make([]byte, n))
	if err := encodeValue(o, p, rv); err != nil {
		return nil, err
	}
	return o.Bytes(), nil
}

func (c *Compiler) Unmarshal(data []byte, out any) error {
	return c.Decode(decode.NewInput(data), out)
}

func (c *Compiler) Encode(o *encode.Output, v any) error {
	rv, p, err := c.planFor(v)
	if err != nil {
		return err
	}
	return encodeValue(o, p, rv)
}

func (c *Compiler) Decode(in *decode.Input, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("derive: decode target must be a non-nil pointer, got %T", out)
	}
	p, err := c.Compile(rv.Type().Elem())
	if err != nil {
		return err
	}
	return decodeValue(in, p, rv.Elem())
}

func (c *Compiler) Size(v any) (int, error) {
	rv, p, err := c.planFor(v)
	if err != nil {
		return 0, err
	}
	return sizeValue(p, rv)
}

func (c *Compiler) MaxEncodedSize(t reflect.Type) (int, error) {
	p, err := c.Compile(t)
	if err != nil {
		return 0, err
	}
	if !p.Bounded() {
		return 0, fmt.Errorf("%s has no static encoded size bound", t)
	}
	return p.MaxSize, nil
}

func (c *Compiler) planFor(v any) (reflect.Value, *plan.Plan, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return rv, nil, fmt.Errorf("derive: cannot encode nil")
	}
	if rv.Kind() == reflect.Pointer {
		return rv, nil, fmt.Errorf("derive: pass the value, not a pointer to it; pointers encode as options")
	}
	p, err := c.Compile(rv.Type())
	if err != nil {
		return rv, nil, err
	}
	return rv, p, nil
}
