package derive

import (
	"slices"
	"strings"
	"testing"
)

func TestDiscriminants(t *testing.T) {
	tests := []struct {
		name  string
		cases []Case
		want  []int64
	}{
		{
			"implicit from zero",
			[]Case{Auto("A"), Auto("B"), Auto("C")},
			[]int64{0, 1, 2},
		},
		{
			"explicit resets the sequence",
			[]Case{At("Two", 2), Auto("Three"), At("Zero", 0), Auto("One")},
			[]int64{2, 3, 0, 1},
		},
		{
			"resume after explicit",
			[]Case{At("A", 10), Auto("B")},
			[]int64{10, 11},
		},
		{
			"negative explicit",
			[]Case{At("A", -3), Auto("B")},
			[]int64{-3, -2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Discriminants(tt.cases...); !slices.Equal(got, tt.want) {
				t.Fatalf("Discriminants = %v, want %v", got, tt.want)
			}
		})
	}
}

func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, want) {
			t.Fatalf("panic = %v, want substring %q", r, want)
		}
	}()
	fn()
}

type dupEnum uint8

type wideEnum int

type emptyEnum uint8

type missingField struct {
	A *uint8
}

type valueField struct {
	A uint8
}

type clashVariant struct {
	A *uint8
	B *uint8
}

type rangeVariant struct {
	A *uint8
}

type twiceVariant struct {
	A *uint8
	B *uint8
}

type emptyVariant struct {
	A *uint8
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		want string
		fn   func()
	}{
		{"enum re-registration", "already registered", func() { RegisterEnum[Color](Red) }},
		{"enum unnamed type", "must be a named type", func() { RegisterEnum[uint8](1) }},
		{"enum empty set", "at least one value", func() { RegisterEnum[emptyEnum]() }},
		{"enum out of wire range", "wire range", func() { RegisterEnum[wideEnum](40000) }},
		{"enum duplicate value", "registered twice", func() { RegisterEnum[dupEnum](3, 3) }},
		{"variant non-struct", "must be a struct", func() { RegisterVariant[int](Auto("X")) }},
		{"variant empty case list", "at least one case", func() { RegisterVariant[emptyVariant]() }},
		{"variant missing field", "no case field", func() { RegisterVariant[missingField](Auto("B")) }},
		{"variant non-pointer field", "must be a pointer", func() { RegisterVariant[valueField](Auto("A")) }},
		{"variant discriminant clash", "share discriminant", func() { RegisterVariant[clashVariant](At("A", 1), At("B", 1)) }},
		{"variant discriminant range", "wire form", func() { RegisterVariant[rangeVariant](At("A", 40000)) }},
		{"variant field twice", "declared twice", func() { RegisterVariant[twiceVariant](At("A", 0), At("A", 5)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustPanic(t, tt.want, tt.fn)
		})
	}
}
