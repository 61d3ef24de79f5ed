package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "input",
			err:  InputError{Capacity: 4, Position: 2, Count: 5},
			want: "cannot read 5 bytes at position 2 from input with capacity 4",
		},
		{
			name: "input empty buffer",
			err:  InputError{Capacity: 0, Position: 0, Count: 1},
			want: "cannot read 1 bytes at position 0 from input with capacity 0",
		},
		{
			name: "output",
			err:  OutputError{Capacity: 8, Position: 6, Count: 4},
			want: "cannot write 4 bytes at position 6 to output with capacity 8",
		},
		{
			name: "length",
			err:  LengthError{Remaining: 4, Count: 5},
			want: "collection with 4 remaining slots cannot hold 5 more elements",
		},
		{
			name: "bool",
			err:  BoolError{Value: 0x02},
			want: "value 0x02 is not a boolean",
		},
		{
			name: "char surrogate",
			err:  CharError{CodePoint: 0xD800},
			want: "code point U+D800 is not a unicode scalar value",
		},
		{
			name: "char beyond max",
			err:  CharError{CodePoint: 0x110000},
			want: "code point U+110000 is not a unicode scalar value",
		},
		{
			name: "utf8",
			err:  UTF8Error{Value: 0xF7, Index: 1},
			want: "invalid utf-8 octet 0xF7 at offset 1",
		},
		{
			name: "uint range",
			err:  UintRangeError{Value: 0x10000},
			want: "unsigned size 65536 cannot be encoded: must be at most 65535",
		},
		{
			name: "int range",
			err:  IntRangeError{Value: -40000},
			want: "signed size -40000 cannot be encoded: must be in range -32768 to 32767",
		},
		{
			name: "unassigned discriminant",
			err:  UnassignedDiscriminantError{Value: 3},
			want: "3 is not an assigned discriminant",
		},
		{
			name: "non-zero",
			err:  NonZeroError{},
			want: "expected non-zero integer but found 0",
		},
		{
			name: "variant",
			err:  VariantError{Set: 2},
			want: "variant with 2 set cases cannot be encoded: exactly one case must be set",
		},
		{
			name: "address family",
			err:  AddrError{Family: 9},
			want: "value 9 is not an ip address family",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapping(t *testing.T) {
	leaf := CharError{CodePoint: 0xDFFF}
	err := Item(3, Field("id", leaf))

	var item ItemError
	if !errors.As(err, &item) {
		t.Fatal("errors.As did not find ItemError")
	}
	if item.Index != 3 {
		t.Errorf("Index = %d, want 3", item.Index)
	}

	var field FieldError
	if !errors.As(err, &field) {
		t.Fatal("errors.As did not find FieldError through ItemError")
	}
	if field.Name != "id" {
		t.Errorf("Name = %q, want \"id\"", field.Name)
	}

	var char CharError
	if !errors.As(err, &char) {
		t.Fatal("errors.As did not find CharError at the leaf")
	}
	if char != leaf {
		t.Errorf("leaf = %v, want %v", char, leaf)
	}

	if !errors.Is(err, leaf) {
		t.Error("errors.Is did not match the wrapped leaf")
	}

	msg := err.Error()
	for _, part := range []string{"item 3", `field "id"`, "U+DFFF"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q does not contain %q", msg, part)
		}
	}
}

func TestDiscriminantWrapping(t *testing.T) {
	inner := InputError{Capacity: 1, Position: 0, Count: 2}
	err := DiscriminantError{Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is did not reach the wrapped input error")
	}
	if !strings.Contains(err.Error(), "discriminant:") {
		t.Errorf("message %q lacks discriminant prefix", err.Error())
	}
}

func TestLeafEquality(t *testing.T) {
	a := InputError{Capacity: 0, Position: 0, Count: 1}
	b := InputError{Capacity: 0, Position: 0, Count: 1}
	if !errors.Is(a, b) {
		t.Error("identical leaf errors should match under errors.Is")
	}

	c := InputError{Capacity: 0, Position: 0, Count: 2}
	if errors.Is(a, c) {
		t.Error("leaf errors with different fields should not match")
	}
}
