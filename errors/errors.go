package errors

import (
	"fmt"
)

// Wire limits for the size types. A uint or int encodes as a 16-bit integer,
// so values outside these bounds cannot be represented.
const (
	MaxUint = 0xFFFF
	MaxInt  = 0x7FFF
	MinInt  = -0x8000
)

// InputError reports a read past the end of an input cursor.
type InputError struct {
	Capacity int // total size of the underlying buffer
	Position int // cursor position when the read was attempted
	Count    int // number of bytes requested
}

func (e InputError) Error() string {
	return fmt.Sprintf("cannot read %d bytes at position %d from input with capacity %d", e.Count, e.Position, e.Capacity)
}

// OutputError reports a write past the end of an output cursor.
type OutputError struct {
	Capacity int
	Position int
	Count    int
}

func (e OutputError) Error() string {
	return fmt.Sprintf("cannot write %d bytes at position %d to output with capacity %d", e.Count, e.Position, e.Capacity)
}

// LengthError reports that a bounded container cannot hold the requested
// number of elements.
type LengthError struct {
	Remaining int // free slots in the container
	Count     int // elements that were offered
}

func (e LengthError) Error() string {
	return fmt.Sprintf("collection with %d remaining slots cannot hold %d more elements", e.Remaining, e.Count)
}

// ItemError wraps a failure at a specific element of a sequence.
type ItemError struct {
	Index int
	Err   error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }

// Item wraps err with the index of the element it occurred at.
func Item(index int, err error) ItemError {
	return ItemError{Index: index, Err: err}
}

// FieldError wraps a failure at a named field of a structure.
type FieldError struct {
	Name string
	Err  error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Name, e.Err)
}

func (e FieldError) Unwrap() error { return e.Err }

// Field wraps err with the name of the field it occurred at.
func Field(name string, err error) FieldError {
	return FieldError{Name: name, Err: err}
}

// BoolError reports a byte that is neither 0x00 nor 0x01 where a boolean was
// expected.
type BoolError struct {
	Value byte
}

func (e BoolError) Error() string {
	return fmt.Sprintf("value 0x%02X is not a boolean", e.Value)
}

// CharError reports a code point outside the unicode scalar value ranges
// 0000..D7FF and E000..10FFFF.
type CharError struct {
	CodePoint uint32
}

func (e CharError) Error() string {
	return fmt.Sprintf("code point U+%04X is not a unicode scalar value", e.CodePoint)
}

// UTF8Error reports the first invalid byte of a malformed UTF-8 sequence.
type UTF8Error struct {
	Value byte // the offending octet
	Index int  // its offset from the start of the sequence
}

func (e UTF8Error) Error() string {
	return fmt.Sprintf("invalid utf-8 octet 0x%02X at offset %d", e.Value, e.Index)
}

// UintRangeError reports a uint too large for its 16-bit wire representation.
type UintRangeError struct {
	Value uint
}

func (e UintRangeError) Error() string {
	return fmt.Sprintf("unsigned size %d cannot be encoded: must be at most %d", e.Value, MaxUint)
}

// IntRangeError reports an int outside its 16-bit wire representation.
type IntRangeError struct {
	Value int
}

func (e IntRangeError) Error() string {
	return fmt.Sprintf("signed size %d cannot be encoded: must be in range %d to %d", e.Value, MinInt, MaxInt)
}

// DiscriminantError wraps a failure to decode the discriminant bytes of a
// variant value. It is distinct from UnassignedDiscriminantError, which
// reports bytes that decoded fine but name no variant.
type DiscriminantError struct {
	Err error
}

func (e DiscriminantError) Error() string {
	return fmt.Sprintf("discriminant: %v", e.Err)
}

func (e DiscriminantError) Unwrap() error { return e.Err }

// UnassignedDiscriminantError reports a decoded discriminant value that is
// not assigned to any variant.
type UnassignedDiscriminantError struct {
	Value int64
}

func (e UnassignedDiscriminantError) Error() string {
	return fmt.Sprintf("%d is not an assigned discriminant", e.Value)
}

// NonZeroError reports a zero where a non-zero integer is required.
type NonZeroError struct{}

func (NonZeroError) Error() string {
	return "expected non-zero integer but found 0"
}

// VariantError reports a variant or result value that does not hold exactly
// one active case.
type VariantError struct {
	Set int // number of case fields found non-nil
}

func (e VariantError) Error() string {
	return fmt.Sprintf("variant with %d set cases cannot be encoded: exactly one case must be set", e.Set)
}

// AddrError reports an unknown ip address family discriminant. Family is the
// raw byte from the wire, or 0 when an unspecified address was offered for
// encoding.
type AddrError struct {
	Family byte
}

func (e AddrError) Error() string {
	return fmt.Sprintf("value %d is not an ip address family", e.Family)
}
