package encode

import (
	"encoding/binary"
	"math"
	"net/netip"
	"time"
	"unicode/utf8"

	"github.com/wippyai/octet/errors"
	"github.com/wippyai/octet/internal/wire"
)

// Encoded widths of the primitive wire forms, in bytes. Composite bounds are
// built by summing these; see the rules on Sized.
const (
	SizeBool     = wire.SizeBool
	SizeUint8    = wire.SizeUint8
	SizeInt8     = wire.SizeInt8
	SizeUint16   = wire.SizeUint16
	SizeInt16    = wire.SizeInt16
	SizeUint32   = wire.SizeUint32
	SizeInt32    = wire.SizeInt32
	SizeUint64   = wire.SizeUint64
	SizeInt64    = wire.SizeInt64
	SizeFloat32  = wire.SizeFloat32
	SizeFloat64  = wire.SizeFloat64
	SizeRune     = wire.SizeRune
	SizeUint     = wire.SizeUint // uint travels as u16
	SizeInt      = wire.SizeInt  // int travels as i16
	SizeTag      = wire.SizeTag  // Option presence and Result/variant selectors
	SizeTime     = wire.SizeTime
	SizeDuration = wire.SizeDuration

	// SizeAddr and SizeAddrPort are upper bounds; a v4 address encodes
	// shorter.
	SizeAddr     = 1 + 16
	SizeAddrPort = SizeAddr + SizeUint16
)

// Encoder is implemented by values that append their canonical encoding to
// an output cursor.
type Encoder interface {
	Encode(o *Output) error
}

// Sized is an Encoder that bounds its own encoded size: an Encode of the
// value never writes more than MaxEncodedSize reports. For most types the
// bound is a constant shared by every value; capacity-carrying types such
// as seq.String answer per instance. Bounds compose structurally: a struct
// bound is the sum of its field bounds, a variant bound is the selector
// plus the largest payload, an array bound is the element bound times the
// length, and a bounded sequence adds its length prefix.
type Sized interface {
	Encoder
	MaxEncodedSize() int
}

// Func encodes a single value of type T to o. Every primitive function in
// this package has this shape, and the combinators both accept and return
// it.
type Func[T any] func(o *Output, v T) error

// Of adapts an Encoder implementation to function form.
func Of[T Encoder]() Func[T] {
	return func(o *Output, v T) error {
		return v.Encode(o)
	}
}

// Bool writes one byte: 0x01 for true, 0x00 for false.
func Bool(o *Output, v bool) error {
	if v {
		return o.WriteByte(0x01)
	}
	return o.WriteByte(0x00)
}

func Uint8(o *Output, v uint8) error {
	return o.WriteByte(v)
}

func Int8(o *Output, v int8) error {
	return o.WriteByte(byte(v))
}

func Uint16(o *Output, v uint16) error {
	var b [SizeUint16]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return o.Write(b[:])
}

func Int16(o *Output, v int16) error {
	return Uint16(o, uint16(v))
}

func Uint32(o *Output, v uint32) error {
	var b [SizeUint32]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return o.Write(b[:])
}

func Int32(o *Output, v int32) error {
	return Uint32(o, uint32(v))
}

func Uint64(o *Output, v uint64) error {
	var b [SizeUint64]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return o.Write(b[:])
}

func Int64(o *Output, v int64) error {
	return Uint64(o, uint64(v))
}

func Float32(o *Output, v float32) error {
	return Uint32(o, math.Float32bits(v))
}

func Float64(o *Output, v float64) error {
	return Uint64(o, math.Float64bits(v))
}

// Uint writes a uint as its 16-bit wire form. Values beyond 65535 fail with
// errors.UintRangeError. Length prefixes use this rule.
func Uint(o *Output, v uint) error {
	if v > errors.MaxUint {
		return errors.UintRangeError{Value: v}
	}
	return Uint16(o, uint16(v))
}

// Int writes an int as its 16-bit wire form. Values outside the int16 range
// fail with errors.IntRangeError.
func Int(o *Output, v int) error {
	if v < errors.MinInt || v > errors.MaxInt {
		return errors.IntRangeError{Value: v}
	}
	return Int16(o, int16(v))
}

// Rune writes a code point as a 4-byte little-endian value. Surrogates and
// values beyond U+10FFFF fail with errors.CharError; Go runes are unchecked
// integers, so the validation cannot be skipped on this side.
func Rune(o *Output, r rune) error {
	if !utf8.ValidRune(r) {
		return errors.CharError{CodePoint: uint32(r)}
	}
	return Uint32(o, uint32(r))
}

// String writes a length prefix followed by the raw bytes. The bytes must be
// valid UTF-8; the first malformed byte fails the encode with
// errors.UTF8Error so that a matching decode is always possible.
func String(o *Output, s string) error {
	if err := wire.CheckUTF8String(s); err != nil {
		return err
	}
	if err := Uint(o, uint(len(s))); err != nil {
		return err
	}
	return o.Write([]byte(s))
}

// Bytes writes a length prefix followed by the raw bytes.
func Bytes(o *Output, b []byte) error {
	if err := Uint(o, uint(len(b))); err != nil {
		return err
	}
	return o.Write(b)
}

// Duration writes the nanosecond count as an i64.
func Duration(o *Output, d time.Duration) error {
	return Int64(o, int64(d))
}

// Time writes the Unix second count as an i64. Sub-second precision and
// location are not carried.
func Time(o *Output, t time.Time) error {
	return Int64(o, t.Unix())
}

// Addr writes an address family byte (4 or 6) followed by the raw address
// octets. Invalid addresses (the netip.Addr zero value) fail with
// errors.AddrError.
func Addr(o *Output, a netip.Addr) error {
	switch {
	case a.Is4():
		if err := o.WriteByte(4); err != nil {
			return err
		}
		b := a.As4()
		return o.Write(b[:])
	case a.IsValid():
		if err := o.WriteByte(6); err != nil {
			return err
		}
		b := a.As16()
		return o.Write(b[:])
	default:
		return errors.AddrError{Family: 0}
	}
}

// AddrPort writes the address followed by a u16 port.
func AddrPort(o *Output, ap netip.AddrPort) error {
	if err := Addr(o, ap.Addr()); err != nil {
		return err
	}
	return Uint16(o, ap.Port())
}
