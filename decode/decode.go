package decode

import (
	"bytes"
	"encoding/binary"
	"math"
	"net/netip"
	"time"

	"github.com/wippyai/octet/errors"
	"github.com/wippyai/octet/internal/wire"
)

// Decoder is implemented by types that consume their canonical encoding from
// an input cursor, filling the receiver. Implementations use a pointer
// receiver.
type Decoder interface {
	Decode(in *Input) error
}

// Func decodes a single value of type T from in. Every primitive function in
// this package has this shape, and the combinators both accept and return
// it.
type Func[T any] func(in *Input) (T, error)

// Of adapts a Decoder implementation to function form, decoding into a
// fresh zero value.
func Of[T any, PT interface {
	*T
	Decoder
}]() Func[T] {
	return func(in *Input) (T, error) {
		var v T
		if err := PT(&v).Decode(in); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// Bool reads one byte, requiring 0x00 or 0x01. Anything else fails with
// errors.BoolError so that every decoded value re-encodes to its original
// byte.
func Bool(in *Input) (bool, error) {
	b, err := in.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, errors.BoolError{Value: b}
	}
}

func Uint8(in *Input) (uint8, error) {
	return in.ReadByte()
}

func Int8(in *Input) (int8, error) {
	b, err := in.ReadByte()
	return int8(b), err
}

func Uint16(in *Input) (uint16, error) {
	p, err := in.Read(wire.SizeUint16)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

func Int16(in *Input) (int16, error) {
	v, err := Uint16(in)
	return int16(v), err
}

func Uint32(in *Input) (uint32, error) {
	p, err := in.Read(wire.SizeUint32)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

func Int32(in *Input) (int32, error) {
	v, err := Uint32(in)
	return int32(v), err
}

func Uint64(in *Input) (uint64, error) {
	p, err := in.Read(wire.SizeUint64)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

func Int64(in *Input) (int64, error) {
	v, err := Uint64(in)
	return int64(v), err
}

func Float32(in *Input) (float32, error) {
	v, err := Uint32(in)
	return math.Float32frombits(v), err
}

func Float64(in *Input) (float64, error) {
	v, err := Uint64(in)
	return math.Float64frombits(v), err
}

// Uint reads the 16-bit wire form of a uint. The extension to the native
// width cannot fail.
func Uint(in *Input) (uint, error) {
	v, err := Uint16(in)
	return uint(v), err
}

// Int reads the 16-bit wire form of an int, sign-extending to the native
// width.
func Int(in *Input) (int, error) {
	v, err := Int16(in)
	return int(v), err
}

// Rune reads a 4-byte code point, rejecting surrogates and values beyond
// U+10FFFF with errors.CharError.
func Rune(in *Input) (rune, error) {
	u, err := Uint32(in)
	if err != nil {
		return 0, err
	}
	if !wire.ValidScalar(u) {
		return 0, errors.CharError{CodePoint: u}
	}
	return rune(u), nil
}

// String reads a length prefix and that many bytes, validating them as
// UTF-8. The first malformed byte fails with errors.UTF8Error carrying the
// byte and its offset within the string.
func String(in *Input) (string, error) {
	n, err := Uint(in)
	if err != nil {
		return "", err
	}
	p, err := in.Read(int(n))
	if err != nil {
		return "", err
	}
	if err := wire.CheckUTF8(p); err != nil {
		return "", err
	}
	return string(p), nil
}

// Bytes reads a length prefix and that many bytes. Unlike Input.Read the
// result is a copy, safe to retain after the input buffer is reused.
func Bytes(in *Input) ([]byte, error) {
	n, err := Uint(in)
	if err != nil {
		return nil, err
	}
	p, err := in.Read(int(n))
	if err != nil {
		return nil, err
	}
	return bytes.Clone(p), nil
}

// Duration reads an i64 nanosecond count.
func Duration(in *Input) (time.Duration, error) {
	v, err := Int64(in)
	return time.Duration(v), err
}

// Time reads an i64 Unix second count. The result is in UTC; every i64 is a
// representable time, so only truncation can fail.
func Time(in *Input) (time.Time, error) {
	v, err := Int64(in)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(v, 0).UTC(), nil
}

// Addr reads an address family byte followed by 4 or 16 address octets.
// Unknown families fail with errors.AddrError.
func Addr(in *Input) (netip.Addr, error) {
	fam, err := in.ReadByte()
	if err != nil {
		return netip.Addr{}, err
	}
	switch fam {
	case 4:
		var b [4]byte
		if err := in.ReadInto(b[:]); err != nil {
			return netip.Addr{}, err
		}
		return netip.AddrFrom4(b), nil
	case 6:
		var b [16]byte
		if err := in.ReadInto(b[:]); err != nil {
			return netip.Addr{}, err
		}
		return netip.AddrFrom16(b), nil
	default:
		return netip.Addr{}, errors.AddrError{Family: fam}
	}
}

// AddrPort reads an address followed by a u16 port.
func AddrPort(in *Input) (netip.AddrPort, error) {
	addr, err := Addr(in)
	if err != nil {
		return netip.AddrPort{}, err
	}
	port, err := Uint16(in)
	if err != nil {
		return netip.AddrPort{}, err
	}
	return netip.AddrPortFrom(addr, port), nil
}

// NonZero wraps a decoder, rejecting the zero value with errors.NonZeroError.
func NonZero[T comparable](elem Func[T]) Func[T] {
	return func(in *Input) (T, error) {
		v, err := elem(in)
		if err != nil {
			return v, err
		}
		var zero T
		if v == zero {
			return zero, errors.NonZeroError{}
		}
		return v, nil
	}
}
