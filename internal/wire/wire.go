// Package wire holds byte-level helpers shared by the encode and decode
// packages.
package wire

import (
	"unicode/utf8"

	"github.com/wippyai/octet/errors"
)

// Widths of the primitive wire forms, in bytes. The encode package
// re-exports these as its public size constants.
const (
	SizeBool     = 1
	SizeUint8    = 1
	SizeInt8     = 1
	SizeUint16   = 2
	SizeInt16    = 2
	SizeUint32   = 4
	SizeInt32    = 4
	SizeUint64   = 8
	SizeInt64    = 8
	SizeFloat32  = 4
	SizeFloat64  = 8
	SizeRune     = 4
	SizeUint     = 2
	SizeInt      = 2
	SizeTag      = 1
	SizeTime     = 8
	SizeDuration = 8
)

// CheckUTF8 verifies that b is entirely valid UTF-8. Unlike utf8.Valid it
// reports the first offending byte and its offset, which the string codecs
// surface in their errors.
func CheckUTF8(b []byte) error {
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return errors.UTF8Error{Value: b[i], Index: i}
		}
		i += size
	}
	return nil
}

// CheckUTF8String is CheckUTF8 over a string without copying.
func CheckUTF8String(s string) error {
	for i := 0; i < len(s); {
		if s[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return errors.UTF8Error{Value: s[i], Index: i}
		}
		i += size
	}
	return nil
}

// ValidScalar reports whether u is a unicode scalar value: in range
// 0000..D7FF or E000..10FFFF.
func ValidScalar(u uint32) bool {
	return u < 0xD800 || (u >= 0xE000 && u <= 0x10FFFF)
}
