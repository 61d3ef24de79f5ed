package plan

import (
	"fmt"

	"github.com/wippyai/octet/encode"
)

// Kind classifies the wire shape a plan node encodes with.
type Kind uint8

const (
	KindBool Kind = iota
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindRune
	KindFloat32
	KindFloat64
	KindTime
	KindDuration
	KindAddr
	KindAddrPort
	KindEmpty
	KindString
	KindBytes
	KindStruct
	KindSlice
	KindArray
	KindOption
	KindResult
	KindMap
	KindEnum
	KindVariant
	KindCodec
)

var kindNames = [...]string{
	KindBool:     "bool",
	KindUint8:    "uint8",
	KindUint16:   "uint16",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindUint:     "uint",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindInt:      "int",
	KindRune:     "rune",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindTime:     "time",
	KindDuration: "duration",
	KindAddr:     "addr",
	KindAddrPort: "addrport",
	KindEmpty:    "empty",
	KindString:   "string",
	KindBytes:    "bytes",
	KindStruct:   "struct",
	KindSlice:    "slice",
	KindArray:    "array",
	KindOption:   "option",
	KindResult:   "result",
	KindMap:      "map",
	KindEnum:     "enum",
	KindVariant:  "variant",
	KindCodec:    "codec",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsInteger reports whether the kind is one of the integer forms, the only
// shapes the non-zero rule applies to besides runes.
func (k Kind) IsInteger() bool {
	return k >= KindUint8 && k <= KindInt
}

// IsUnsigned reports whether the kind extracts through reflect.Value.Uint.
func (k Kind) IsUnsigned() bool {
	return k >= KindUint8 && k <= KindUint
}

// Width returns the fixed encoded width of the kind in bytes, or -1 when the
// width depends on the value. Addr widths are upper bounds.
func (k Kind) Width() int {
	switch k {
	case KindBool:
		return encode.SizeBool
	case KindUint8, KindInt8:
		return encode.SizeUint8
	case KindUint16, KindInt16, KindUint, KindInt:
		return encode.SizeUint16
	case KindUint32, KindInt32, KindFloat32:
		return encode.SizeUint32
	case KindUint64, KindInt64, KindFloat64:
		return encode.SizeUint64
	case KindRune:
		return encode.SizeRune
	case KindTime:
		return encode.SizeTime
	case KindDuration:
		return encode.SizeDuration
	case KindAddr:
		return encode.SizeAddr
	case KindAddrPort:
		return encode.SizeAddrPort
	case KindEmpty:
		return 0
	default:
		return -1
	}
}
