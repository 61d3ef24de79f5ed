// Package octet implements a compact little-endian wire format over
// caller-owned buffers, with bounded cursors, fixed-capacity containers,
// and a structured error taxonomy.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	octet/          Root package with buffer-level helpers and Result
//	├── encode/     Output cursor, primitive encoders, combinators
//	├── decode/     Input cursor, primitive decoders, combinators
//	├── errors/     Error taxonomy shared by both directions
//	├── seq/        Fixed-capacity Vec and UTF-8 String containers
//	├── slot/       Reusable single-value codec buffers
//	└── derive/     Reflection-driven codecs for plain Go types
//
// # Quick Start
//
// Implement the codec protocol on a message type:
//
//	type Ping struct {
//		Seq  uint32
//		Load uint8
//	}
//
//	func (p Ping) Encode(o *encode.Output) error {
//		if err := encode.Uint32(o, p.Seq); err != nil {
//			return err
//		}
//		return encode.Uint8(o, p.Load)
//	}
//
//	func (p *Ping) Decode(in *decode.Input) error {
//		var err error
//		if p.Seq, err = decode.Uint32(in); err != nil {
//			return err
//		}
//		p.Load, err = decode.Uint8(in)
//		return err
//	}
//
//	func (Ping) MaxEncodedSize() int {
//		return encode.SizeUint32 + encode.SizeUint8
//	}
//
//	data, err := octet.Marshal(Ping{Seq: 7, Load: 2})
//
//	var got Ping
//	err = octet.Unmarshal(data, &got)
//
// Plain structs can skip the hand-written protocol and go through the
// derive package instead.
//
// # Wire Format
//
// Fixed-width values travel little-endian. Booleans are one strict byte,
// 0x00 or 0x01. Code points travel as 4-byte values and must be unicode
// scalar values. uint and int travel as 16-bit forms; length prefixes use
// the unsigned rule, so no sequence exceeds 65535 elements. Strings are
// length-prefixed UTF-8, validated in both directions. Options are a
// presence byte plus payload, results and variants a discriminant plus the
// active payload, structs the concatenation of their fields. Every decode
// failure is a typed error from the errors package; no input can cause a
// panic.
//
// # Thread Safety
//
// Values, cursors, and containers are single-owner during an operation and
// carry no internal locking. The derive compiler's plan cache is the one
// shared structure, and it is safe for concurrent use.
package octet
