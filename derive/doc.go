// Package derive builds codecs for plain Go types by reflection, so a
// struct round-trips the wire format without a hand-written Encoder and
// Decoder.
//
// Each type compiles once into a plan, a tree mirroring the type's shape,
// cached concurrently and reused by every later operation:
//
//	type Point struct{ X, Y int32 }
//
//	data, err := derive.Marshal(Point{3, 4})
//	var p Point
//	err = derive.Unmarshal(data, &p)
//
// The structural rules follow the wire format exactly: struct fields encode
// in declaration order, pointers encode as options, slices and maps carry a
// length prefix, map entries are written in ascending key order, and fixed
// arrays carry none. A struct with exactly two exported pointer fields
// named Ok/Err (or Value/Error) encodes as a result, octet.Result included.
// time.Time, time.Duration, netip.Addr, and netip.AddrPort have dedicated
// forms. Unexported fields are skipped; a field tagged octet:"-" is skipped
// too. Because reflection cannot tell rune from int32, a field tagged
// octet:"char" opts into code point validation, and octet:"nonzero" rejects
// zero on integer fields in both directions.
//
// Types implementing encode.Encoder and decode.Decoder are delegated to,
// so hand-written codecs such as seq.String compose under derivation.
//
// Enums and variants have no Go declaration to reflect on, so they register
// explicitly, typically from an init function:
//
//	type Color uint8
//
//	const (
//		Red Color = iota
//		Green
//		Blue
//	)
//
//	func init() {
//		derive.RegisterEnum[Color](Red, Green, Blue)
//	}
//
// A registered enum rejects unassigned values in both directions, and its
// underlying integer type chooses the wire width. Variants are structs with
// one exported pointer field per case, of which exactly one is non-nil;
// RegisterVariant assigns their discriminants through the sequence rule
// documented on Discriminants.
package derive
