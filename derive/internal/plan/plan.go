package plan

import "reflect"

// Plan captures everything the walkers need to encode or decode one Go type:
// its kind, the sub-plans of its children, and the static size bound. Plans
// form a tree that mirrors the type, except for recursive types, where child
// pointers loop back into the tree.
type Plan struct {
	// Type is the Go type this node encodes.
	Type reflect.Type

	// Elem is the element plan of a slice, array, or option node.
	Elem *Plan

	// Key and Val are the entry plans of a map node.
	Key *Plan
	Val *Plan

	// Ok and Err are the payload plans of a result node, already resolved
	// past the carrier pointer fields.
	Ok  *Plan
	Err *Plan

	// OkIndex and ErrIndex locate the carrier fields in the result struct.
	OkIndex  int
	ErrIndex int

	// Fields lists the encodable fields of a struct node in declaration
	// order.
	Fields []Field

	// Cases lists the registered cases of a variant node in registration
	// order. CaseByDisc maps a decoded discriminant to an index into Cases.
	Cases      []Case
	CaseByDisc map[int64]int

	// Values is the assigned discriminant set of an enum node.
	Values map[int64]struct{}

	// Base is the wire form of an enum node's underlying integer type.
	Base Kind

	// ArrayLen is the fixed length of an array node.
	ArrayLen int

	// MaxSize is the static encoded size bound in bytes, or -1 when no
	// bound is known from the type alone (strings, slices, maps, recursive
	// types, and delegated codecs, whose bound lives on the instance).
	MaxSize int

	// NonZero rejects zero values on integer and rune nodes.
	NonZero bool

	Kind Kind
}

// Field describes one encodable struct field.
type Field struct {
	// Name is the Go field name, used in error wrapping.
	Name string

	// Index is the field's index within the struct.
	Index int

	Plan *Plan
}

// Case describes one registered variant case.
type Case struct {
	// Name is the Go field name of the case's carrier pointer.
	Name string

	// Index is the carrier field's index within the variant struct.
	Index int

	// Disc is the assigned discriminant.
	Disc int64

	// Plan encodes the case payload, the carrier pointer's element type.
	Plan *Plan
}

// Bounded reports whether the node has a static encoded size bound.
func (p *Plan) Bounded() bool {
	return p.MaxSize >= 0
}
