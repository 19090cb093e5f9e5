// Package types wraps reflect.Type with the nominal-type operations the
// demand-driven constructor needs: assignability, primitiveness, receiver
// eligibility, array/slice element types, and boxing equivalence.
package types

import "reflect"

// Type is a nominal type descriptor. Equality is structural: two Types
// backed by the same reflect.Type compare equal with ==.
type Type struct {
	rt reflect.Type
}

// Nil represents the untyped nil literal. It has no reflect.Type behind it
// and equals the zero Type, so it is also what a failed name lookup or an
// empty sequence's TerminalType returns.
var Nil = Type{}

// Of wraps a reflect.Type as a Type.
func Of(rt reflect.Type) Type {
	return Type{rt: rt}
}

// OfValue returns the Type of a Go value, following interfaces to their
// dynamic type the way reflect.TypeOf does.
func OfValue(v interface{}) Type {
	return Type{rt: reflect.TypeOf(v)}
}

// Reflect returns the underlying reflect.Type, or nil for Nil.
func (t Type) Reflect() reflect.Type {
	return t.rt
}

// IsValid reports whether t carries a reflect.Type (false only for Nil).
func (t Type) IsValid() bool {
	return t.rt != nil
}

// String returns the type's display name, used in warnings and tracker dumps.
func (t Type) String() string {
	if t.rt == nil {
		return "<nil>"
	}
	return t.rt.String()
}

// IsAssignableFrom reports whether a value of type other can be used
// wherever t is required — the wide, subtyping-aware relation used to
// filter producers (§4.5 of the spec).
func (t Type) IsAssignableFrom(other Type) bool {
	if t.rt == nil || other.rt == nil {
		return t.rt == other.rt
	}
	return other.rt.AssignableTo(t.rt)
}

// IsPrimitive reports whether t is one of Go's basic numeric/bool kinds.
// Strings are deliberately excluded: the spec treats "primitive" and
// "non-receiver" as overlapping but distinct sets, and string values are
// non-receiver without being primitive.
func (t Type) IsPrimitive() bool {
	if t.rt == nil {
		return false
	}
	switch t.rt.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// IsNonreceiverType reports whether values of t can never serve as a method
// receiver: primitives, strings, and the untyped nil.
func (t Type) IsNonreceiverType() bool {
	if t == Nil {
		return true
	}
	if t.IsPrimitive() {
		return true
	}
	return t.rt.Kind() == reflect.String
}

// IsArray reports whether t is a Go array or slice — Go's two analogues of
// a Java array. Assignability between them follows Go's own rules (see
// IsAssignableFrom), which are not covariant in the element type.
func (t Type) IsArray() bool {
	if t.rt == nil {
		return false
	}
	return t.rt.Kind() == reflect.Array || t.rt.Kind() == reflect.Slice
}

// ElementType returns the element type of an array/slice Type.
func (t Type) ElementType() (Type, bool) {
	if !t.IsArray() {
		return Type{}, false
	}
	return Type{rt: t.rt.Elem()}, true
}

// IsInterface reports whether t is an interface type — Go's analogue of an
// abstract class: it cannot be instantiated directly, only implemented.
func (t Type) IsInterface() bool {
	return t.rt != nil && t.rt.Kind() == reflect.Interface
}

// Kind exposes the underlying reflect.Kind for callers that need it (e.g.
// the executor bridge deciding how to format a value for display).
func (t Type) Kind() reflect.Kind {
	if t.rt == nil {
		return reflect.Invalid
	}
	return t.rt.Kind()
}

// AreBoxingEquivalent is the narrow, non-transitive relation used for slot
// compatibility within a synthesized sequence (§4.5, §8 property 4): a type
// and a pointer to that type are boxing-equivalent, mirroring the way Java's
// eight primitive/boxed pairs are boxing-equivalent without being subtypes
// of one another. It is reflexive and symmetric by construction.
func AreBoxingEquivalent(a, b Type) bool {
	if a == b {
		return true
	}
	if a.rt == nil || b.rt == nil {
		return false
	}
	if a.rt.Kind() == reflect.Ptr && a.rt.Elem() == b.rt {
		return true
	}
	if b.rt.Kind() == reflect.Ptr && b.rt.Elem() == a.rt {
		return true
	}
	return false
}
