package jval

import "sync/atomic"

// Kind is the value's top-level type tag.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindFalse
	KindTrue
	KindNumber
	KindString
	KindArray
	KindObject
)

// String implements fmt.Stringer for debugging; KindName is the public
// kind-name query and intentionally has its own argument shape.
func (k Kind) String() string { return KindName(k) }

// subtype flags distinguish representations within a Kind. Exactly one
// pair of kinds uses them today.
const (
	subNumberNative  uint8 = 0
	subNumberDecimal uint8 = 1

	subInvalidBare    uint8 = 0
	subInvalidMessage uint8 = 1
)

// Value is the fixed-shape, stack-copyable descriptor every jval operation
// passes by value. A Go interface value is used for the heap-payload slot
// instead of a raw tagged pointer; dispatch on kind remains an explicit,
// closed switch everywhere rather than relying on payload's own methods,
// so the union stays conceptually closed even though Go requires an
// interface to hold it.
type Value struct {
	kind Kind
	sub  uint8

	// offset/size form the array slice window. Unused by
	// every other kind; Go's own payloads already track their length, so
	// there is no need to duplicate a capacity field here for string or
	// object.
	offset uint32
	size   uint32

	num float64 // inline native double, valid when kind==KindNumber && sub==subNumberNative

	payload any // nil unless this kind carries a heap payload

	// origin distinguishes STRING handles that happen to share an interned
	// payload from handles produced by explicit Copy of one another. It is
	// stamped fresh on every new string construction (interning pool hit or
	// not) and propagated unchanged by Copy's plain struct assignment, so
	// Identical can require explicit Copy even when two independently built
	// strings with identical bytes end up pointing at the same payload.
	origin uint64
}

var nextOrigin uint64

// newOrigin returns a value never returned before in this process.
func newOrigin() uint64 { return atomic.AddUint64(&nextOrigin, 1) }

// GetKind returns v's top-level kind. Peek; does not consume v.
func GetKind(v Value) Kind { return v.kind }

// KindName returns the canonical lowercase name for k, including the
// "<invalid>" spelling.
func KindName(k Kind) string {
	switch k {
	case KindInvalid:
		return "<invalid>"
	case KindNull:
		return "null"
	case KindFalse, KindTrue:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "<invalid>"
	}
}

// IsValid reports whether v's kind is anything other than invalid. Peek.
func IsValid(v Value) bool { return v.kind != KindInvalid }

// hasHeapPayload reports whether v carries a refcounted payload.
func hasHeapPayload(v Value) bool { return v.payload != nil }

// --- constructors with no heap payload ---

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// True returns the boolean true value.
func True() Value { return Value{kind: KindTrue} }

// False returns the boolean false value.
func False() Value { return Value{kind: KindFalse} }

// Bool returns True() or False() for x.
func Bool(x bool) Value {
	if x {
		return True()
	}
	return False()
}

// Invalid returns a bare invalid value (no message).
func Invalid() Value { return Value{kind: KindInvalid, sub: subInvalidBare} }
