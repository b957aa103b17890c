package typegraph

import "reflect"

// Descriptor describes an expected shape. It is an alias for any: the engine
// dispatches on the concrete descriptor value. A nil Descriptor is
// equivalent to Null.
type Descriptor = any

type sentinelKind int

const (
	kindAny sentinelKind = iota
	kindNull
	kindNotNull
	kindNever
)

type sentinel struct {
	kind sentinelKind
	name string
}

// Sentinel descriptors. Any matches every value including nil; Null matches
// only nil; NotNull matches any non-nil value; Never matches nothing.
var (
	Any     Descriptor = &sentinel{kind: kindAny, name: "any"}
	Null    Descriptor = &sentinel{kind: kindNull, name: "null"}
	NotNull Descriptor = &sentinel{kind: kindNotNull, name: "notnull"}
	Never   Descriptor = &sentinel{kind: kindNever, name: "never"}
)

type primitiveKind int

const (
	primInt primitiveKind = iota
	primString
	primBool
)

type primitive struct {
	kind primitiveKind
	name string
}

// Primitive descriptors. Int matches every signed and unsigned integer kind
// but never bool; String matches string-kinded values; Bool matches
// bool-kinded values. None of them match nil.
var (
	Int    Descriptor = &primitive{kind: primInt, name: "int"}
	String Descriptor = &primitive{kind: primString, name: "string"}
	Bool   Descriptor = &primitive{kind: primBool, name: "bool"}
)

type instanceDesc struct {
	typ reflect.Type
}

// Instance returns a descriptor matching values assignable to T. When T is
// an interface type, any value implementing it matches.
func Instance[T any]() Descriptor {
	return &instanceDesc{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// InstanceOf is the non-generic form of Instance for callers holding a
// reflect.Type at runtime.
func InstanceOf(t reflect.Type) Descriptor {
	return &instanceDesc{typ: t}
}

type alternation struct {
	alts []Descriptor
}

// OneOf returns an ordered union descriptor. Alternatives are tried in
// declared order and the first structurally matching one wins, so
// overlapping alternatives are not commutative.
func OneOf(alts ...Descriptor) Descriptor {
	return &alternation{alts: alts}
}
