// Package dsl provides the built-in composite checkers for typegraph.
//
// Overview
//   - List: sequences with an optional inner descriptor, scalar auto-wrap,
//     and an opt-in strict mode.
//   - Record: mappings described key by key with required (`!`/bare),
//     optional (`?`) and regexp (`~`) key classes; uncovered keys pass
//     through untouched.
//   - Tuple: fixed-arity sequences with one descriptor per slot.
//   - Map: homogeneous mappings with independent key and value descriptors.
//   - Extra: a hook wrapper around a base descriptor (gates, converts, and
//     precreate/merge for custom recursive result construction).
//   - Struct: pointer-to-struct instances checked field by field.
//   - TypeOf: values that are reflect.Types, optionally constrained to a
//     base type and kind.
//
// Every checker supports deferred binding for self-referential descriptors:
// allocate with NewX(), then Bind later, possibly passing the checker to
// itself:
//
//	l := dsl.NewList()
//	_ = l.Bind(l) // a list of lists of lists ...
//
// The convenience constructors (List, Record, Tuple, Map, Extra, Struct,
// TypeOf) bind immediately and panic on a malformed configuration; Bind
// returns the *typegraph.InvalidDescriptorError instead. All configuration
// is validated at bind time, never at first check.
package dsl
