// Package typegraph validates and normalizes untyped, nested, possibly
// cyclic data against declarative structural type descriptors.
//
// The entry point is Check(value, descriptor). A descriptor is either one of
// the built-in sentinels and primitives (Any, Null, NotNull, Never, Int,
// String, Bool, Instance), an ordered alternation built with OneOf, or any
// value implementing the two-phase Checker protocol. The dsl subpackage
// provides the built-in composite checkers (lists, records, tuples, maps,
// hook wrappers, struct instances, and reflect.Type checks).
//
// Both the value graph and the descriptor graph may contain cycles. The
// engine memoizes on reference identity, hands out placeholder shells for
// in-progress results, and guarantees that the result graph preserves the
// sharing and cycle topology of the input: two paths that reach the same
// node in the input reach the same node in the result.
//
// Descriptors are immutable after binding and may be shared across any
// number of concurrent Check calls. All mutable matching state lives in a
// per-call session that is discarded when Check returns.
package typegraph
