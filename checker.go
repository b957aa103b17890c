package typegraph

// RecurseFunc re-enters the engine for a nested value. Checkers receive one
// from FinalCheck and must use it, rather than Check, for all nested
// matching so that memoization and cycle tracking stay inside the current
// session.
type RecurseFunc func(value any, descriptor Descriptor) (any, error)

// Checker is the extension protocol for composite descriptors. Built-in
// checkers and user-defined ones are indistinguishable to the engine.
//
// PreCheck is a cheap, non-recursive gate. It may reject the value with a
// *MismatchError, and it may return a partially initialized result shell.
// A non-nil shell is registered by the engine as the in-progress result
// before FinalCheck runs, so nested references back to the same
// (value, descriptor) pair resolve to the shell; FinalCheck must then
// mutate and return that exact shell. A nil shell means the result is
// computed eagerly; in that mode a direct re-entry on the same pair is a
// mismatch because no finite result could exist.
//
// Checkers should be pointer values: the engine keys its session tables on
// reference identity.
type Checker interface {
	PreCheck(value any) (shell any, err error)
	FinalCheck(value, shell any, recurse RecurseFunc) (any, error)
}
