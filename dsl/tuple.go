package dsl

import (
	"fmt"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/i18n"
)

// TupleChecker matches a sequence of exact length against one descriptor
// per slot. Length mismatch is a mismatch, not a conversion.
//
// By default the result is constructed only after all slots have been
// checked, so a value that is a direct cycle into itself is rejected
// (there is no placeholder to hand back). AllowCycle switches to shell
// mode: a direct self-reference is accepted and resolves to the
// preallocated result. Indirect self-reference through a nested container
// always works, via that container's own shell.
type TupleChecker struct {
	types      []typegraph.Descriptor
	allowCycle bool
}

// NewTuple returns an unbound tuple checker for deferred binding.
func NewTuple() *TupleChecker { return &TupleChecker{} }

// Tuple binds a tuple checker with one descriptor per slot.
func Tuple(types ...typegraph.Descriptor) *TupleChecker {
	c := NewTuple()
	if err := c.Bind(types...); err != nil {
		panic(err)
	}
	return c
}

// Bind configures the per-slot descriptors.
func (c *TupleChecker) Bind(types ...typegraph.Descriptor) error {
	c.types = types
	return nil
}

// AllowCycle accepts directly self-referential values, trading the
// construct-after-check result for a preallocated shell.
func (c *TupleChecker) AllowCycle() *TupleChecker {
	c.allowCycle = true
	return c
}

func (c *TupleChecker) PreCheck(value any) (any, error) {
	rv, ok := sequenceOf(value)
	if !ok {
		return nil, typegraph.NewMismatch(value, c, typegraph.CodeInvalidType, "expected a sequence")
	}
	if rv.Len() != len(c.types) {
		return nil, typegraph.NewMismatch(value, c, typegraph.CodeLengthMismatch,
			i18n.T(typegraph.CodeLengthMismatch, nil))
	}
	if c.allowCycle {
		return make([]any, len(c.types)), nil
	}
	return nil, nil
}

func (c *TupleChecker) FinalCheck(value, shell any, recurse typegraph.RecurseFunc) (any, error) {
	rv, _ := sequenceOf(value)
	if shell == nil {
		out := make([]any, len(c.types))
		for i, t := range c.types {
			r, err := recurse(rv.Index(i).Interface(), t)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}
	out := shell.([]any)
	for i, t := range c.types {
		r, err := recurse(rv.Index(i).Interface(), t)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (c *TupleChecker) String() string {
	return fmt.Sprintf("tuple/%d", len(c.types))
}

func (c *TupleChecker) shallowName() string { return "tuple" }
