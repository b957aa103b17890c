package dsl

import (
	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/i18n"
)

// ExtraChecker wraps a base descriptor with hooks. The steps run in a fixed
// order:
//
//  1. the CheckBefore gate rejects the raw value,
//  2. Precreate allocates a result shell,
//  3. ConvertBefore transforms the value,
//  4. the base descriptor is checked recursively,
//  5. the Check gate rejects the checked result,
//  6. Convert transforms the result,
//  7. with a shell, Merge(shell, result) runs and the shell is returned.
//
// Precreate and Merge must be configured together: the shell exists so that
// a self-referential value can resolve to it before the base check
// finishes, and Merge is what folds the checked result into it.
//
// ConvertBefore and Convert must not break the recursive structure of the
// value they transform.
type ExtraChecker struct {
	base          typegraph.Descriptor
	checkBefore   func(any) bool
	check         func(any) bool
	convertBefore func(any) any
	convert       func(any) any
	precreate     func(any) any
	merge         func(shell, result any)
}

// ExtraOption configures an ExtraChecker at bind time.
type ExtraOption func(*ExtraChecker)

// CheckBefore gates the raw value before any recursion.
func CheckBefore(fn func(any) bool) ExtraOption {
	return func(c *ExtraChecker) { c.checkBefore = fn }
}

// Check gates the checked result.
func Check(fn func(any) bool) ExtraOption {
	return func(c *ExtraChecker) { c.check = fn }
}

// ConvertBefore transforms the value before the base check.
func ConvertBefore(fn func(any) any) ExtraOption {
	return func(c *ExtraChecker) { c.convertBefore = fn }
}

// Convert transforms the checked result.
func Convert(fn func(any) any) ExtraOption {
	return func(c *ExtraChecker) { c.convert = fn }
}

// Precreate allocates the result shell from the raw value.
func Precreate(fn func(any) any) ExtraOption {
	return func(c *ExtraChecker) { c.precreate = fn }
}

// Merge folds the checked result into the precreated shell.
func Merge(fn func(shell, result any)) ExtraOption {
	return func(c *ExtraChecker) { c.merge = fn }
}

// NewExtra returns an unbound extra checker for deferred binding.
func NewExtra() *ExtraChecker { return &ExtraChecker{} }

// Extra binds an extra checker around base, panicking on a malformed
// configuration. Use NewExtra().Bind for the error form.
func Extra(base typegraph.Descriptor, opts ...ExtraOption) *ExtraChecker {
	c := NewExtra()
	if err := c.Bind(base, opts...); err != nil {
		panic(err)
	}
	return c
}

// Bind configures the checker. Configuring only one of Precreate and Merge
// is an invalid descriptor.
func (c *ExtraChecker) Bind(base typegraph.Descriptor, opts ...ExtraOption) error {
	c.base = base
	for _, opt := range opts {
		opt(c)
	}
	if (c.precreate == nil) != (c.merge == nil) {
		return typegraph.NewInvalidDescriptor(c, "precreate and merge must be used together")
	}
	return nil
}

func (c *ExtraChecker) PreCheck(value any) (any, error) {
	if c.checkBefore != nil && !c.checkBefore(value) {
		return nil, typegraph.NewMismatch(value, c, typegraph.CodeCheckFailed,
			i18n.T(typegraph.CodeCheckFailed, map[string]string{"hook": "check_before"}))
	}
	if c.precreate != nil {
		return c.precreate(value), nil
	}
	return nil, nil
}

func (c *ExtraChecker) FinalCheck(value, shell any, recurse typegraph.RecurseFunc) (any, error) {
	origin := value
	if c.convertBefore != nil {
		value = c.convertBefore(value)
	}
	r, err := recurse(value, c.base)
	if err != nil {
		return nil, err
	}
	if c.check != nil && !c.check(r) {
		return nil, typegraph.NewMismatch(origin, c, typegraph.CodeCheckFailed,
			i18n.T(typegraph.CodeCheckFailed, map[string]string{"hook": "check"}))
	}
	if c.convert != nil {
		r = c.convert(r)
	}
	if shell != nil {
		c.merge(shell, r)
		return shell, nil
	}
	return r, nil
}

func (c *ExtraChecker) String() string {
	return "extra(" + describeInner(c.base) + ")"
}

func (c *ExtraChecker) shallowName() string { return "extra" }
