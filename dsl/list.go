package dsl

import (
	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/i18n"
)

// ListChecker matches slices and arrays, producing a fresh []any that
// preserves the identity of its elements. With an inner descriptor every
// element must match it. A non-sequence value is auto-wrapped as a
// one-element list unless strict mode is set.
type ListChecker struct {
	inner    typegraph.Descriptor
	hasInner bool
	strict   bool
}

// NewList returns an unbound list checker for deferred (possibly
// self-referential) binding.
func NewList() *ListChecker { return &ListChecker{} }

// List binds a list checker with zero or one inner descriptor. It panics
// when given more than one; use NewList().Bind for the error form.
func List(inner ...typegraph.Descriptor) *ListChecker {
	c := NewList()
	if err := c.Bind(inner...); err != nil {
		panic(err)
	}
	return c
}

// Bind configures the checker with zero or one inner descriptor. More than
// one inner descriptor is an invalid descriptor.
func (c *ListChecker) Bind(inner ...typegraph.Descriptor) error {
	if len(inner) > 1 {
		return typegraph.NewInvalidDescriptor(c, "list must contain zero or one inner descriptor")
	}
	if len(inner) == 1 {
		c.inner = inner[0]
		c.hasInner = true
	}
	return nil
}

// Strict disables auto-wrapping of a single non-sequence value.
func (c *ListChecker) Strict() *ListChecker {
	c.strict = true
	return c
}

// PreCheck allocates the result shell for sequence inputs. For scalars it
// returns no shell (auto-wrap path) unless strict mode rejects them.
func (c *ListChecker) PreCheck(value any) (any, error) {
	if rv, ok := sequenceOf(value); ok {
		return make([]any, rv.Len()), nil
	}
	if c.strict {
		return nil, typegraph.NewMismatch(value, c, typegraph.CodeStrictMode, i18n.T(typegraph.CodeStrictMode, nil))
	}
	return nil, nil
}

func (c *ListChecker) FinalCheck(value, shell any, recurse typegraph.RecurseFunc) (any, error) {
	if shell == nil {
		// Auto-wrap a single value as a one-element list.
		if !c.hasInner {
			return []any{value}, nil
		}
		r, err := recurse(value, c.inner)
		if err != nil {
			return nil, err
		}
		return []any{r}, nil
	}
	out := shell.([]any)
	rv, _ := sequenceOf(value)
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if !c.hasInner {
			out[i] = elem
			continue
		}
		r, err := recurse(elem, c.inner)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (c *ListChecker) String() string {
	if !c.hasInner {
		return "list"
	}
	return "list(" + describeInner(c.inner) + ")"
}

func (c *ListChecker) shallowName() string { return "list" }
