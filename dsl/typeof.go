package dsl

import (
	"reflect"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/i18n"
)

// TypeChecker matches values that are reflect.Types, optionally requiring
// assignability to a base type (implementation, for interface bases) and a
// specific reflect.Kind.
type TypeChecker struct {
	base reflect.Type
	kind reflect.Kind
}

// NewTypeOf returns an unbound type checker for deferred binding.
func NewTypeOf() *TypeChecker { return &TypeChecker{} }

// TypeOf binds a type checker. base may be nil (no base constraint) or a
// reflect.Type; anything else panics with an invalid descriptor. Use
// NewTypeOf().Bind for the error form.
func TypeOf(base any) *TypeChecker {
	c := NewTypeOf()
	if err := c.Bind(base); err != nil {
		panic(err)
	}
	return c
}

// Kind additionally requires the matched type to have kind k.
func (c *TypeChecker) Kind(k reflect.Kind) *TypeChecker {
	c.kind = k
	return c
}

// Bind configures the optional base constraint.
func (c *TypeChecker) Bind(base any) error {
	if base == nil {
		return nil
	}
	t, ok := base.(reflect.Type)
	if !ok {
		return typegraph.NewInvalidDescriptor(c, i18n.T(typegraph.CodeNotAType, nil))
	}
	c.base = t
	return nil
}

func (c *TypeChecker) PreCheck(value any) (any, error) {
	if _, ok := value.(reflect.Type); !ok {
		return nil, typegraph.NewMismatch(value, c, typegraph.CodeNotAType,
			i18n.T(typegraph.CodeNotAType, nil))
	}
	return nil, nil
}

func (c *TypeChecker) FinalCheck(value, _ any, _ typegraph.RecurseFunc) (any, error) {
	t := value.(reflect.Type)
	if c.kind != reflect.Invalid && t.Kind() != c.kind {
		return nil, typegraph.NewMismatch(value, c, typegraph.CodeInvalidType,
			"kind must be "+c.kind.String())
	}
	if c.base != nil {
		matches := t.AssignableTo(c.base)
		if !matches && c.base.Kind() == reflect.Interface {
			matches = t.Implements(c.base)
		}
		if !matches {
			return nil, typegraph.NewMismatch(value, c, typegraph.CodeNotASubtype,
				i18n.T(typegraph.CodeNotASubtype, map[string]string{"base": c.base.String()}))
		}
	}
	return t, nil
}

func (c *TypeChecker) String() string {
	switch {
	case c.base != nil:
		return "typeOf(" + c.base.String() + ")"
	case c.kind != reflect.Invalid:
		return "typeOf(kind=" + c.kind.String() + ")"
	}
	return "typeOf"
}

func (c *TypeChecker) shallowName() string { return "typeOf" }
