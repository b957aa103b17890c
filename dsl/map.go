package dsl

import (
	"reflect"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/i18n"
)

// MapChecker matches homogeneous mappings: every key must match the key
// descriptor and every value the value descriptor, independently. It
// accepts map[string]any and map[any]any inputs and mirrors the input kind
// in the result.
type MapChecker struct {
	keyType typegraph.Descriptor
	valType typegraph.Descriptor
}

// NewMap returns an unbound map checker for deferred binding.
func NewMap() *MapChecker { return &MapChecker{} }

// Map binds a map checker with key and value descriptors.
func Map(keyType, valType typegraph.Descriptor) *MapChecker {
	c := NewMap()
	if err := c.Bind(keyType, valType); err != nil {
		panic(err)
	}
	return c
}

// Bind configures the key and value descriptors.
func (c *MapChecker) Bind(keyType, valType typegraph.Descriptor) error {
	c.keyType = keyType
	c.valType = valType
	return nil
}

func (c *MapChecker) PreCheck(value any) (any, error) {
	switch value.(type) {
	case map[string]any:
		return map[string]any{}, nil
	case map[any]any:
		return map[any]any{}, nil
	}
	return nil, typegraph.NewMismatch(value, c, typegraph.CodeInvalidType, "expected a mapping")
}

func (c *MapChecker) FinalCheck(value, shell any, recurse typegraph.RecurseFunc) (any, error) {
	switch m := value.(type) {
	case map[string]any:
		out := shell.(map[string]any)
		for k, v := range m {
			ck, err := recurse(k, c.keyType)
			if err != nil {
				return nil, err
			}
			sk, ok := ck.(string)
			if !ok {
				return nil, typegraph.NewMismatch(ck, c.keyType, typegraph.CodeInvalidKey,
					i18n.T(typegraph.CodeInvalidKey, nil))
			}
			cv, err := recurse(v, c.valType)
			if err != nil {
				return nil, err
			}
			out[sk] = cv
		}
		return out, nil
	case map[any]any:
		out := shell.(map[any]any)
		for k, v := range m {
			ck, err := recurse(k, c.keyType)
			if err != nil {
				return nil, err
			}
			if ck != nil && !reflect.TypeOf(ck).Comparable() {
				return nil, typegraph.NewMismatch(ck, c.keyType, typegraph.CodeInvalidKey,
					i18n.T(typegraph.CodeInvalidKey, nil))
			}
			cv, err := recurse(v, c.valType)
			if err != nil {
				return nil, err
			}
			out[ck] = cv
		}
		return out, nil
	}
	return shell, nil
}

func (c *MapChecker) String() string {
	return "map(" + describeInner(c.keyType) + ", " + describeInner(c.valType) + ")"
}

func (c *MapChecker) shallowName() string { return "map" }
