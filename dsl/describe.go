package dsl

import (
	"fmt"
	"reflect"

	typegraph "github.com/typegraph/typegraph"
)

// shallowNamer lets a checker expose a one-word name for nested rendering.
type shallowNamer interface {
	shallowName() string
}

// describeInner renders an inner descriptor one level deep. Nested
// composite checkers are shown by a one-word name only, so that
// self-referential descriptors never recurse while rendering.
func describeInner(d typegraph.Descriptor) string {
	if _, ok := d.(typegraph.Checker); ok {
		if n, ok := d.(shallowNamer); ok {
			return n.shallowName()
		}
		return fmt.Sprintf("%T", d)
	}
	return typegraph.Describe(d)
}

// sequenceOf returns the reflect view of v when it is a slice or array.
func sequenceOf(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, true
	}
	return reflect.Value{}, false
}
