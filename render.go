package typegraph

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const renderMaxDepth = 8

// render formats a value for error messages. Unlike fmt, it terminates on
// cyclic graphs: a revisited container renders as "...".
func render(v any) string {
	var b strings.Builder
	renderValue(&b, v, make(map[any]bool), 0)
	return b.String()
}

func renderValue(b *strings.Builder, v any, seen map[any]bool, depth int) {
	if v == nil {
		b.WriteString("<nil>")
		return
	}
	if depth > renderMaxDepth {
		b.WriteString("...")
		return
	}
	if key, ok := identity(v); ok {
		if seen[key] {
			b.WriteString("...")
			return
		}
		seen[key] = true
		defer delete(seen, key)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		b.WriteString(strconv.Quote(rv.String()))
	case reflect.Slice, reflect.Array:
		b.WriteString("[")
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteString(" ")
			}
			renderValue(b, rv.Index(i).Interface(), seen, depth+1)
		}
		b.WriteString("]")
	case reflect.Map:
		b.WriteString("map[")
		keys := rv.MapKeys()
		rendered := make([]string, 0, len(keys))
		for _, k := range keys {
			var kb, vb strings.Builder
			renderValue(&kb, k.Interface(), seen, depth+1)
			renderValue(&vb, rv.MapIndex(k).Interface(), seen, depth+1)
			rendered = append(rendered, kb.String()+":"+vb.String())
		}
		sort.Strings(rendered)
		b.WriteString(strings.Join(rendered, " "))
		b.WriteString("]")
	case reflect.Pointer:
		if rv.IsNil() {
			b.WriteString("<nil>")
			return
		}
		b.WriteString("&")
		renderValue(b, rv.Elem().Interface(), seen, depth+1)
	case reflect.Struct:
		b.WriteString(rv.Type().Name())
		b.WriteString("{")
		first := true
		for i := 0; i < rv.NumField(); i++ {
			if !rv.Type().Field(i).IsExported() {
				continue
			}
			if !first {
				b.WriteString(" ")
			}
			first = false
			b.WriteString(rv.Type().Field(i).Name)
			b.WriteString(":")
			renderValue(b, rv.Field(i).Interface(), seen, depth+1)
		}
		b.WriteString("}")
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

// Describe renders a descriptor for error messages and diagnostics.
// Composite checkers are rendered through their String method when they
// implement fmt.Stringer; built-in checkers keep those shallow so that
// self-referential descriptors terminate.
func Describe(d Descriptor) string {
	switch t := d.(type) {
	case nil:
		return "null"
	case *sentinel:
		return t.name
	case *primitive:
		return t.name
	case *instanceDesc:
		return "instance(" + t.typ.String() + ")"
	case *alternation:
		parts := make([]string, 0, len(t.alts))
		for _, alt := range t.alts {
			parts = append(parts, Describe(alt))
		}
		return "oneOf(" + strings.Join(parts, " | ") + ")"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%T", d)
	}
}
