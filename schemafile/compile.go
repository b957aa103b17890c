// Package schemafile compiles YAML (or JSON, which is a YAML subset) schema
// documents into descriptors. A document is either a kind name shorthand
// ("int", "string", ...) or a mapping with a "kind" key plus kind-specific
// configuration; a top-level "$defs" mapping introduces named schemas that
// "$ref" nodes can reference, including recursively.
package schemafile

import (
	"sort"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/dsl"
	"github.com/typegraph/typegraph/source"
)

// Compile parses doc and returns the descriptor it describes. Malformed
// documents produce an *InvalidDescriptorError.
func Compile(doc []byte) (typegraph.Descriptor, error) {
	root, err := source.YAMLBytes(doc)
	if err != nil {
		return nil, typegraph.NewInvalidDescriptor(nil, "schema document is not valid YAML: "+err.Error())
	}
	c := &compiler{
		defs:      map[string]any{},
		resolved:  map[string]typegraph.Descriptor{},
		resolving: map[string]bool{},
	}
	if m, ok := root.(map[string]any); ok {
		if raw, ok := m["$defs"]; ok {
			defs, ok := raw.(map[string]any)
			if !ok {
				return nil, typegraph.NewInvalidDescriptor(raw, "$defs must be a mapping of names to schemas")
			}
			c.defs = defs
			if err := c.bindDefs(); err != nil {
				return nil, err
			}
			trimmed := make(map[string]any, len(m)-1)
			for k, v := range m {
				if k != "$defs" {
					trimmed[k] = v
				}
			}
			root = trimmed
		}
	}
	return c.compile(root)
}

type compiler struct {
	defs      map[string]any
	resolved  map[string]typegraph.Descriptor
	resolving map[string]bool
}

// bindDefs precreates unbound checkers for every composite definition, so
// that references among definitions (including self-references) resolve to
// the final checker identity, then binds their bodies. Non-composite
// definitions are compiled on demand by resolveRef.
func (c *compiler) bindDefs() error {
	type pending struct {
		name string
		kind string
		body map[string]any
	}
	var composites []pending
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		body, ok := c.defs[name].(map[string]any)
		if !ok {
			continue
		}
		kind, _ := body["kind"].(string)
		switch kind {
		case "list":
			c.resolved[name] = dsl.NewList()
		case "record":
			c.resolved[name] = dsl.NewRecord()
		case "tuple":
			c.resolved[name] = dsl.NewTuple()
		case "map":
			c.resolved[name] = dsl.NewMap()
		default:
			continue
		}
		composites = append(composites, pending{name: name, kind: kind, body: body})
	}
	for _, p := range composites {
		if err := c.bindComposite(p.kind, p.body, c.resolved[p.name]); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) resolveRef(name string) (typegraph.Descriptor, error) {
	if d, ok := c.resolved[name]; ok {
		return d, nil
	}
	body, ok := c.defs[name]
	if !ok {
		return nil, typegraph.NewInvalidDescriptor(name, "$ref to undefined schema "+name)
	}
	// Composite definitions were precreated above, so reaching here while
	// already resolving means a cycle that has no checker to anchor it,
	// e.g. a oneof referring to itself without an intervening container.
	if c.resolving[name] {
		return nil, typegraph.NewInvalidDescriptor(name, "$ref cycle through non-container schema "+name)
	}
	c.resolving[name] = true
	defer delete(c.resolving, name)
	d, err := c.compile(body)
	if err != nil {
		return nil, err
	}
	c.resolved[name] = d
	return d, nil
}

func (c *compiler) compile(node any) (typegraph.Descriptor, error) {
	switch n := node.(type) {
	case string:
		return c.scalar(n, n)
	case map[string]any:
		if raw, ok := n["$ref"]; ok {
			name, ok := raw.(string)
			if !ok {
				return nil, typegraph.NewInvalidDescriptor(node, "$ref must be a string")
			}
			return c.resolveRef(name)
		}
		kind, ok := n["kind"].(string)
		if !ok {
			return nil, typegraph.NewInvalidDescriptor(node, `schema mapping needs a "kind" string`)
		}
		switch kind {
		case "list":
			d := dsl.NewList()
			if err := c.bindComposite(kind, n, d); err != nil {
				return nil, err
			}
			return d, nil
		case "record":
			d := dsl.NewRecord()
			if err := c.bindComposite(kind, n, d); err != nil {
				return nil, err
			}
			return d, nil
		case "tuple":
			d := dsl.NewTuple()
			if err := c.bindComposite(kind, n, d); err != nil {
				return nil, err
			}
			return d, nil
		case "map":
			d := dsl.NewMap()
			if err := c.bindComposite(kind, n, d); err != nil {
				return nil, err
			}
			return d, nil
		case "oneof":
			raw, ok := n["of"].([]any)
			if !ok {
				return nil, typegraph.NewInvalidDescriptor(node, `oneof needs an "of" sequence`)
			}
			alts := make([]typegraph.Descriptor, len(raw))
			for i, alt := range raw {
				d, err := c.compile(alt)
				if err != nil {
					return nil, err
				}
				alts[i] = d
			}
			return typegraph.OneOf(alts...), nil
		default:
			return c.scalar(kind, node)
		}
	}
	return nil, typegraph.NewInvalidDescriptor(node, "schema node must be a kind name or a mapping")
}

func (c *compiler) scalar(kind string, node any) (typegraph.Descriptor, error) {
	switch kind {
	case "any":
		return typegraph.Any, nil
	case "null":
		return typegraph.Null, nil
	case "notnull":
		return typegraph.NotNull, nil
	case "never":
		return typegraph.Never, nil
	case "int":
		return typegraph.Int, nil
	case "string":
		return typegraph.String, nil
	case "bool":
		return typegraph.Bool, nil
	}
	return nil, typegraph.NewInvalidDescriptor(node, "unknown schema kind "+kind)
}

// bindComposite binds an already-allocated container checker from its
// mapping body. target must match kind.
func (c *compiler) bindComposite(kind string, body map[string]any, target typegraph.Descriptor) error {
	switch kind {
	case "list":
		d := target.(*dsl.ListChecker)
		var inner []typegraph.Descriptor
		if raw, ok := body["of"]; ok {
			in, err := c.compile(raw)
			if err != nil {
				return err
			}
			inner = append(inner, in)
		}
		if err := d.Bind(inner...); err != nil {
			return err
		}
		if strict, _ := body["strict"].(bool); strict {
			d.Strict()
		}
		return nil
	case "record":
		d := target.(*dsl.RecordChecker)
		fields := map[string]typegraph.Descriptor{}
		if raw, ok := body["fields"]; ok {
			fm, ok := raw.(map[string]any)
			if !ok {
				return typegraph.NewInvalidDescriptor(body, `record "fields" must be a mapping`)
			}
			for key, sub := range fm {
				fd, err := c.compile(sub)
				if err != nil {
					return err
				}
				fields[key] = fd
			}
		}
		return d.Bind(fields)
	case "tuple":
		d := target.(*dsl.TupleChecker)
		raw, ok := body["items"].([]any)
		if !ok {
			return typegraph.NewInvalidDescriptor(body, `tuple needs an "items" sequence`)
		}
		types := make([]typegraph.Descriptor, len(raw))
		for i, sub := range raw {
			td, err := c.compile(sub)
			if err != nil {
				return err
			}
			types[i] = td
		}
		if err := d.Bind(types...); err != nil {
			return err
		}
		if cyc, _ := body["allowCycle"].(bool); cyc {
			d.AllowCycle()
		}
		return nil
	case "map":
		d := target.(*dsl.MapChecker)
		keyType, valType := typegraph.Descriptor(typegraph.Any), typegraph.Descriptor(typegraph.Any)
		if raw, ok := body["keys"]; ok {
			kd, err := c.compile(raw)
			if err != nil {
				return err
			}
			keyType = kd
		}
		if raw, ok := body["values"]; ok {
			vd, err := c.compile(raw)
			if err != nil {
				return err
			}
			valType = vd
		}
		return d.Bind(keyType, valType)
	}
	return typegraph.NewInvalidDescriptor(body, "unknown container kind "+kind)
}
