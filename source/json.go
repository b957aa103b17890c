// Package source decodes external JSON and YAML payloads into the untyped
// value graphs the typegraph engine operates on, normalizing numbers and
// key types on the way in.
package source

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	typegraph "github.com/typegraph/typegraph"
)

// JSONReader decodes one JSON document from r into an untyped value graph.
// Numbers are decoded precisely and then normalized: integral values become
// int64, everything else float64, so the Int primitive behaves as expected
// on decoded data.
func JSONReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalizeNumbers(v), nil
}

// JSONBytes decodes one JSON document from b. See JSONReader.
func JSONBytes(b []byte) (any, error) {
	return JSONReader(bytes.NewReader(b))
}

// CheckJSON decodes b and validates it against descriptor in one step.
func CheckJSON(b []byte, descriptor typegraph.Descriptor) (any, error) {
	v, err := JSONBytes(b)
	if err != nil {
		return nil, err
	}
	return typegraph.Check(v, descriptor)
}

// normalizeNumbers rewrites json.Number leaves. Decoded documents are
// trees, so plain recursion terminates.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			t[k] = normalizeNumbers(vv)
		}
		return t
	case []any:
		for i, vv := range t {
			t[i] = normalizeNumbers(vv)
		}
		return t
	case j.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}
