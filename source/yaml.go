package source

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	typegraph "github.com/typegraph/typegraph"
)

// YAMLReader decodes one YAML document from r into an untyped value graph.
// Mappings are normalized to map[string]any (yaml may produce map[any]any
// for non-scalar or merged keys).
func YAMLReader(r io.Reader) (any, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return normalizeYAML(v), nil
}

// YAMLBytes decodes one YAML document from b. See YAMLReader.
func YAMLBytes(b []byte) (any, error) {
	return YAMLReader(bytes.NewReader(b))
}

// CheckYAML decodes b and validates it against descriptor in one step.
func CheckYAML(b []byte, descriptor typegraph.Descriptor) (any, error) {
	v, err := YAMLBytes(b)
	if err != nil {
		return nil, err
	}
	return typegraph.Check(v, descriptor)
}

// normalizeYAML converts yaml-decoded values (which may contain
// map[any]any) into map[string]any graphs recursively. Non-string keys are
// kept in a map[any]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			t[k] = normalizeYAML(vv)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				anyOut := make(map[any]any, len(t))
				for ak, av := range t {
					anyOut[ak] = normalizeYAML(av)
				}
				return anyOut
			}
			out[ks] = normalizeYAML(vv)
		}
		return out
	case []any:
		for i, vv := range t {
			t[i] = normalizeYAML(vv)
		}
		return t
	}
	return v
}
