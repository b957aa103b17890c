package source_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/dsl"
	"github.com/typegraph/typegraph/source"
)

func TestYAMLBytes(t *testing.T) {
	got, err := source.YAMLBytes([]byte("name: a\ntags:\n  - x\n  - y\n"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := map[string]any{"name": "a", "tags": []any{"x", "y"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLNestedMappingsAreStringKeyed(t *testing.T) {
	got, err := source.YAMLBytes([]byte("outer:\n  inner:\n    n: 1\n"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	outer, ok := got.(map[string]any)["outer"].(map[string]any)
	if !ok {
		t.Fatalf("outer is %T, want map[string]any", got.(map[string]any)["outer"])
	}
	if _, ok := outer["inner"].(map[string]any); !ok {
		t.Fatalf("inner is %T, want map[string]any", outer["inner"])
	}
}

func TestCheckYAML(t *testing.T) {
	desc := dsl.Record(map[string]typegraph.Descriptor{
		"!name": typegraph.String,
		"?n":    typegraph.Int,
	})
	got, err := source.CheckYAML([]byte("name: a\nn: 2\n"), desc)
	if err != nil {
		t.Fatalf("CheckYAML failed: %v", err)
	}
	if got.(map[string]any)["n"] != 2 {
		t.Fatalf("got %v", got)
	}
	if _, err := source.CheckYAML([]byte("n: 2\n"), desc); !typegraph.IsMismatch(err) {
		t.Fatalf("missing key not reported")
	}
}

func TestYAMLBytesRejectsMalformedInput(t *testing.T) {
	if _, err := source.YAMLBytes([]byte("a: [1,\n")); err == nil {
		t.Fatalf("malformed input accepted")
	}
}
