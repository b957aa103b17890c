package schemafile_test

import (
	"reflect"
	"testing"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/schemafile"
)

func mustCompile(t *testing.T, doc string) typegraph.Descriptor {
	t.Helper()
	d, err := schemafile.Compile([]byte(doc))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return d
}

func TestCompileScalarShorthand(t *testing.T) {
	d := mustCompile(t, "int")
	if _, err := typegraph.Check(1, d); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if _, err := typegraph.Check("x", d); !typegraph.IsMismatch(err) {
		t.Fatalf("string matched int schema")
	}
}

func TestCompileList(t *testing.T) {
	d := mustCompile(t, "kind: list\nof: string\n")
	got, err := typegraph.Check([]any{"a", "b"}, d)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
}

func TestCompileStrictList(t *testing.T) {
	d := mustCompile(t, "kind: list\nof: int\nstrict: true\n")
	if _, err := typegraph.Check(1, d); !typegraph.IsMismatch(err) {
		t.Fatalf("strict list auto-wrapped a scalar")
	}
}

func TestCompileRecordWithKeyClasses(t *testing.T) {
	d := mustCompile(t, `
kind: record
fields:
  "!name": string
  "?age": int
  "~^x_": bool
`)
	v := map[string]any{"name": "a", "x_on": true, "free": 1}
	if _, err := typegraph.Check(v, d); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if _, err := typegraph.Check(map[string]any{"age": 3}, d); !typegraph.IsMismatch(err) {
		t.Fatalf("missing required key accepted")
	}
}

func TestCompileTuple(t *testing.T) {
	d := mustCompile(t, "kind: tuple\nitems: [int, string]\n")
	if _, err := typegraph.Check([]any{1, "x"}, d); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if _, err := typegraph.Check([]any{1}, d); !typegraph.IsMismatch(err) {
		t.Fatalf("short tuple accepted")
	}
}

func TestCompileMap(t *testing.T) {
	d := mustCompile(t, "kind: map\nkeys: string\nvalues: int\n")
	if _, err := typegraph.Check(map[string]any{"a": 1}, d); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if _, err := typegraph.Check(map[string]any{"a": "x"}, d); !typegraph.IsMismatch(err) {
		t.Fatalf("bad value accepted")
	}
}

func TestCompileOneOf(t *testing.T) {
	d := mustCompile(t, "kind: oneof\nof: [int, string]\n")
	if _, err := typegraph.Check(1, d); err != nil {
		t.Fatalf("int rejected: %v", err)
	}
	if _, err := typegraph.Check("x", d); err != nil {
		t.Fatalf("string rejected: %v", err)
	}
	if _, err := typegraph.Check(true, d); !typegraph.IsMismatch(err) {
		t.Fatalf("bool accepted")
	}
}

func TestCompileRecursiveRef(t *testing.T) {
	d := mustCompile(t, `
$defs:
  node:
    kind: record
    fields:
      "!name": string
      "?next":
        $ref: node
$ref: node
`)
	v := map[string]any{"name": "a"}
	v["next"] = v
	got, err := typegraph.Check(v, d)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	out := got.(map[string]any)
	if reflect.ValueOf(out).Pointer() != reflect.ValueOf(out["next"]).Pointer() {
		t.Fatalf("cyclic data does not resolve to the result map")
	}
}

func TestCompileRefToScalarDef(t *testing.T) {
	d := mustCompile(t, `
$defs:
  id: int
kind: list
of:
  $ref: id
`)
	if _, err := typegraph.Check([]any{1, 2}, d); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
}

func TestCompileRejectsUnknownKind(t *testing.T) {
	_, err := schemafile.Compile([]byte("kind: banana\n"))
	if !typegraph.IsInvalidDescriptor(err) {
		t.Fatalf("error = %v, want invalid descriptor", err)
	}
}

func TestCompileRejectsUndefinedRef(t *testing.T) {
	_, err := schemafile.Compile([]byte("$ref: nope\n"))
	if !typegraph.IsInvalidDescriptor(err) {
		t.Fatalf("error = %v, want invalid descriptor", err)
	}
}

func TestCompileRejectsUnanchoredRefCycle(t *testing.T) {
	_, err := schemafile.Compile([]byte(`
$defs:
  u:
    kind: oneof
    of:
      - $ref: u
$ref: u
`))
	if !typegraph.IsInvalidDescriptor(err) {
		t.Fatalf("error = %v, want invalid descriptor", err)
	}
}

func TestCompileRejectsBadYAML(t *testing.T) {
	_, err := schemafile.Compile([]byte("a: [1,\n"))
	if !typegraph.IsInvalidDescriptor(err) {
		t.Fatalf("error = %v, want invalid descriptor", err)
	}
}
