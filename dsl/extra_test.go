package dsl_test

import (
	"errors"
	"strings"
	"testing"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/dsl"
)

func TestExtraConvert(t *testing.T) {
	desc := dsl.Extra(typegraph.String, dsl.Convert(func(v any) any {
		return strings.ToUpper(v.(string))
	}))
	got, err := typegraph.Check("abc", desc)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if got != "ABC" {
		t.Fatalf("got %v", got)
	}
}

func TestExtraConvertBefore(t *testing.T) {
	desc := dsl.Extra(typegraph.Int, dsl.ConvertBefore(func(v any) any {
		if s, ok := v.(string); ok {
			return len(s)
		}
		return v
	}))
	got, err := typegraph.Check("abc", desc)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if got != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestExtraCheckBeforeGate(t *testing.T) {
	desc := dsl.Extra(typegraph.Int, dsl.CheckBefore(func(v any) bool {
		n, ok := v.(int)
		return ok && n > 0
	}))
	if got, err := typegraph.Check(5, desc); err != nil || got != 5 {
		t.Fatalf("positive int rejected: (%v, %v)", got, err)
	}
	_, err := typegraph.Check(-1, desc)
	var me *typegraph.MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("error = %v, want mismatch", err)
	}
	if me.Code != typegraph.CodeCheckFailed {
		t.Fatalf("code = %q, want %q", me.Code, typegraph.CodeCheckFailed)
	}
}

func TestExtraCheckSeesCheckedResult(t *testing.T) {
	var seen any
	desc := dsl.Extra(
		dsl.List(typegraph.Int),
		dsl.Check(func(v any) bool {
			seen = v
			return len(v.([]any)) == 2
		}),
	)
	if _, err := typegraph.Check([]any{1, 2}, desc); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if _, ok := seen.([]any); !ok {
		t.Fatalf("gate saw %T, want the checked list", seen)
	}
	if _, err := typegraph.Check([]any{1}, desc); !typegraph.IsMismatch(err) {
		t.Fatalf("failing gate not reported")
	}
}

func TestExtraStepOrder(t *testing.T) {
	var order []string
	desc := dsl.Extra(
		typegraph.Any,
		dsl.CheckBefore(func(any) bool { order = append(order, "check_before"); return true }),
		dsl.ConvertBefore(func(v any) any { order = append(order, "convert_before"); return v }),
		dsl.Check(func(any) bool { order = append(order, "check"); return true }),
		dsl.Convert(func(v any) any { order = append(order, "convert"); return v }),
	)
	if _, err := typegraph.Check(1, desc); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	want := "check_before,convert_before,check,convert"
	if got := strings.Join(order, ","); got != want {
		t.Fatalf("steps ran as %s, want %s", got, want)
	}
}

func TestExtraBindRejectsLonePrecreate(t *testing.T) {
	err := dsl.NewExtra().Bind(typegraph.Any, dsl.Precreate(func(any) any { return &struct{}{} }))
	if !typegraph.IsInvalidDescriptor(err) {
		t.Fatalf("error = %v, want invalid descriptor", err)
	}
	err = dsl.NewExtra().Bind(typegraph.Any, dsl.Merge(func(any, any) {}))
	if !typegraph.IsInvalidDescriptor(err) {
		t.Fatalf("error = %v, want invalid descriptor", err)
	}
}

type box struct {
	fields map[string]any
}

func TestExtraPrecreateMergeAllowsCycles(t *testing.T) {
	desc := dsl.NewExtra()
	err := desc.Bind(
		dsl.Record(map[string]typegraph.Descriptor{
			"!name": typegraph.String,
			"?self": typegraph.OneOf(typegraph.Null, desc),
		}),
		dsl.Precreate(func(any) any { return &box{} }),
		dsl.Merge(func(shell, result any) {
			shell.(*box).fields = result.(map[string]any)
		}),
	)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	v := map[string]any{"name": "root"}
	v["self"] = v
	got, err := typegraph.Check(v, desc)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	b, ok := got.(*box)
	if !ok {
		t.Fatalf("result is %T, want the precreated shell", got)
	}
	if b.fields["name"] != "root" {
		t.Fatalf("fields = %v", b.fields)
	}
	if b.fields["self"] != got {
		t.Fatalf("cyclic reference does not resolve to the shell")
	}
}
