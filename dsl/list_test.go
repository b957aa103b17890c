package dsl_test

import (
	"errors"
	"reflect"
	"testing"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/dsl"
)

func TestListOfInts(t *testing.T) {
	got, err := typegraph.Check([]any{1, 2, 3}, dsl.List(typegraph.Int))
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !reflect.DeepEqual(got, []any{1, 2, 3}) {
		t.Fatalf("got %v", got)
	}
}

func TestListElementMismatch(t *testing.T) {
	_, err := typegraph.Check([]any{1, "x"}, dsl.List(typegraph.Int))
	if !typegraph.IsMismatch(err) {
		t.Fatalf("error = %v, want mismatch", err)
	}
}

func TestListAutoWrap(t *testing.T) {
	got, err := typegraph.Check(1, dsl.List(typegraph.Int))
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !reflect.DeepEqual(got, []any{1}) {
		t.Fatalf("got %v, want the value wrapped in a one-element list", got)
	}
	// The wrapped value must still match the inner descriptor.
	if _, err := typegraph.Check("x", dsl.List(typegraph.Int)); !typegraph.IsMismatch(err) {
		t.Fatalf("auto-wrapped mismatch not reported")
	}
}

func TestListStrict(t *testing.T) {
	_, err := typegraph.Check(1, dsl.List(typegraph.Int).Strict())
	var me *typegraph.MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("error = %v, want mismatch", err)
	}
	if me.Code != typegraph.CodeStrictMode {
		t.Fatalf("code = %q, want %q", me.Code, typegraph.CodeStrictMode)
	}
	if _, err := typegraph.Check([]any{1}, dsl.List(typegraph.Int).Strict()); err != nil {
		t.Fatalf("strict rejects sequences too: %v", err)
	}
}

func TestListWithoutInner(t *testing.T) {
	got, err := typegraph.Check([]any{1, "x", nil}, dsl.List())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !reflect.DeepEqual(got, []any{1, "x", nil}) {
		t.Fatalf("got %v", got)
	}
}

func TestListAcceptsTypedSlicesAndArrays(t *testing.T) {
	got, err := typegraph.Check([]int{1, 2}, dsl.List(typegraph.Int))
	if err != nil {
		t.Fatalf("typed slice: %v", err)
	}
	if !reflect.DeepEqual(got, []any{1, 2}) {
		t.Fatalf("typed slice got %v", got)
	}
	if _, err := typegraph.Check([2]string{"a", "b"}, dsl.List(typegraph.String)); err != nil {
		t.Fatalf("array: %v", err)
	}
}

func TestListBindRejectsTwoInner(t *testing.T) {
	err := dsl.NewList().Bind(typegraph.Int, typegraph.String)
	if !typegraph.IsInvalidDescriptor(err) {
		t.Fatalf("error = %v, want invalid descriptor", err)
	}
}
