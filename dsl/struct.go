package dsl

import (
	"reflect"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/i18n"
)

// StructChecker matches pointers to a configured struct type and checks the
// exported fields against a record description. The checked field values
// are merged back into a result instance, which by default is a freshly
// allocated struct (so the input is never modified); a custom factory or
// reuse of the original instance can be configured instead.
//
// The steps run in a fixed order: instance type check, CheckBefore gate,
// result allocation, field check, merge, Check gate, Modify hook.
type StructChecker struct {
	typ         reflect.Type
	props       *RecordChecker
	factory     func() any
	reuse       bool
	checkBefore func(any) bool
	check       func(any) bool
	modify      func(any)
	mergeFn     func(target any, fields map[string]any) error
}

// NewStruct returns an unbound struct checker for deferred binding.
func NewStruct() *StructChecker { return &StructChecker{} }

// Struct binds a struct checker for the struct type of prototype (a T or
// *T value), panicking on a malformed configuration. Use NewStruct().Bind
// for the error form.
func Struct(prototype any, fields map[string]typegraph.Descriptor) *StructChecker {
	c := NewStruct()
	if err := c.Bind(prototype, fields); err != nil {
		panic(err)
	}
	return c
}

// Factory uses fn to allocate result instances; fn must return a pointer to
// the configured struct type.
func (c *StructChecker) Factory(fn func() any) *StructChecker {
	c.factory = fn
	return c
}

// Reuse merges checked fields back into the original instance instead of
// allocating a new one. The original value is mutated.
func (c *StructChecker) Reuse() *StructChecker {
	c.reuse = true
	return c
}

// CheckBefore gates the instance before field checking.
func (c *StructChecker) CheckBefore(fn func(any) bool) *StructChecker {
	c.checkBefore = fn
	return c
}

// Check gates the merged result.
func (c *StructChecker) Check(fn func(any) bool) *StructChecker {
	c.check = fn
	return c
}

// Modify post-processes the result after all gates have passed.
func (c *StructChecker) Modify(fn func(any)) *StructChecker {
	c.modify = fn
	return c
}

// MergeWith replaces the default field merge.
func (c *StructChecker) MergeWith(fn func(target any, fields map[string]any) error) *StructChecker {
	c.mergeFn = fn
	return c
}

// Bind configures the struct type and its field description. The field
// description uses the same key classes as RecordChecker, against the
// exported field names.
func (c *StructChecker) Bind(prototype any, fields map[string]typegraph.Descriptor) error {
	t := reflect.TypeOf(prototype)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return typegraph.NewInvalidDescriptor(c, "prototype must be a struct or a pointer to one")
	}
	props := NewRecord()
	if err := props.Bind(fields); err != nil {
		return err
	}
	c.typ = t
	c.props = props
	return nil
}

func (c *StructChecker) PreCheck(value any) (any, error) {
	if value == nil || reflect.TypeOf(value) != reflect.PointerTo(c.typ) {
		return nil, typegraph.NewMismatch(value, c, typegraph.CodeInvalidType, "expected *"+c.typ.String())
	}
	if c.checkBefore != nil && !c.checkBefore(value) {
		return nil, typegraph.NewMismatch(value, c, typegraph.CodeCheckFailed,
			i18n.T(typegraph.CodeCheckFailed, map[string]string{"hook": "check_before"}))
	}
	if c.reuse {
		return value, nil
	}
	if c.factory != nil {
		return c.factory(), nil
	}
	return reflect.New(c.typ).Interface(), nil
}

func (c *StructChecker) FinalCheck(value, shell any, recurse typegraph.RecurseFunc) (any, error) {
	rv := reflect.ValueOf(value).Elem()
	fields := make(map[string]any, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		sf := rv.Type().Field(i)
		if !sf.IsExported() {
			continue
		}
		fields[sf.Name] = rv.Field(i).Interface()
	}
	checked, err := recurse(fields, c.props)
	if err != nil {
		return nil, err
	}
	cm := checked.(map[string]any)
	if c.mergeFn != nil {
		if err := c.mergeFn(shell, cm); err != nil {
			return nil, err
		}
	} else if err := c.mergeFields(value, shell, cm); err != nil {
		return nil, err
	}
	if c.check != nil && !c.check(shell) {
		return nil, typegraph.NewMismatch(value, c, typegraph.CodeCheckFailed,
			i18n.T(typegraph.CodeCheckFailed, map[string]string{"hook": "check"}))
	}
	if c.modify != nil {
		c.modify(shell)
	}
	return shell, nil
}

// mergeFields writes checked field values into the target instance. Values
// are assigned directly when possible and converted when the field type
// allows it; anything else is a mismatch on that field.
func (c *StructChecker) mergeFields(value, target any, fields map[string]any) error {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Pointer || tv.IsNil() {
		return typegraph.NewInvalidDescriptor(c, "factory must return a non-nil struct pointer")
	}
	tv = tv.Elem()
	for name, fv := range fields {
		field := tv.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			continue
		}
		if fv == nil {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		rv := reflect.ValueOf(fv)
		switch {
		case rv.Type().AssignableTo(field.Type()):
			field.Set(rv)
		case rv.Type().ConvertibleTo(field.Type()):
			field.Set(rv.Convert(field.Type()))
		default:
			return typegraph.NewMismatch(value, c, typegraph.CodeInvalidType,
				"field "+name+" cannot hold "+rv.Type().String())
		}
	}
	return nil
}

func (c *StructChecker) String() string {
	if c.typ == nil {
		return "struct"
	}
	return "struct(" + c.typ.String() + ")"
}

func (c *StructChecker) shallowName() string { return "struct" }
