package typegraph

import (
	"maps"
	"reflect"

	"github.com/typegraph/typegraph/i18n"
)

// Check validates value against descriptor and returns the converted
// result. On failure it returns a *MismatchError (the value does not
// conform) or an *InvalidDescriptorError (the descriptor itself is
// malformed). The input value is never modified; the result may share
// objects with it.
//
// Each call owns an independent session, so descriptors may be shared by
// concurrent Check calls without synchronization.
func Check(value any, descriptor Descriptor) (any, error) {
	return newSession().check(value, descriptor)
}

// ref is the identity of a reference-kinded value: the data pointer plus
// enough shape to distinguish aliasing views.
type ref struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// identity returns a comparable identity key for v. Reference kinds are
// keyed by their data pointer; comparable non-reference values are keyed by
// themselves (two equal scalars necessarily match the same way, so merging
// them is sound). ok is false when v has no usable identity.
func identity(v any) (any, bool) {
	if v == nil {
		return ref{}, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ref{ptr: rv.Pointer(), typ: rv.Type()}, true
	case reflect.Slice:
		return ref{ptr: rv.Pointer(), len: rv.Len(), typ: rv.Type()}, true
	}
	if rv.Comparable() {
		return v, true
	}
	return nil, false
}

// isNull reports whether v is absent: the untyped nil interface or a nil
// value of a nilable kind (a nil *T struct field read through reflection
// arrives as a typed nil and must still count as absence).
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// pairKey identifies one (value, descriptor) match within a session.
type pairKey struct {
	v any
	d any
}

// entry is a live or completed match result. The original value and
// descriptor are retained so that their identity keys cannot be collected
// and reused while the session is alive.
type entry struct {
	result     any
	value      any
	descriptor Descriptor
}

// failure retains a failed match so repeated lookups reproduce the
// identical error object.
type failure struct {
	err        error
	value      any
	descriptor Descriptor
}

// session is the per-Check matching state: identity-keyed in-progress,
// succeeded and failed tables, plus the transient loop-guard set used while
// a no-shell checker runs its second phase.
type session struct {
	inProgress map[pairKey]*entry
	succeeded  map[pairKey]*entry
	failed     map[pairKey]*failure
	loopGuard  map[pairKey]struct{}
}

func newSession() *session {
	return &session{
		inProgress: make(map[pairKey]*entry),
		succeeded:  make(map[pairKey]*entry),
		failed:     make(map[pairKey]*failure),
		loopGuard:  make(map[pairKey]struct{}),
	}
}

func (s *session) key(value any, descriptor Descriptor) (pairKey, bool) {
	vk, ok := identity(value)
	if !ok {
		return pairKey{}, false
	}
	dk, ok := identity(descriptor)
	if !ok {
		return pairKey{}, false
	}
	return pairKey{v: vk, d: dk}, true
}

func (s *session) check(value any, descriptor Descriptor) (any, error) {
	key, hasKey := s.key(value, descriptor)
	if hasKey {
		if e, ok := s.succeeded[key]; ok {
			return e.result, nil
		}
		if f, ok := s.failed[key]; ok {
			return nil, f.err
		}
		// In-progress means we are already computing this exact pair
		// further up the call stack: a direct cycle. Hand back the
		// placeholder instead of recursing again.
		if e, ok := s.inProgress[key]; ok {
			return e.result, nil
		}
	}
	result, err := s.dispatch(value, descriptor, key, hasKey)
	if err != nil {
		if hasKey {
			if !IsInvalidDescriptor(err) {
				s.failed[key] = &failure{err: err, value: value, descriptor: descriptor}
			}
			delete(s.inProgress, key)
		}
		return nil, err
	}
	if hasKey {
		// Only matches that went through a placeholder are recorded as
		// succeeded; everything else is recomputed cheaply on demand.
		if _, ok := s.inProgress[key]; ok {
			delete(s.inProgress, key)
			s.succeeded[key] = &entry{result: result, value: value, descriptor: descriptor}
		}
	}
	return result, nil
}

func (s *session) dispatch(value any, descriptor Descriptor, key pairKey, hasKey bool) (any, error) {
	switch d := descriptor.(type) {
	case nil:
		if !isNull(value) {
			return nil, NewMismatch(value, descriptor, CodeInvalidType, i18n.T("expected_null", nil))
		}
		return nil, nil
	case *sentinel:
		switch d.kind {
		case kindAny:
			return value, nil
		case kindNull:
			if !isNull(value) {
				return nil, NewMismatch(value, descriptor, CodeInvalidType, i18n.T("expected_null", nil))
			}
			return nil, nil
		case kindNotNull:
			if isNull(value) {
				return nil, NewMismatch(value, descriptor, CodeInvalidType, i18n.T("expected_notnull", nil))
			}
			return value, nil
		default: // kindNever
			return nil, NewMismatch(value, descriptor, CodeNever, "")
		}
	case *primitive:
		return s.checkPrimitive(value, d)
	case *instanceDesc:
		if isNull(value) {
			return nil, NewMismatch(value, descriptor, CodeInvalidType, "")
		}
		if !reflect.TypeOf(value).AssignableTo(d.typ) {
			return nil, NewMismatch(value, descriptor, CodeInvalidType, "")
		}
		return value, nil
	case *alternation:
		return s.checkAlternation(value, d)
	default:
		if c, ok := descriptor.(Checker); ok {
			return s.checkComposite(value, descriptor, c, key, hasKey)
		}
		return nil, NewInvalidDescriptor(descriptor, "unrecognized descriptor")
	}
}

func (s *session) checkPrimitive(value any, d *primitive) (any, error) {
	if value == nil {
		return nil, NewMismatch(value, d, CodeInvalidType, "")
	}
	k := reflect.ValueOf(value).Kind()
	switch d.kind {
	case primInt:
		switch k {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return value, nil
		}
	case primString:
		if k == reflect.String {
			return value, nil
		}
	case primBool:
		if k == reflect.Bool {
			return value, nil
		}
	}
	return nil, NewMismatch(value, d, CodeInvalidType, "")
}

// checkAlternation tries each alternative in declared order within the same
// session. Mismatches are swallowed until the list is exhausted; an invalid
// descriptor aborts the whole match instead of being skipped.
func (s *session) checkAlternation(value any, d *alternation) (any, error) {
	for _, alt := range d.alts {
		result, err := s.check(value, alt)
		if err == nil {
			return result, nil
		}
		if !IsMismatch(err) {
			return nil, err
		}
	}
	return nil, NewMismatch(value, d, CodeNoAlternative, "")
}

// checkComposite runs the two-phase checker protocol.
//
// With a shell, the shell is registered as the in-progress result before
// the second phase so self-references resolve to it, and the second phase
// runs against a private copy of the succeeded table that is merged back
// only on success: successes recorded under an in-progress shell may
// reference that shell and must not survive its failure. Failed entries, by
// contrast, are shared globally within the session.
//
// Without a shell, the pair is pushed onto the loop-guard set for the
// duration of the second phase; a direct re-entry on the same pair while
// guarded is a hard mismatch, while an indirect cycle through an
// intermediate container succeeds via that container's own shell.
func (s *session) checkComposite(value any, descriptor Descriptor, c Checker, key pairKey, hasKey bool) (any, error) {
	if hasKey {
		if _, guarded := s.loopGuard[key]; guarded {
			return nil, NewMismatch(value, descriptor, CodeRecursiveValue, "")
		}
	}
	shell, err := c.PreCheck(value)
	if err != nil {
		return nil, err
	}
	if shell == nil {
		if hasKey {
			s.loopGuard[key] = struct{}{}
			defer delete(s.loopGuard, key)
		}
		return c.FinalCheck(value, nil, s.check)
	}
	if hasKey {
		s.inProgress[key] = &entry{result: shell, value: value, descriptor: descriptor}
	}
	child := &session{
		inProgress: s.inProgress,
		succeeded:  maps.Clone(s.succeeded),
		failed:     s.failed,
		loopGuard:  make(map[pairKey]struct{}),
	}
	if _, err := c.FinalCheck(value, shell, child.check); err != nil {
		return nil, err
	}
	clear(s.succeeded)
	maps.Copy(s.succeeded, child.succeeded)
	return shell, nil
}
