package typegraph

import (
	"errors"

	"github.com/typegraph/typegraph/i18n"
)

// Mismatch codes (exported consts for IDE completion and type safety by
// convention).
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeLengthMismatch = "length_mismatch"
	CodeStrictMode     = "strict_mode"
	CodeCheckFailed    = "check_failed"
	CodeRecursiveValue = "recursive_value"
	CodeNoAlternative  = "no_alternative"
	CodeInvalidKey     = "invalid_key"
	CodeNever          = "never"
	CodeNotAType       = "not_a_type"
	CodeNotASubtype    = "not_a_subtype"
)

// MismatchError reports that a value does not conform to a descriptor at
// some position. It always carries the specific value and descriptor
// involved and, where helpful, a short reason.
type MismatchError struct {
	Value      any
	Descriptor Descriptor
	Code       string
	Reason     string
}

func (e *MismatchError) Error() string {
	msg := render(e.Value) + " cannot match " + Describe(e.Descriptor)
	if e.Reason != "" {
		return msg + ": " + e.Reason
	}
	if m := i18n.T(e.Code, nil); m != e.Code {
		return msg + ": " + m
	}
	return msg
}

// NewMismatch builds a *MismatchError. An empty reason falls back to the
// translated message for code.
func NewMismatch(value any, descriptor Descriptor, code, reason string) *MismatchError {
	return &MismatchError{Value: value, Descriptor: descriptor, Code: code, Reason: reason}
}

// InvalidDescriptorError reports that a descriptor itself is malformed. It
// is always fatal: the engine never caches it as a value-level failure and
// alternation does not skip over it.
type InvalidDescriptorError struct {
	Descriptor Descriptor
	Reason     string
}

func (e *InvalidDescriptorError) Error() string {
	return Describe(e.Descriptor) + " is not a valid descriptor: " + e.Reason
}

// NewInvalidDescriptor builds an *InvalidDescriptorError.
func NewInvalidDescriptor(descriptor Descriptor, reason string) *InvalidDescriptorError {
	return &InvalidDescriptorError{Descriptor: descriptor, Reason: reason}
}

// IsMismatch reports whether err is (or wraps) a structural mismatch.
func IsMismatch(err error) bool {
	var me *MismatchError
	return errors.As(err, &me)
}

// IsInvalidDescriptor reports whether err is (or wraps) a malformed
// descriptor error.
func IsInvalidDescriptor(err error) bool {
	var ie *InvalidDescriptorError
	return errors.As(err, &ie)
}
