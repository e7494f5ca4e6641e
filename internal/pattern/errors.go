package pattern

import (
	"errors"
	"fmt"
)

// Kind classifies a script-facing failure. The codes are stable: they are the
// prefix of the error message the scripting runtime raises back to the script.
type Kind string

const (
	// KindArgument indicates malformed or missing call arguments
	KindArgument Kind = "ARGUMENT_ERROR"

	// KindRange indicates an address outside the current data bounds
	KindRange Kind = "RANGE_ERROR"

	// KindReflection indicates expected type metadata was absent
	KindReflection Kind = "REFLECTION_ERROR"

	// KindCapability indicates a type or member failed the marker-base check
	KindCapability Kind = "CAPABILITY_ERROR"

	// KindInstantiation indicates zero-argument construction of a supplied type failed
	KindInstantiation Kind = "INSTANTIATION_ERROR"
)

// Error is a script-facing failure with a machine-readable kind.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Is reports whether target is a pattern error of the same kind, so callers
// can match with errors.Is against a bare kind template.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Errorf builds a pattern error of the given kind.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a pattern error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
