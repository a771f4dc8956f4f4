package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for template operations.
var (
	// ErrSyntax is returned when template text fails to lex or parse.
	ErrSyntax = errors.New("template syntax error")

	// ErrMissingVariable is returned when the context lacks a referenced variable.
	ErrMissingVariable = errors.New("missing variable")

	// ErrUnknownFilter is returned when a filter name is not in the registry.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrContextDecode is returned when a context document cannot be decoded.
	ErrContextDecode = errors.New("context decode error")
)

// Error kinds reported by Kind.
const (
	KindSyntax          = "syntax"
	KindMissingVariable = "missing_variable"
	KindUnknownFilter   = "unknown_filter"
	KindContextDecode   = "context_decode"
	KindInternal        = "internal"
)

// SyntaxError reports malformed template text.
// Offset is the byte offset in the source where the problem starts.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrSyntax, e.Offset, e.Msg)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// MissingVariableError reports a variable absent from the render context.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingVariable, e.Name)
}

// Is reports whether target is ErrMissingVariable.
func (e *MissingVariableError) Is(target error) bool {
	return target == ErrMissingVariable
}

// UnknownFilterError reports a filter name that the registry does not know.
type UnknownFilterError struct {
	Name string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownFilter, e.Name)
}

// Is reports whether target is ErrUnknownFilter.
func (e *UnknownFilterError) Is(target error) bool {
	return target == ErrUnknownFilter
}

// ContextDecodeError wraps the reason a context document was rejected.
type ContextDecodeError struct {
	Err error
}

func (e *ContextDecodeError) Error() string {
	return fmt.Sprintf("%s: %v", ErrContextDecode, e.Err)
}

// Is reports whether target is ErrContextDecode.
func (e *ContextDecodeError) Is(target error) bool {
	return target == ErrContextDecode
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ContextDecodeError) Unwrap() error {
	return e.Err
}

// Kind classifies err into one of the Kind* constants.
// Errors that do not come from this package are reported as KindInternal.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrSyntax):
		return KindSyntax
	case errors.Is(err, ErrMissingVariable):
		return KindMissingVariable
	case errors.Is(err, ErrUnknownFilter):
		return KindUnknownFilter
	case errors.Is(err, ErrContextDecode):
		return KindContextDecode
	default:
		return KindInternal
	}
}
