package keymap

import (
	"errors"
	"fmt"
)

// Table construction errors.
var (
	// ErrEmptyKeys indicates a binding without a key sequence.
	ErrEmptyKeys = errors.New("binding has no keys")

	// ErrUnknownAction indicates an action kind other than navigate, focus or callback.
	ErrUnknownAction = errors.New("unknown action kind")

	// ErrEmptyTarget indicates an action without a path, element id or callback id.
	ErrEmptyTarget = errors.New("action has no target")

	// ErrDuplicatePattern indicates two bindings with the same key sequence.
	ErrDuplicatePattern = errors.New("duplicate binding pattern")

	// ErrUnsupportedFormat indicates a binding file extension the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported binding file format")
)

// DuplicateError reports two bindings sharing one pattern.
type DuplicateError struct {
	Pattern string
	First   int // index of the binding that wins
	Second  int // index of the rejected binding
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%v %q (bindings %d and %d)", ErrDuplicatePattern, e.Pattern, e.First, e.Second)
}

// Unwrap returns ErrDuplicatePattern.
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicatePattern
}

// BindingError wraps a validation error with the offending binding.
type BindingError struct {
	Index int
	Keys  string
	Err   error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding %d (%q): %v", e.Index, e.Keys, e.Err)
}

// Unwrap returns the underlying error.
func (e *BindingError) Unwrap() error {
	return e.Err
}

// ParseError reports a binding file that could not be decoded.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Path, e.Message)
}

// Unwrap returns the decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
