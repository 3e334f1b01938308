package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script or callback runs past
	// the execution timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")
)
