package wiring

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrBoxNotFound    = errors.New("box not found")
	ErrDuplicateBox   = errors.New("box handle already in use")
	ErrInvalidHandle  = errors.New("invalid box handle")
	ErrInvalidWire    = errors.New("wire endpoint does not exist")
	ErrNotNested      = errors.New("box has no nested diagram")
	ErrDanglingWire   = errors.New("wire targets a port missing from the nested diagram")
	ErrEmptySelection = errors.New("no boxes selected")
)

// DiagramError provides structured error information for diagram operations.
type DiagramError struct {
	Op    string // Operation that failed (e.g., "AddWire", "Substitute")
	Box   BoxID  // Box handle (0 if not applicable)
	Port  int    // Port index (-1 if not applicable)
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *DiagramError) Error() string {
	if e.Box != 0 {
		if e.Port >= 0 {
			return fmt.Sprintf("%s %s port %d: %v", e.Op, e.Box, e.Port, e.Cause)
		}
		return fmt.Sprintf("%s %s: %v", e.Op, e.Box, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *DiagramError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *DiagramError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func opError(op string, box BoxID, port int, cause error) error {
	return &DiagramError{Op: op, Box: box, Port: port, Cause: cause}
}
