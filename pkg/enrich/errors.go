package enrich

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

// Common sentinel errors. Annotation-not-found and unknown-kind failures
// surface the ontology package's sentinels; dangling wires surface the
// wiring package's.
var (
	ErrKindMismatch    = errors.New("annotation kind mismatch")
	ErrIndexOutOfRange = errors.New("annotation index out of range")
	ErrNoConstructor   = errors.New("construct expansion requires a constructor capability")
)

// Error provides structured context for enrichment failures.
type Error struct {
	Op         string       // Phase that failed (e.g., "TypePort", "Expand")
	Box        wiring.BoxID // Box handle (0 if not applicable)
	Port       int          // Port index (-1 if not applicable)
	Annotation string       // Annotation name (empty if not applicable)
	Cause      error        // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Op
	if e.Box != 0 {
		msg += fmt.Sprintf(" %s", e.Box)
	}
	if e.Port >= 0 {
		msg += fmt.Sprintf(" port %d", e.Port)
	}
	if e.Annotation != "" {
		msg += fmt.Sprintf(" annotation %q", e.Annotation)
	}
	return fmt.Sprintf("%s: %v", msg, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func phaseError(op string, box wiring.BoxID, port int, annotation string, cause error) error {
	return &Error{Op: op, Box: box, Port: port, Annotation: annotation, Cause: cause}
}
