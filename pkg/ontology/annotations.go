package ontology

import (
	"errors"

	"github.com/dd0wney/cluso-semflow/pkg/semantic"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

// Common sentinel errors
var (
	ErrAnnotationNotFound = errors.New("annotation not found")
	ErrUnknownKind        = errors.New("unknown annotation kind")
	ErrNoConstruction     = errors.New("no construction registered for object")
)

// Annotation is the closed result type of a resolver lookup: either a
// HomAnnotation or an ObAnnotation. Nothing outside this package can add
// a third variant.
type Annotation interface {
	isAnnotation()
}

// HomAnnotation is a resolved Function-annotation: a morphism given as a
// semantic sub-diagram definition.
type HomAnnotation struct {
	Name       string
	Definition *wiring.Diagram
}

func (*HomAnnotation) isAnnotation() {}

// ObAnnotation is a resolved Construct/Slot-annotation: a semantic object
// definition plus the ordered component slots used by Slot expansion.
type ObAnnotation struct {
	Name       string
	Definition semantic.Object
	Slots      []semantic.Object
}

func (*ObAnnotation) isAnnotation() {}

// Resolver looks annotations up by name. Implementations must be
// read-only and referentially transparent within one enrichment call:
// repeated lookups of the same name return equal definitions.
type Resolver interface {
	Lookup(name string) (Annotation, error)
}

// Constructor produces the diagram that builds a semantic object. It is
// consulted only for Construct-kind expansion.
type Constructor interface {
	Construct(ob semantic.Object) (*wiring.Diagram, error)
}
