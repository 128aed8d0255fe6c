package ontology

import (
	"fmt"

	"github.com/dd0wney/cluso-semflow/pkg/semantic"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

// Registry is an in-memory Resolver and Constructor. It is the reference
// annotation store used by tests and the CLI; a production deployment can
// swap in any other Resolver implementation.
type Registry struct {
	annotations   map[string]Annotation
	constructions map[string]*wiring.Diagram // keyed by object name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		annotations:   make(map[string]Annotation),
		constructions: make(map[string]*wiring.Diagram),
	}
}

// RegisterHom stores a Function-annotation under the given name.
func (r *Registry) RegisterHom(name string, definition *wiring.Diagram) {
	r.annotations[name] = &HomAnnotation{Name: name, Definition: definition}
}

// RegisterOb stores an object annotation under the given name.
func (r *Registry) RegisterOb(name string, definition semantic.Object, slots ...semantic.Object) {
	r.annotations[name] = &ObAnnotation{Name: name, Definition: definition, Slots: slots}
}

// RegisterConstruction stores the diagram that builds the given object.
func (r *Registry) RegisterConstruction(ob semantic.Object, d *wiring.Diagram) {
	r.constructions[ob.Name] = d
}

// Lookup implements Resolver.
func (r *Registry) Lookup(name string) (Annotation, error) {
	ann, ok := r.annotations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAnnotationNotFound, name)
	}
	return ann, nil
}

// Construct implements Constructor. The returned diagram is a copy; the
// stored definition stays pristine across calls.
func (r *Registry) Construct(ob semantic.Object) (*wiring.Diagram, error) {
	d, ok := r.constructions[ob.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoConstruction, ob.Name)
	}
	return d.Clone(), nil
}
