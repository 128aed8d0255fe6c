package enrich

import (
	"fmt"

	"github.com/dd0wney/cluso-semflow/pkg/flowgraph"
	"github.com/dd0wney/cluso-semflow/pkg/ontology"
	"github.com/dd0wney/cluso-semflow/pkg/semantic"
)

// typePorts resolves a sequence of raw ports into a same-length sequence
// of optional semantic elements. A port with no annotation name types to
// nil (untyped); an annotated port must resolve to an object annotation.
func typePorts(ports []flowgraph.RawPort, resolver ontology.Resolver, opts Options) ([]*semantic.Elem, error) {
	elems := make([]*semantic.Elem, len(ports))
	for i, p := range ports {
		elem, err := typePort(p, resolver, opts)
		if err != nil {
			return nil, phaseError("TypePort", 0, i, deref(p.Name), err)
		}
		elems[i] = elem
	}
	return elems, nil
}

func typePort(p flowgraph.RawPort, resolver ontology.Resolver, opts Options) (*semantic.Elem, error) {
	if p.Name == nil {
		if opts.Elements && (p.ID != nil || p.Value != nil) {
			return &semantic.Elem{ID: cloneString(p.ID), Value: cloneLiteral(p.Value)}, nil
		}
		return nil, nil
	}

	ann, err := resolver.Lookup(*p.Name)
	if err != nil {
		return nil, err
	}
	ob, ok := ann.(*ontology.ObAnnotation)
	if !ok {
		return nil, fmt.Errorf("%w: %q resolves to a morphism, want an object", ErrKindMismatch, *p.Name)
	}

	elem := semantic.NewElem(ob.Definition)
	if opts.Elements {
		elem.ID = cloneString(p.ID)
		elem.Value = cloneLiteral(p.Value)
	}
	return elem, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

func cloneLiteral(l *semantic.Literal) *semantic.Literal {
	if l == nil {
		return nil
	}
	out := semantic.Literal{Type: l.Type, Data: append([]byte(nil), l.Data...)}
	return &out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
