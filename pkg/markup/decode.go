package markup

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-semflow/pkg/flowgraph"
	"github.com/dd0wney/cluso-semflow/pkg/ontology"
	"github.com/dd0wney/cluso-semflow/pkg/semantic"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

// DecodeRaw parses a raw markup document into a flow graph. The result
// is validated; unknown kind labels and dangling wire references fail
// the decode.
func DecodeRaw(data []byte) (*flowgraph.Diagram, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if err := checkDocument(&doc, KindRaw); err != nil {
		return nil, err
	}
	return buildRaw(&doc.Diagram)
}

// DecodeSemantic parses a semantic markup document into a wiring
// diagram, recursing through nested sub-diagrams.
func DecodeSemantic(data []byte) (*wiring.Diagram, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if err := checkDocument(&doc, KindSemantic); err != nil {
		return nil, err
	}
	return buildSemantic(&doc.Diagram)
}

func buildRaw(dd *diagramDoc) (*flowgraph.Diagram, error) {
	inputs, err := rawPorts(dd.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := rawPorts(dd.Outputs)
	if err != nil {
		return nil, err
	}
	d := flowgraph.NewDiagram(inputs, outputs)

	for _, b := range dd.Boxes {
		id := wiring.BoxID(b.ID)
		if _, dup := d.Boxes[id]; dup {
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidDocument, id)
		}
		ins, err := rawPorts(b.Inputs)
		if err != nil {
			return nil, err
		}
		outs, err := rawPorts(b.Outputs)
		if err != nil {
			return nil, err
		}
		box := &flowgraph.Box{
			Node:    flowgraph.RawNode{Meta: b.Meta},
			Inputs:  ins,
			Outputs: outs,
		}
		if b.Node != nil {
			name := b.Node.Name
			box.Node.Name = &name
			box.Node.Index = cloneInt(b.Node.Index)
			kind, err := ontology.ParseKind(b.Node.Kind)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", id, err)
			}
			box.Node.Kind = kind
		}
		d.Boxes[id] = box
		d.Order = append(d.Order, id)
	}

	for _, w := range dd.Wires {
		d.AddWire(wireFromDoc(w))
	}
	if err := d.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	return d, nil
}

func rawPorts(docs []portDoc) ([]flowgraph.RawPort, error) {
	ports := make([]flowgraph.RawPort, len(docs))
	for i, p := range docs {
		ports[i] = flowgraph.RawPort{
			Meta: p.Meta,
			ID:   cloneString(p.Ref),
		}
		if p.Annotation != nil {
			name := p.Annotation.Name
			ports[i].Name = &name
			ports[i].Index = cloneInt(p.Annotation.Index)
			// Port annotations carry no kind; reject anything present
			// rather than silently ignoring a mislabelled document.
			if p.Annotation.Kind != "" {
				return nil, fmt.Errorf("%w: kind label %q on a port annotation", ErrInvalidDocument, p.Annotation.Kind)
			}
		}
		if p.Value != nil {
			v, err := decodeLiteral(p.Value)
			if err != nil {
				return nil, err
			}
			ports[i].Value = v
		}
	}
	return ports, nil
}

func buildSemantic(dd *diagramDoc) (*wiring.Diagram, error) {
	inputs, err := portElems(dd.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := portElems(dd.Outputs)
	if err != nil {
		return nil, err
	}
	d := wiring.New(inputs, outputs)

	for _, b := range dd.Boxes {
		ins, err := portElems(b.Inputs)
		if err != nil {
			return nil, err
		}
		outs, err := portElems(b.Outputs)
		if err != nil {
			return nil, err
		}
		box := &wiring.Box{Inputs: ins, Outputs: outs}
		box.Value, err = elemFromDoc(b.Value)
		if err != nil {
			return nil, err
		}
		if b.Nested != nil {
			box.Nested, err = buildSemantic(b.Nested)
			if err != nil {
				return nil, err
			}
		}
		if err := d.AddBoxWithID(wiring.BoxID(b.ID), box); err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
	}

	for _, w := range dd.Wires {
		if err := d.AddWire(wireFromDoc(w)); err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
	}
	return d, nil
}

func portElems(docs []portDoc) ([]*semantic.Elem, error) {
	elems := make([]*semantic.Elem, len(docs))
	for i, p := range docs {
		e, err := elemFromDoc(p.Elem)
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}
	return elems, nil
}

func elemFromDoc(doc *elemDoc) (*semantic.Elem, error) {
	if doc == nil {
		return nil, nil
	}
	e := &semantic.Elem{ID: cloneString(doc.ID)}
	if doc.Ob != nil {
		e.Ob = &semantic.Object{Name: *doc.Ob}
	}
	if doc.Value != nil {
		v, err := decodeLiteral(doc.Value)
		if err != nil {
			return nil, err
		}
		e.Value = v
	}
	return e, nil
}

func wireFromDoc(w wireDoc) wiring.Wire {
	return wiring.Wire{
		Source: wiring.PortRef{Box: wiring.BoxID(w.Source.Box), Port: w.Source.Port},
		Target: wiring.PortRef{Box: wiring.BoxID(w.Target.Box), Port: w.Target.Port},
	}
}

func decodeLiteral(doc *literalDoc) (*semantic.Literal, error) {
	var lit semantic.Literal
	switch doc.Type {
	case "string":
		var s string
		if err := json.Unmarshal(doc.Value, &s); err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
		lit = semantic.StringLiteral(s)
	case "int":
		var i int64
		if err := json.Unmarshal(doc.Value, &i); err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
		lit = semantic.IntLiteral(i)
	case "float":
		var f float64
		if err := json.Unmarshal(doc.Value, &f); err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
		lit = semantic.FloatLiteral(f)
	case "bool":
		var b bool
		if err := json.Unmarshal(doc.Value, &b); err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
		lit = semantic.BoolLiteral(b)
	default:
		return nil, fmt.Errorf("%w: unknown literal type %q", ErrInvalidDocument, doc.Type)
	}
	return &lit, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	out := *i
	return &out
}
