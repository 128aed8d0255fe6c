package markup

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-semflow/pkg/flowgraph"
	"github.com/dd0wney/cluso-semflow/pkg/semantic"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

// EncodeRaw serializes a raw flow graph to a markup document.
func EncodeRaw(d *flowgraph.Diagram) ([]byte, error) {
	dd, err := rawDiagramDoc(d)
	if err != nil {
		return nil, err
	}
	doc := document{
		Version: Version,
		ID:      uuid.NewString(),
		Kind:    KindRaw,
		Diagram: dd,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// EncodeSemantic serializes a semantic wiring diagram to a markup document.
func EncodeSemantic(d *wiring.Diagram) ([]byte, error) {
	dd, err := semanticDiagramDoc(d)
	if err != nil {
		return nil, err
	}
	doc := document{
		Version: Version,
		ID:      uuid.NewString(),
		Kind:    KindSemantic,
		Diagram: dd,
	}
	return json.MarshalIndent(doc, "", "  ")
}

func rawDiagramDoc(d *flowgraph.Diagram) (diagramDoc, error) {
	dd := diagramDoc{
		Inputs:  rawPortDocs(d.Inputs),
		Outputs: rawPortDocs(d.Outputs),
		Wires:   wireDocs(d.Wires),
	}
	for _, id := range d.Order {
		b := d.Boxes[id]
		entry := boxDoc{
			ID:      int(id),
			Meta:    b.Node.Meta,
			Inputs:  rawPortDocs(b.Inputs),
			Outputs: rawPortDocs(b.Outputs),
		}
		if b.Node.Name != nil {
			entry.Node = &annotationDoc{
				Name:  *b.Node.Name,
				Index: b.Node.Index,
				Kind:  b.Node.Kind.String(),
			}
		}
		dd.Boxes = append(dd.Boxes, entry)
	}
	return dd, nil
}

func rawPortDocs(ports []flowgraph.RawPort) []portDoc {
	docs := make([]portDoc, len(ports))
	for i, p := range ports {
		docs[i] = portDoc{
			Meta: p.Meta,
			Ref:  p.ID,
		}
		if p.Name != nil {
			docs[i].Annotation = &annotationDoc{Name: *p.Name, Index: p.Index}
		}
		if p.Value != nil {
			docs[i].Value = encodeLiteral(p.Value)
		}
	}
	return docs
}

func semanticDiagramDoc(d *wiring.Diagram) (diagramDoc, error) {
	dd := diagramDoc{
		Inputs:  elemPortDocs(d.Inputs()),
		Outputs: elemPortDocs(d.Outputs()),
		Wires:   wireDocs(d.Wires()),
	}
	for _, id := range d.BoxIDs() {
		b, _ := d.Box(id)
		entry := boxDoc{
			ID:      int(id),
			Inputs:  elemPortDocs(b.Inputs),
			Outputs: elemPortDocs(b.Outputs),
			Value:   elemToDoc(b.Value),
		}
		if b.Nested != nil {
			nested, err := semanticDiagramDoc(b.Nested)
			if err != nil {
				return diagramDoc{}, err
			}
			entry.Nested = &nested
		}
		dd.Boxes = append(dd.Boxes, entry)
	}
	return dd, nil
}

func elemPortDocs(elems []*semantic.Elem) []portDoc {
	docs := make([]portDoc, len(elems))
	for i, e := range elems {
		docs[i] = portDoc{Elem: elemToDoc(e)}
	}
	return docs
}

func elemToDoc(e *semantic.Elem) *elemDoc {
	if e == nil {
		return nil
	}
	doc := &elemDoc{ID: e.ID}
	if e.Ob != nil {
		name := e.Ob.Name
		doc.Ob = &name
	}
	if e.Value != nil {
		doc.Value = encodeLiteral(e.Value)
	}
	return doc
}

func wireDocs(wires []wiring.Wire) []wireDoc {
	docs := make([]wireDoc, len(wires))
	for i, w := range wires {
		docs[i] = wireDoc{
			Source: endpointDoc{Box: int(w.Source.Box), Port: w.Source.Port},
			Target: endpointDoc{Box: int(w.Target.Box), Port: w.Target.Port},
		}
	}
	return docs
}

func encodeLiteral(l *semantic.Literal) *literalDoc {
	switch l.Type {
	case semantic.TypeString:
		s, _ := l.AsString()
		return &literalDoc{Type: "string", Value: mustJSON(s)}
	case semantic.TypeInt:
		i, _ := l.AsInt()
		return &literalDoc{Type: "int", Value: mustJSON(i)}
	case semantic.TypeFloat:
		f, _ := l.AsFloat()
		return &literalDoc{Type: "float", Value: mustJSON(f)}
	case semantic.TypeBool:
		b, _ := l.AsBool()
		return &literalDoc{Type: "bool", Value: mustJSON(b)}
	default:
		return &literalDoc{Type: fmt.Sprintf("literal(%d)", l.Type)}
	}
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		// Only plain scalars flow through here
		panic(err)
	}
	return data
}
