// Package flowgraph holds the raw instrumented program flow graph: the
// immutable input model produced by an external graph-markup reader.
// Boxes and ports carry opaque source-language metadata plus optional
// references into the annotation ontology.
package flowgraph

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-semflow/pkg/ontology"
	"github.com/dd0wney/cluso-semflow/pkg/semantic"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

// Common sentinel errors
var (
	ErrMalformedGraph = errors.New("malformed raw graph")
)

// RawNode is the metadata attached to a raw box. Annotation fields are
// explicit optionals; Kind is meaningful only when Name is present.
type RawNode struct {
	Meta  map[string]any
	Name  *string
	Index *int
	Kind  ontology.Kind
}

// Annotated reports whether the node carries an annotation reference.
func (n RawNode) Annotated() bool {
	return n.Name != nil
}

// RawPort is the metadata attached to one port of a raw box or to one
// boundary port of the raw diagram.
type RawPort struct {
	Meta  map[string]any
	Name  *string
	Index *int
	ID    *string
	Value *semantic.Literal
}

// Box is a raw diagram node: node metadata plus ordered port lists.
type Box struct {
	Node    RawNode
	Inputs  []RawPort
	Outputs []RawPort
}

// Diagram is the raw wiring diagram handed to enrichment. It reuses the
// wiring package's handle and wire representation; handles are assigned
// by the reader and are >= 1.
type Diagram struct {
	Inputs  []RawPort
	Outputs []RawPort
	Boxes   map[wiring.BoxID]*Box
	Order   []wiring.BoxID
	Wires   []wiring.Wire
}

// NewDiagram creates an empty raw diagram with the given boundary ports.
func NewDiagram(inputs, outputs []RawPort) *Diagram {
	return &Diagram{
		Inputs:  inputs,
		Outputs: outputs,
		Boxes:   make(map[wiring.BoxID]*Box),
	}
}

// AddBox appends a box under the next free handle and returns the handle.
func (d *Diagram) AddBox(b *Box) wiring.BoxID {
	id := wiring.BoxID(1)
	for _, existing := range d.Order {
		if existing >= id {
			id = existing + 1
		}
	}
	d.Boxes[id] = b
	d.Order = append(d.Order, id)
	return id
}

// AddWire appends a wire without validation; call Validate before use.
func (d *Diagram) AddWire(w wiring.Wire) {
	d.Wires = append(d.Wires, w)
}

// Validate checks the structural invariants the enrichment transform
// relies on: order and arena agree, handles are >= 1, and every wire
// endpoint references an existing port.
func (d *Diagram) Validate() error {
	if len(d.Order) != len(d.Boxes) {
		return fmt.Errorf("%w: order lists %d boxes, arena holds %d", ErrMalformedGraph, len(d.Order), len(d.Boxes))
	}
	for _, id := range d.Order {
		if id < 1 {
			return fmt.Errorf("%w: handle %d out of range", ErrMalformedGraph, id)
		}
		if _, ok := d.Boxes[id]; !ok {
			return fmt.Errorf("%w: handle %d missing from arena", ErrMalformedGraph, id)
		}
	}
	for _, w := range d.Wires {
		if err := d.checkEndpoint(w.Source, false); err != nil {
			return err
		}
		if err := d.checkEndpoint(w.Target, true); err != nil {
			return err
		}
	}
	return nil
}

func (d *Diagram) checkEndpoint(p wiring.PortRef, target bool) error {
	var ports int
	switch {
	case p.Box == wiring.DiagramInput:
		if target {
			return fmt.Errorf("%w: wire targets the input boundary", ErrMalformedGraph)
		}
		ports = len(d.Inputs)
	case p.Box == wiring.DiagramOutput:
		if !target {
			return fmt.Errorf("%w: wire sourced at the output boundary", ErrMalformedGraph)
		}
		ports = len(d.Outputs)
	default:
		b, ok := d.Boxes[p.Box]
		if !ok {
			return fmt.Errorf("%w: wire references missing %s", ErrMalformedGraph, p.Box)
		}
		if target {
			ports = len(b.Inputs)
		} else {
			ports = len(b.Outputs)
		}
	}
	if p.Port < 0 || p.Port >= ports {
		return fmt.Errorf("%w: wire references %s port %d (have %d)", ErrMalformedGraph, p.Box, p.Port, ports)
	}
	return nil
}
