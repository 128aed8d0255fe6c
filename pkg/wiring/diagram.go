package wiring

import (
	"github.com/dd0wney/cluso-semflow/pkg/semantic"
)

// Diagram is a wiring diagram under construction or handed over as a
// finished result. Boxes live in an arena keyed by handle; the insertion
// order is tracked separately so traversal stays deterministic.
type Diagram struct {
	inputs  []*semantic.Elem
	outputs []*semantic.Elem
	boxes   map[BoxID]*Box
	order   []BoxID
	next    BoxID
	wires   []Wire
}

// New creates an empty diagram with the given boundary port types.
func New(inputs, outputs []*semantic.Elem) *Diagram {
	return &Diagram{
		inputs:  append([]*semantic.Elem(nil), inputs...),
		outputs: append([]*semantic.Elem(nil), outputs...),
		boxes:   make(map[BoxID]*Box),
		next:    1,
	}
}

// Inputs returns the boundary input port types. Callers must not mutate.
func (d *Diagram) Inputs() []*semantic.Elem { return d.inputs }

// Outputs returns the boundary output port types. Callers must not mutate.
func (d *Diagram) Outputs() []*semantic.Elem { return d.outputs }

// AddBox inserts a box under a fresh handle and returns it.
func (d *Diagram) AddBox(b *Box) BoxID {
	id := d.next
	d.next++
	d.boxes[id] = b
	d.order = append(d.order, id)
	return id
}

// AddBoxWithID inserts a box under a caller-chosen handle. This is how
// assembly preserves raw handles so wires can be copied verbatim.
func (d *Diagram) AddBoxWithID(id BoxID, b *Box) error {
	if id < 1 {
		return opError("AddBoxWithID", id, -1, ErrInvalidHandle)
	}
	if _, exists := d.boxes[id]; exists {
		return opError("AddBoxWithID", id, -1, ErrDuplicateBox)
	}
	d.boxes[id] = b
	d.order = append(d.order, id)
	if id >= d.next {
		d.next = id + 1
	}
	return nil
}

// Box returns the box under the given handle.
func (d *Diagram) Box(id BoxID) (*Box, bool) {
	b, ok := d.boxes[id]
	return b, ok
}

// BoxIDs returns all box handles in insertion order.
func (d *Diagram) BoxIDs() []BoxID {
	return append([]BoxID(nil), d.order...)
}

// BoxCount returns the number of boxes in the diagram.
func (d *Diagram) BoxCount() int { return len(d.boxes) }

// AddWire appends a wire after checking that both endpoints exist at the
// time of insertion. Sources must be output-side ports (a box output or
// the input boundary); targets must be input-side ports.
func (d *Diagram) AddWire(w Wire) error {
	if err := d.checkSource(w.Source); err != nil {
		return err
	}
	if err := d.checkTarget(w.Target); err != nil {
		return err
	}
	d.wires = append(d.wires, w)
	return nil
}

func (d *Diagram) checkSource(p PortRef) error {
	switch {
	case p.Box == DiagramInput:
		if p.Port < 0 || p.Port >= len(d.inputs) {
			return opError("AddWire", p.Box, p.Port, ErrInvalidWire)
		}
	case p.Box == DiagramOutput:
		return opError("AddWire", p.Box, p.Port, ErrInvalidWire)
	default:
		b, ok := d.boxes[p.Box]
		if !ok {
			return opError("AddWire", p.Box, p.Port, ErrBoxNotFound)
		}
		if p.Port < 0 || p.Port >= len(b.Outputs) {
			return opError("AddWire", p.Box, p.Port, ErrInvalidWire)
		}
	}
	return nil
}

func (d *Diagram) checkTarget(p PortRef) error {
	switch {
	case p.Box == DiagramOutput:
		if p.Port < 0 || p.Port >= len(d.outputs) {
			return opError("AddWire", p.Box, p.Port, ErrInvalidWire)
		}
	case p.Box == DiagramInput:
		return opError("AddWire", p.Box, p.Port, ErrInvalidWire)
	default:
		b, ok := d.boxes[p.Box]
		if !ok {
			return opError("AddWire", p.Box, p.Port, ErrBoxNotFound)
		}
		if p.Port < 0 || p.Port >= len(b.Inputs) {
			return opError("AddWire", p.Box, p.Port, ErrInvalidWire)
		}
	}
	return nil
}

// Wires returns a copy of the wire list.
func (d *Diagram) Wires() []Wire {
	return append([]Wire(nil), d.wires...)
}

// RemoveWire removes the first wire equal to w and reports whether one
// was removed.
func (d *Diagram) RemoveWire(w Wire) bool {
	for i, existing := range d.wires {
		if existing == w {
			d.wires = append(d.wires[:i], d.wires[i+1:]...)
			return true
		}
	}
	return false
}

// removeBoxes retires the given handles and compacts the order slice in
// one pass. Retired handles are never reused for different content; a
// later AddBox always allocates past them.
func (d *Diagram) removeBoxes(ids map[BoxID]bool) {
	for id := range ids {
		delete(d.boxes, id)
	}
	kept := d.order[:0]
	for _, id := range d.order {
		if !ids[id] {
			kept = append(kept, id)
		}
	}
	d.order = kept
}

// Clone returns a deep copy of the diagram.
func (d *Diagram) Clone() *Diagram {
	out := &Diagram{
		inputs:  cloneElems(d.inputs),
		outputs: cloneElems(d.outputs),
		boxes:   make(map[BoxID]*Box, len(d.boxes)),
		order:   append([]BoxID(nil), d.order...),
		next:    d.next,
		wires:   append([]Wire(nil), d.wires...),
	}
	for id, b := range d.boxes {
		out.boxes[id] = b.Clone()
	}
	return out
}

// Equal reports structural equality: same boundary types, same boxes
// under the same handles in the same order, same wires in the same order.
func (d *Diagram) Equal(other *Diagram) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !elemsEqual(d.inputs, other.inputs) || !elemsEqual(d.outputs, other.outputs) {
		return false
	}
	if len(d.order) != len(other.order) {
		return false
	}
	for i, id := range d.order {
		if other.order[i] != id {
			return false
		}
		if !d.boxes[id].Equal(other.boxes[id]) {
			return false
		}
	}
	if len(d.wires) != len(other.wires) {
		return false
	}
	for i := range d.wires {
		if d.wires[i] != other.wires[i] {
			return false
		}
	}
	return true
}

// Singleton builds the canonical single-box diagram for b: boundary ports
// equal to the box's own ports, with position-to-position pass-through
// wires on both sides.
func Singleton(b *Box) *Diagram {
	d := New(b.Inputs, b.Outputs)
	v := d.AddBox(b)
	for i := range b.Inputs {
		d.wires = append(d.wires, Wire{
			Source: PortRef{Box: DiagramInput, Port: i},
			Target: PortRef{Box: v, Port: i},
		})
	}
	for j := range b.Outputs {
		d.wires = append(d.wires, Wire{
			Source: PortRef{Box: v, Port: j},
			Target: PortRef{Box: DiagramOutput, Port: j},
		})
	}
	return d
}
