package wiring

// DanglingWires returns the wires that Substitute(id) would be unable to
// rewire: wires touching a port of the box that has no counterpart on the
// nested diagram's boundary. Callers that choose a drop policy remove
// these before substituting; otherwise Substitute fails on the first one.
func (d *Diagram) DanglingWires(id BoxID) []Wire {
	b, ok := d.boxes[id]
	if !ok || b.Nested == nil {
		return nil
	}
	n := b.Nested
	var dangling []Wire
	for _, w := range d.wires {
		if w.Target.Box == id && w.Target.Port >= len(n.inputs) {
			dangling = append(dangling, w)
		}
		if w.Source.Box == id && w.Source.Port >= len(n.outputs) {
			dangling = append(dangling, w)
		}
	}
	return dangling
}

// Substitute inlines the nested diagram of the given box: the box is
// removed, the nested diagram's boxes are inserted under fresh handles,
// its internal wires are copied, and every outer wire that touched the
// box is rewired through the nested diagram's boundary. Outer wires into
// a boundary port that is unwired inside the nested diagram are dropped;
// that is the partial-argument case, not an error. Outer wires into a
// port the nested boundary does not have at all fail with ErrDanglingWire.
func (d *Diagram) Substitute(id BoxID) error {
	b, ok := d.boxes[id]
	if !ok {
		return opError("Substitute", id, -1, ErrBoxNotFound)
	}
	n := b.Nested
	if n == nil {
		return opError("Substitute", id, -1, ErrNotNested)
	}

	// Partition outer wires before mutating anything.
	kept := make([]Wire, 0, len(d.wires))
	inbound := make(map[int][]PortRef)  // box input port -> outer sources
	outbound := make(map[int][]PortRef) // box output port -> outer targets
	for _, w := range d.wires {
		switch {
		case w.Target.Box == id:
			inbound[w.Target.Port] = append(inbound[w.Target.Port], w.Source)
		case w.Source.Box == id:
			outbound[w.Source.Port] = append(outbound[w.Source.Port], w.Target)
		default:
			kept = append(kept, w)
		}
	}
	for p := range inbound {
		if p >= len(n.inputs) {
			return opError("Substitute", id, p, ErrDanglingWire)
		}
	}
	for p := range outbound {
		if p >= len(n.outputs) {
			return opError("Substitute", id, p, ErrDanglingWire)
		}
	}

	// Inline the nested boxes under fresh handles.
	handle := make(map[BoxID]BoxID, len(n.order))
	for _, nid := range n.order {
		handle[nid] = d.AddBox(n.boxes[nid].Clone())
	}

	d.wires = kept
	for _, nw := range n.wires {
		fromBoundary := nw.Source.Box == DiagramInput
		toBoundary := nw.Target.Box == DiagramOutput
		switch {
		case fromBoundary && toBoundary:
			// Pass-through: compose outer-in with outer-out.
			for _, src := range inbound[nw.Source.Port] {
				for _, dst := range outbound[nw.Target.Port] {
					d.wires = append(d.wires, Wire{Source: src, Target: dst})
				}
			}
		case fromBoundary:
			target := PortRef{Box: handle[nw.Target.Box], Port: nw.Target.Port}
			for _, src := range inbound[nw.Source.Port] {
				d.wires = append(d.wires, Wire{Source: src, Target: target})
			}
		case toBoundary:
			source := PortRef{Box: handle[nw.Source.Box], Port: nw.Source.Port}
			for _, dst := range outbound[nw.Target.Port] {
				d.wires = append(d.wires, Wire{Source: source, Target: dst})
			}
		default:
			d.wires = append(d.wires, Wire{
				Source: PortRef{Box: handle[nw.Source.Box], Port: nw.Source.Port},
				Target: PortRef{Box: handle[nw.Target.Box], Port: nw.Target.Port},
			})
		}
	}

	d.removeBoxes(map[BoxID]bool{id: true})
	return nil
}
