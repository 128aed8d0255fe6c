package wiring

import (
	"github.com/dd0wney/cluso-semflow/pkg/semantic"
)

// Encapsulate replaces a set of boxes with one new unannotated box whose
// nested diagram contains the members and their internal wires. The new
// box's ports are exactly the member ports with wires crossing the
// selection boundary, ordered by (member position, port index); crossing
// wires are rewired to those ports. This is the inverse of Substitute.
func (d *Diagram) Encapsulate(ids []BoxID) (BoxID, error) {
	if len(ids) == 0 {
		return 0, opError("Encapsulate", 0, -1, ErrEmptySelection)
	}
	member := make(map[BoxID]bool, len(ids))
	for _, id := range ids {
		if _, ok := d.boxes[id]; !ok {
			return 0, opError("Encapsulate", id, -1, ErrBoxNotFound)
		}
		member[id] = true
	}

	// Member handles in arena order for a deterministic boundary layout.
	members := make([]BoxID, 0, len(member))
	for _, id := range d.order {
		if member[id] {
			members = append(members, id)
		}
	}

	var internal, crossIn, crossOut, kept []Wire
	for _, w := range d.wires {
		srcIn := member[w.Source.Box]
		dstIn := member[w.Target.Box]
		switch {
		case srcIn && dstIn:
			internal = append(internal, w)
		case dstIn:
			crossIn = append(crossIn, w)
		case srcIn:
			crossOut = append(crossOut, w)
		default:
			kept = append(kept, w)
		}
	}

	inPorts := crossingPorts(members, crossIn, func(w Wire) PortRef { return w.Target })
	outPorts := crossingPorts(members, crossOut, func(w Wire) PortRef { return w.Source })

	inputTypes := d.portTypes(inPorts, true)
	outputTypes := d.portTypes(outPorts, false)

	nested := New(inputTypes, outputTypes)
	handle := make(map[BoxID]BoxID, len(members))
	for _, m := range members {
		handle[m] = nested.AddBox(d.boxes[m])
	}
	for _, w := range internal {
		nested.wires = append(nested.wires, Wire{
			Source: PortRef{Box: handle[w.Source.Box], Port: w.Source.Port},
			Target: PortRef{Box: handle[w.Target.Box], Port: w.Target.Port},
		})
	}
	for i, pr := range inPorts {
		nested.wires = append(nested.wires, Wire{
			Source: PortRef{Box: DiagramInput, Port: i},
			Target: PortRef{Box: handle[pr.Box], Port: pr.Port},
		})
	}
	for j, pr := range outPorts {
		nested.wires = append(nested.wires, Wire{
			Source: PortRef{Box: handle[pr.Box], Port: pr.Port},
			Target: PortRef{Box: DiagramOutput, Port: j},
		})
	}

	newID := d.AddBox(&Box{
		Inputs:  inputTypes,
		Outputs: outputTypes,
		Nested:  nested,
	})

	inIndex := portIndex(inPorts)
	outIndex := portIndex(outPorts)
	d.wires = kept
	for _, w := range crossIn {
		d.wires = append(d.wires, Wire{
			Source: w.Source,
			Target: PortRef{Box: newID, Port: inIndex[w.Target]},
		})
	}
	for _, w := range crossOut {
		d.wires = append(d.wires, Wire{
			Source: PortRef{Box: newID, Port: outIndex[w.Source]},
			Target: w.Target,
		})
	}

	d.removeBoxes(member)
	return newID, nil
}

// crossingPorts collects the distinct member ports touched by crossing
// wires, ordered by member position then port index.
func crossingPorts(members []BoxID, wires []Wire, end func(Wire) PortRef) []PortRef {
	seen := make(map[PortRef]bool, len(wires))
	for _, w := range wires {
		seen[end(w)] = true
	}
	var ports []PortRef
	for _, m := range members {
		var max int
		for pr := range seen {
			if pr.Box == m && pr.Port+1 > max {
				max = pr.Port + 1
			}
		}
		for p := 0; p < max; p++ {
			if seen[PortRef{Box: m, Port: p}] {
				ports = append(ports, PortRef{Box: m, Port: p})
			}
		}
	}
	return ports
}

// portTypes resolves the element types behind a list of member ports.
func (d *Diagram) portTypes(ports []PortRef, input bool) []*semantic.Elem {
	types := make([]*semantic.Elem, len(ports))
	for i, pr := range ports {
		b := d.boxes[pr.Box]
		if input {
			types[i] = b.Inputs[pr.Port]
		} else {
			types[i] = b.Outputs[pr.Port]
		}
	}
	return types
}

func portIndex(ports []PortRef) map[PortRef]int {
	idx := make(map[PortRef]int, len(ports))
	for i, pr := range ports {
		idx[pr] = i
	}
	return idx
}
