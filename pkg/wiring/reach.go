package wiring

// Reach is the transitive-closure reachability relation over the box
// graph, excluding the boundary sentinels.
type Reach map[BoxID]map[BoxID]bool

// Reaches reports whether u reaches v through one or more wires.
func (r Reach) Reaches(u, v BoxID) bool {
	return r[u][v]
}

// Reachability computes the transitive closure of the box-to-box wire
// relation via a depth-first walk from each box. Wires touching the
// boundary sentinels do not contribute.
func (d *Diagram) Reachability() Reach {
	succ := make(map[BoxID][]BoxID, len(d.boxes))
	for _, w := range d.wires {
		if w.Source.Box.IsBoundary() || w.Target.Box.IsBoundary() {
			continue
		}
		succ[w.Source.Box] = append(succ[w.Source.Box], w.Target.Box)
	}

	reach := make(Reach, len(d.boxes))
	for _, id := range d.order {
		visited := make(map[BoxID]bool)
		stack := append([]BoxID(nil), succ[id]...)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[v] {
				continue
			}
			visited[v] = true
			stack = append(stack, succ[v]...)
		}
		reach[id] = visited
	}
	return reach
}
