package enrich

import (
	"github.com/dd0wney/cluso-semflow/pkg/logging"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

// collapse merges maximal runs of unannotated boxes into single
// encapsulated boxes, preserving every ordering relationship among
// annotated boxes. It is a presentation-level simplification only and is
// idempotent: running it on its own output performs no further merges.
// Returns the number of boxes merged away.
func collapse(d *wiring.Diagram, log logging.Logger) (int, error) {
	reach := d.Reachability()
	ids := d.BoxIDs()

	annotated := func(id wiring.BoxID) bool {
		b, _ := d.Box(id)
		return b.Annotated()
	}

	// Union candidate merge edges: a direct wire parent->child between
	// two unannotated boxes, provided the merge cannot create or imply
	// new ordering between annotated boxes.
	uf := newUnionFind(ids)
	seen := make(map[[2]wiring.BoxID]bool)
	for _, w := range d.Wires() {
		parent, child := w.Source.Box, w.Target.Box
		if parent.IsBoundary() || child.IsBoundary() || parent == child {
			continue
		}
		edge := [2]wiring.BoxID{parent, child}
		if seen[edge] {
			continue
		}
		seen[edge] = true
		if annotated(parent) || annotated(child) {
			continue
		}
		if !mergeSafe(reach, ids, annotated, parent, child) {
			continue
		}
		uf.union(parent, child)
	}

	// Connected components of the merge graph, in arena order.
	componentOf := make(map[wiring.BoxID][]wiring.BoxID)
	var roots []wiring.BoxID
	for _, id := range ids {
		root := uf.find(id)
		if len(componentOf[root]) == 0 {
			roots = append(roots, root)
		}
		componentOf[root] = append(componentOf[root], id)
	}

	merged := 0
	for _, root := range roots {
		comp := componentOf[root]
		if len(comp) < 2 {
			continue
		}
		if _, err := d.Encapsulate(comp); err != nil {
			return merged, phaseError("Collapse", root, -1, "", err)
		}
		merged += len(comp) - 1
		log.Debug("merged unannotated run",
			logging.Phase("collapse"),
			logging.Int("boxes", len(comp)),
		)
	}

	// A lone unannotated box with no merge edge still gets its ports
	// simplified, but only when some port has no crossing wire; anything
	// already minimal is left untouched so the pass stays idempotent.
	for _, root := range roots {
		comp := componentOf[root]
		if len(comp) != 1 || annotated(comp[0]) {
			continue
		}
		if hasUnwiredPort(d, comp[0]) {
			if _, err := d.Encapsulate(comp); err != nil {
				return merged, phaseError("Collapse", comp[0], -1, "", err)
			}
		}
	}
	return merged, nil
}

// mergeSafe checks the ordering guard for the candidate edge
// parent->child: every annotated box that reaches the child must already
// reach every annotated box reachable from the parent. The merged box
// unions both endpoints' predecessor and successor sets, so these are
// exactly the pairs a merge could newly order.
func mergeSafe(reach wiring.Reach, ids []wiring.BoxID, annotated func(wiring.BoxID) bool, parent, child wiring.BoxID) bool {
	for _, u := range ids {
		if !annotated(u) || !reach.Reaches(u, child) {
			continue
		}
		for _, v := range ids {
			if !annotated(v) || !reach.Reaches(parent, v) {
				continue
			}
			if !reach.Reaches(u, v) {
				return false
			}
		}
	}
	return true
}

func hasUnwiredPort(d *wiring.Diagram, id wiring.BoxID) bool {
	b, _ := d.Box(id)
	wiredIn := make(map[int]bool)
	wiredOut := make(map[int]bool)
	for _, w := range d.Wires() {
		if w.Target.Box == id {
			wiredIn[w.Target.Port] = true
		}
		if w.Source.Box == id {
			wiredOut[w.Source.Port] = true
		}
	}
	return len(wiredIn) < len(b.Inputs) || len(wiredOut) < len(b.Outputs)
}

// unionFind is a plain union-find over box handles.
type unionFind struct {
	parent map[wiring.BoxID]wiring.BoxID
}

func newUnionFind(ids []wiring.BoxID) *unionFind {
	parent := make(map[wiring.BoxID]wiring.BoxID, len(ids))
	for _, id := range ids {
		parent[id] = id
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(id wiring.BoxID) wiring.BoxID {
	for u.parent[id] != id {
		u.parent[id] = u.parent[u.parent[id]]
		id = u.parent[id]
	}
	return id
}

func (u *unionFind) union(a, b wiring.BoxID) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}
