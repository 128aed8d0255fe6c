// Package wiring implements the wiring-diagram model shared by the
// enrichment pipeline: an arena of boxes addressed by stable integer
// handles, a wire list of (handle, port-index) endpoint pairs, and the
// substitution/encapsulation operations that inline and extract nested
// sub-diagrams.
package wiring

import (
	"fmt"

	"github.com/dd0wney/cluso-semflow/pkg/semantic"
)

// BoxID is a stable integer handle addressing a box in a diagram.
// Handles for real boxes are >= 1; the two negative values below are
// reserved for the diagram's own boundary.
type BoxID int

const (
	// DiagramInput is the sentinel handle for the diagram's input boundary.
	DiagramInput BoxID = -1
	// DiagramOutput is the sentinel handle for the diagram's output boundary.
	DiagramOutput BoxID = -2
)

// IsBoundary reports whether the handle is one of the boundary sentinels.
func (id BoxID) IsBoundary() bool {
	return id == DiagramInput || id == DiagramOutput
}

func (id BoxID) String() string {
	switch id {
	case DiagramInput:
		return "input"
	case DiagramOutput:
		return "output"
	default:
		return fmt.Sprintf("box %d", int(id))
	}
}

// PortRef addresses one port of one box (or of the boundary sentinels).
type PortRef struct {
	Box  BoxID
	Port int
}

// Wire is a directed edge between two ports.
type Wire struct {
	Source PortRef
	Target PortRef
}

// Box is a diagram node. Its payload is a closed variant:
//   - Value == nil, Nested == nil: an opaque pass-through (unannotated) box
//   - Value != nil: an atomic semantic box typed by Value
//   - Nested != nil: a box containing a nested diagram, either awaiting
//     substitution or produced by encapsulation
//
// Value and Nested are never both set.
type Box struct {
	Inputs  []*semantic.Elem
	Outputs []*semantic.Elem
	Value   *semantic.Elem
	Nested  *Diagram
}

// Annotated reports whether the box carries a semantic payload.
func (b *Box) Annotated() bool {
	return b.Value != nil
}

// Clone returns a deep copy of the box, including any nested diagram.
func (b *Box) Clone() *Box {
	nb := &Box{
		Inputs:  cloneElems(b.Inputs),
		Outputs: cloneElems(b.Outputs),
		Value:   b.Value.Clone(),
	}
	if b.Nested != nil {
		nb.Nested = b.Nested.Clone()
	}
	return nb
}

// Equal reports structural equality of two boxes.
func (b *Box) Equal(other *Box) bool {
	if b == nil || other == nil {
		return b == other
	}
	if !elemsEqual(b.Inputs, other.Inputs) || !elemsEqual(b.Outputs, other.Outputs) {
		return false
	}
	if !b.Value.Equal(other.Value) {
		return false
	}
	if (b.Nested == nil) != (other.Nested == nil) {
		return false
	}
	if b.Nested != nil && !b.Nested.Equal(other.Nested) {
		return false
	}
	return true
}

func cloneElems(elems []*semantic.Elem) []*semantic.Elem {
	if elems == nil {
		return nil
	}
	out := make([]*semantic.Elem, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return out
}

func elemsEqual(a, b []*semantic.Elem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
