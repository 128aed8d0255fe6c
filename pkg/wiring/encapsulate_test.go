package wiring

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-semflow/pkg/semantic"
)

// chain builds input -> a -> b -> c -> output over single untyped ports.
func chain(t *testing.T) (*Diagram, BoxID, BoxID, BoxID) {
	t.Helper()
	d := New(typedElems("In"), typedElems("Out"))
	a := d.AddBox(passBox(1, 1))
	b := d.AddBox(passBox(1, 1))
	c := d.AddBox(passBox(1, 1))
	mustWire(t, d, DiagramInput, 0, a, 0)
	mustWire(t, d, a, 0, b, 0)
	mustWire(t, d, b, 0, c, 0)
	mustWire(t, d, c, 0, DiagramOutput, 0)
	return d, a, b, c
}

func TestEncapsulateRun(t *testing.T) {
	d, a, b, c := chain(t)
	id, err := d.Encapsulate([]BoxID{a, b})
	if err != nil {
		t.Fatalf("Encapsulate: %v", err)
	}

	if d.BoxCount() != 2 {
		t.Fatalf("box count = %d, want 2", d.BoxCount())
	}
	if _, ok := d.Box(a); ok {
		t.Error("member a should be gone from the outer diagram")
	}

	nb, ok := d.Box(id)
	if !ok || nb.Nested == nil {
		t.Fatal("new box should exist and be nested")
	}
	if nb.Annotated() {
		t.Error("encapsulation result must be unannotated")
	}
	if len(nb.Inputs) != 1 || len(nb.Outputs) != 1 {
		t.Errorf("new box ports = %d in, %d out; want 1 and 1", len(nb.Inputs), len(nb.Outputs))
	}
	if nb.Nested.BoxCount() != 2 {
		t.Errorf("nested box count = %d, want 2", nb.Nested.BoxCount())
	}

	// One internal wire, one boundary wire per crossing port.
	if got := len(nb.Nested.Wires()); got != 3 {
		t.Errorf("nested wire count = %d, want 3", got)
	}

	want := []Wire{
		{Source: PortRef{Box: c, Port: 0}, Target: PortRef{Box: DiagramOutput, Port: 0}},
		{Source: PortRef{Box: DiagramInput, Port: 0}, Target: PortRef{Box: id, Port: 0}},
		{Source: PortRef{Box: id, Port: 0}, Target: PortRef{Box: c, Port: 0}},
	}
	got := d.Wires()
	if len(got) != len(want) {
		t.Fatalf("outer wires = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outer wire %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEncapsulateThenSubstituteRestoresShape(t *testing.T) {
	d, a, b, _ := chain(t)
	id, err := d.Encapsulate([]BoxID{a, b})
	if err != nil {
		t.Fatalf("Encapsulate: %v", err)
	}
	if err := d.Substitute(id); err != nil {
		t.Fatalf("Substitute: %v", err)
	}

	// Handles move, structure does not.
	if d.BoxCount() != 3 {
		t.Errorf("box count = %d, want 3", d.BoxCount())
	}
	if got := len(d.Wires()); got != 4 {
		t.Errorf("wire count = %d, want 4", got)
	}
	reach := d.Reachability()
	ids := d.BoxIDs()
	chained := 0
	for _, u := range ids {
		for _, v := range ids {
			if u != v && reach.Reaches(u, v) {
				chained++
			}
		}
	}
	if chained != 3 {
		t.Errorf("ordered pairs = %d, want 3 (a<b, a<c, b<c)", chained)
	}
}

func TestEncapsulatePortOrdering(t *testing.T) {
	// Two members, each with two crossing input ports; boundary ports must
	// come out ordered by member position then port index.
	d := New(typedElems("P0", "P1", "P2", "P3"), nil)
	a := d.AddBox(&Box{Inputs: typedElems("A0", "A1")})
	b := d.AddBox(&Box{Inputs: typedElems("B0", "B1")})
	mustWire(t, d, DiagramInput, 3, b, 1)
	mustWire(t, d, DiagramInput, 2, a, 1)
	mustWire(t, d, DiagramInput, 1, b, 0)
	mustWire(t, d, DiagramInput, 0, a, 0)

	id, err := d.Encapsulate([]BoxID{a, b})
	if err != nil {
		t.Fatalf("Encapsulate: %v", err)
	}
	nb, _ := d.Box(id)

	wantNames := []string{"A0", "A1", "B0", "B1"}
	if len(nb.Inputs) != len(wantNames) {
		t.Fatalf("input ports = %d, want %d", len(nb.Inputs), len(wantNames))
	}
	for i, want := range wantNames {
		if nb.Inputs[i] == nil || nb.Inputs[i].Ob.Name != want {
			t.Errorf("input port %d = %v, want %s", i, nb.Inputs[i], want)
		}
	}

	// Crossing wires land on the ports in that same order.
	wantOuter := map[int]int{0: 0, 1: 2, 2: 1, 3: 3} // boundary port -> new box port
	for _, w := range d.Wires() {
		if w.Target.Box != id {
			t.Fatalf("unexpected wire %v", w)
		}
		if want := wantOuter[w.Source.Port]; w.Target.Port != want {
			t.Errorf("boundary %d wired to port %d, want %d", w.Source.Port, w.Target.Port, want)
		}
	}
}

func TestEncapsulateKeepsUnrelatedWires(t *testing.T) {
	d := New(typedElems("In"), typedElems("Out"))
	a := d.AddBox(passBox(1, 1))
	other := d.AddBox(passBox(1, 1))
	mustWire(t, d, DiagramInput, 0, other, 0)
	mustWire(t, d, other, 0, DiagramOutput, 0)
	mustWire(t, d, a, 0, a, 0)

	if _, err := d.Encapsulate([]BoxID{a}); err != nil {
		t.Fatalf("Encapsulate: %v", err)
	}
	found := 0
	for _, w := range d.Wires() {
		if w.Source.Box == other || w.Target.Box == other {
			found++
		}
	}
	if found != 2 {
		t.Errorf("unrelated wires surviving = %d, want 2", found)
	}
}

func TestEncapsulateSelfLoopIsInternal(t *testing.T) {
	d := New(nil, nil)
	a := d.AddBox(passBox(1, 1))
	mustWire(t, d, a, 0, a, 0)

	id, err := d.Encapsulate([]BoxID{a})
	if err != nil {
		t.Fatalf("Encapsulate: %v", err)
	}
	nb, _ := d.Box(id)
	if len(nb.Inputs) != 0 || len(nb.Outputs) != 0 {
		t.Errorf("self-loop member should produce no boundary ports, got %d/%d", len(nb.Inputs), len(nb.Outputs))
	}
	if got := len(nb.Nested.Wires()); got != 1 {
		t.Errorf("nested wire count = %d, want 1", got)
	}
	if got := len(d.Wires()); got != 0 {
		t.Errorf("outer wire count = %d, want 0", got)
	}
}

func TestEncapsulateErrors(t *testing.T) {
	d := New(nil, nil)
	a := d.AddBox(passBox(0, 0))

	if _, err := d.Encapsulate(nil); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("empty selection error = %v, want ErrEmptySelection", err)
	}
	if _, err := d.Encapsulate([]BoxID{a, 42}); !errors.Is(err, ErrBoxNotFound) {
		t.Errorf("missing member error = %v, want ErrBoxNotFound", err)
	}
}

func TestEncapsulatePreservesPayloads(t *testing.T) {
	d := New(typedElems("In"), typedElems("Out"))
	a := d.AddBox(&Box{
		Inputs:  typedElems("In"),
		Outputs: typedElems("Out"),
		Value:   semantic.NewElem(semantic.Object{Name: "F"}),
	})
	mustWire(t, d, DiagramInput, 0, a, 0)
	mustWire(t, d, a, 0, DiagramOutput, 0)

	id, err := d.Encapsulate([]BoxID{a})
	if err != nil {
		t.Fatalf("Encapsulate: %v", err)
	}
	nb, _ := d.Box(id)
	inner, _ := nb.Nested.Box(nb.Nested.BoxIDs()[0])
	if inner.Value == nil || inner.Value.Ob.Name != "F" {
		t.Errorf("member payload = %v, want F", inner.Value)
	}
}
