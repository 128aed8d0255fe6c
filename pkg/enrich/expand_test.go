package enrich

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-semflow/pkg/flowgraph"
	"github.com/dd0wney/cluso-semflow/pkg/ontology"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

func TestExpandUnannotated(t *testing.T) {
	reg := testRegistry(t)
	exp, err := expandBox(untypedRawBox(2, 1), obElems("Number", "Number"), obElems("Number"), reg, reg, Options{})
	if err != nil {
		t.Fatalf("expandBox: %v", err)
	}
	if exp.kind != "atomic" || exp.nested != nil {
		t.Fatalf("expansion = %+v, want atomic", exp)
	}
	if exp.atomic.Annotated() {
		t.Error("atomic expansion of an unannotated box must stay unannotated")
	}
	if len(exp.atomic.Inputs) != 2 || len(exp.atomic.Outputs) != 1 {
		t.Errorf("ports = %d/%d, want 2/1", len(exp.atomic.Inputs), len(exp.atomic.Outputs))
	}
}

func TestExpandFunction(t *testing.T) {
	reg := testRegistry(t)
	box := callRawBox("double", 1, 1)

	exp, err := expandBox(box, obElems("Number"), obElems("Number"), reg, reg, Options{})
	if err != nil {
		t.Fatalf("expandBox: %v", err)
	}
	if exp.kind != ontology.LabelFunction || exp.nested == nil {
		t.Fatalf("expansion = %+v, want nested function", exp)
	}

	sub := exp.nested
	if len(sub.Inputs()) != 1 || len(sub.Outputs()) != 1 {
		t.Fatalf("sub boundary = %d/%d, want the box's own ports", len(sub.Inputs()), len(sub.Outputs()))
	}

	// The morphism interior is inlined: one Scale box, boundary-wired.
	id, scale := boxByValue(sub, "Scale")
	if scale == nil {
		t.Fatal("morphism interior box missing")
	}
	want := []wiring.Wire{
		{Source: wiring.PortRef{Box: wiring.DiagramInput, Port: 0}, Target: wiring.PortRef{Box: id, Port: 0}},
		{Source: wiring.PortRef{Box: id, Port: 0}, Target: wiring.PortRef{Box: wiring.DiagramOutput, Port: 0}},
	}
	got := sub.Wires()
	if len(got) != len(want) {
		t.Fatalf("sub wires = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sub wire %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpandFunctionPartialApplication(t *testing.T) {
	reg := testRegistry(t)
	box := callRawBox("double", 1, 1)
	box.Inputs[0].Index = nil // the argument is not wired through

	exp, err := expandBox(box, obElems("Number"), obElems("Number"), reg, reg, Options{})
	if err != nil {
		t.Fatalf("expandBox: %v", err)
	}
	for _, w := range exp.nested.Wires() {
		if w.Source.Box == wiring.DiagramInput {
			t.Errorf("indexless input port produced wire %v", w)
		}
	}
}

func TestExpandFunctionIndexOrigin(t *testing.T) {
	reg := testRegistry(t)

	// Origin-1 ontologies number ports from 1.
	box := callRawBox("double", 1, 1)
	box.Inputs[0].Index = intptr(1)
	box.Outputs[0].Index = intptr(1)
	if _, err := expandBox(box, obElems("Number"), obElems("Number"), reg, reg, Options{IndexOrigin: 1}); err != nil {
		t.Errorf("origin-1 expansion failed: %v", err)
	}

	// Index 0 underflows under origin 1.
	box = callRawBox("double", 1, 1)
	_, err := expandBox(box, obElems("Number"), obElems("Number"), reg, reg, Options{IndexOrigin: 1})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("underflow error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestExpandFunctionIndexOutOfRange(t *testing.T) {
	reg := testRegistry(t)

	box := callRawBox("double", 1, 1)
	box.Inputs[0].Index = intptr(5)
	_, err := expandBox(box, obElems("Number"), obElems("Number"), reg, reg, Options{})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("input index error = %v, want ErrIndexOutOfRange", err)
	}

	box = callRawBox("double", 1, 1)
	box.Outputs[0].Index = intptr(3)
	_, err = expandBox(box, obElems("Number"), obElems("Number"), reg, reg, Options{})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("output index error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestExpandFunctionKindMismatch(t *testing.T) {
	reg := testRegistry(t)
	box := &flowgraph.Box{
		Node: flowgraph.RawNode{Name: strptr("Number"), Kind: ontology.KindFunction},
	}
	_, err := expandBox(box, nil, nil, reg, reg, Options{})
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("error = %v, want ErrKindMismatch", err)
	}
}

func TestExpandConstruct(t *testing.T) {
	reg := testRegistry(t)
	box := &flowgraph.Box{
		Node:    flowgraph.RawNode{Name: strptr("Point"), Kind: ontology.KindConstruct},
		Inputs:  make([]flowgraph.RawPort, 2),
		Outputs: make([]flowgraph.RawPort, 1),
	}

	exp, err := expandBox(box, obElems("Number", "Number"), obElems("Point"), reg, reg, Options{})
	if err != nil {
		t.Fatalf("expandBox: %v", err)
	}
	if exp.kind != ontology.LabelConstruct || exp.nested == nil {
		t.Fatalf("expansion = %+v, want nested construct", exp)
	}
	if _, mp := boxByValue(exp.nested, "MakePoint"); mp == nil {
		t.Error("construction interior box missing")
	}

	// No constructor capability, no construct expansion.
	_, err = expandBox(box, obElems("Number", "Number"), obElems("Point"), reg, nil, Options{})
	if !errors.Is(err, ErrNoConstructor) {
		t.Errorf("nil constructor error = %v, want ErrNoConstructor", err)
	}

	// A morphism name under a Construct kind is a mismatch.
	bad := &flowgraph.Box{
		Node: flowgraph.RawNode{Name: strptr("double"), Kind: ontology.KindConstruct},
	}
	_, err = expandBox(bad, nil, nil, reg, reg, Options{})
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("error = %v, want ErrKindMismatch", err)
	}
}

func TestExpandSlot(t *testing.T) {
	reg := testRegistry(t)
	slotBox := func(index *int) *flowgraph.Box {
		return &flowgraph.Box{
			Node: flowgraph.RawNode{
				Name:  strptr("Point"),
				Index: index,
				Kind:  ontology.KindSlot,
			},
			Inputs:  make([]flowgraph.RawPort, 1),
			Outputs: make([]flowgraph.RawPort, 1),
		}
	}
	ins := obElems("Point")
	outs := obElems("Number")

	exp, err := expandBox(slotBox(intptr(1)), ins, outs, reg, reg, Options{})
	if err != nil {
		t.Fatalf("expandBox: %v", err)
	}
	if exp.kind != ontology.LabelSlot || exp.nested == nil {
		t.Fatalf("expansion = %+v, want nested slot", exp)
	}
	if _, y := boxByValue(exp.nested, "Y"); y == nil {
		t.Error("slot 1 of Point should select Y")
	}

	// Origin 1 shifts the slot numbering.
	exp, err = expandBox(slotBox(intptr(2)), ins, outs, reg, reg, Options{IndexOrigin: 1})
	if err != nil {
		t.Fatalf("expandBox origin 1: %v", err)
	}
	if _, y := boxByValue(exp.nested, "Y"); y == nil {
		t.Error("slot 2 under origin 1 should select Y")
	}

	if _, err := expandBox(slotBox(nil), ins, outs, reg, reg, Options{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("missing index error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := expandBox(slotBox(intptr(2)), ins, outs, reg, reg, Options{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("out-of-range index error = %v, want ErrIndexOutOfRange", err)
	}

	bad := &flowgraph.Box{
		Node: flowgraph.RawNode{Name: strptr("double"), Index: intptr(0), Kind: ontology.KindSlot},
	}
	if _, err := expandBox(bad, nil, nil, reg, reg, Options{}); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("morphism under Slot kind error = %v, want ErrKindMismatch", err)
	}
}

func TestExpandUnknownKind(t *testing.T) {
	reg := testRegistry(t)
	box := &flowgraph.Box{
		Node: flowgraph.RawNode{Name: strptr("Point"), Kind: ontology.Kind(9)},
	}
	_, err := expandBox(box, nil, nil, reg, reg, Options{})
	if !errors.Is(err, ontology.ErrUnknownKind) {
		t.Errorf("error = %v, want ErrUnknownKind", err)
	}
}
