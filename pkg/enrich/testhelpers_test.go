package enrich

import (
	"testing"

	"github.com/dd0wney/cluso-semflow/pkg/flowgraph"
	"github.com/dd0wney/cluso-semflow/pkg/ontology"
	"github.com/dd0wney/cluso-semflow/pkg/semantic"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

// testRegistry builds the fixture ontology used across the package:
//
//	objects   Number; Point with slots X, Y
//	morphism  double: Number -> Number through one Scale box
//	construct Point from two Numbers through one MakePoint box
func testRegistry(t *testing.T) *ontology.Registry {
	t.Helper()
	reg := ontology.NewRegistry()
	reg.RegisterOb("Number", semantic.Object{Name: "Number"})
	reg.RegisterOb("Point", semantic.Object{Name: "Point"},
		semantic.Object{Name: "X"}, semantic.Object{Name: "Y"})

	double := wiring.New(obElems("Number"), obElems("Number"))
	scale := double.AddBox(&wiring.Box{
		Inputs:  obElems("Number"),
		Outputs: obElems("Number"),
		Value:   semantic.NewElem(semantic.Object{Name: "Scale"}),
	})
	wireOrDie(t, double, wiring.DiagramInput, 0, scale, 0)
	wireOrDie(t, double, scale, 0, wiring.DiagramOutput, 0)
	reg.RegisterHom("double", double)

	makePoint := wiring.New(obElems("Number", "Number"), obElems("Point"))
	mp := makePoint.AddBox(&wiring.Box{
		Inputs:  obElems("Number", "Number"),
		Outputs: obElems("Point"),
		Value:   semantic.NewElem(semantic.Object{Name: "MakePoint"}),
	})
	wireOrDie(t, makePoint, wiring.DiagramInput, 0, mp, 0)
	wireOrDie(t, makePoint, wiring.DiagramInput, 1, mp, 1)
	wireOrDie(t, makePoint, mp, 0, wiring.DiagramOutput, 0)
	reg.RegisterConstruction(semantic.Object{Name: "Point"}, makePoint)
	return reg
}

func obElems(names ...string) []*semantic.Elem {
	elems := make([]*semantic.Elem, len(names))
	for i, n := range names {
		elems[i] = semantic.NewElem(semantic.Object{Name: n})
	}
	return elems
}

func wireOrDie(t *testing.T, d *wiring.Diagram, src wiring.BoxID, srcPort int, dst wiring.BoxID, dstPort int) {
	t.Helper()
	err := d.AddWire(wiring.Wire{
		Source: wiring.PortRef{Box: src, Port: srcPort},
		Target: wiring.PortRef{Box: dst, Port: dstPort},
	})
	if err != nil {
		t.Fatalf("AddWire: %v", err)
	}
}

func rawWire(d *flowgraph.Diagram, src wiring.BoxID, srcPort int, dst wiring.BoxID, dstPort int) {
	d.AddWire(wiring.Wire{
		Source: wiring.PortRef{Box: src, Port: srcPort},
		Target: wiring.PortRef{Box: dst, Port: dstPort},
	})
}

// untypedRawBox builds an unannotated raw box with the given port counts.
func untypedRawBox(ins, outs int) *flowgraph.Box {
	return &flowgraph.Box{
		Inputs:  make([]flowgraph.RawPort, ins),
		Outputs: make([]flowgraph.RawPort, outs),
	}
}

// callRawBox builds a Function-annotated raw box whose ports are typed
// Number and indexed 0..n-1.
func callRawBox(name string, ins, outs int) *flowgraph.Box {
	b := &flowgraph.Box{
		Node: flowgraph.RawNode{Name: strptr(name), Kind: ontology.KindFunction},
	}
	for i := 0; i < ins; i++ {
		b.Inputs = append(b.Inputs, flowgraph.RawPort{Name: strptr("Number"), Index: intptr(i)})
	}
	for i := 0; i < outs; i++ {
		b.Outputs = append(b.Outputs, flowgraph.RawPort{Name: strptr("Number"), Index: intptr(i)})
	}
	return b
}

// boxByValue finds the first box annotated with the given object name.
func boxByValue(d *wiring.Diagram, name string) (wiring.BoxID, *wiring.Box) {
	for _, id := range d.BoxIDs() {
		b, _ := d.Box(id)
		if b.Value != nil && b.Value.Ob != nil && b.Value.Ob.Name == name {
			return id, b
		}
	}
	return 0, nil
}
