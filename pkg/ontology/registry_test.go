package ontology

import (
	"errors"
	"testing"

	"github.com/dd0wney/cluso-semflow/pkg/semantic"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

func singleBoxDiagram(name string) *wiring.Diagram {
	d := wiring.New(nil, nil)
	d.AddBox(&wiring.Box{Value: semantic.NewElem(semantic.Object{Name: name})})
	return d
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterHom("f", singleBoxDiagram("F"))
	reg.RegisterOb("Point", semantic.Object{Name: "Point"},
		semantic.Object{Name: "X"}, semantic.Object{Name: "Y"})

	ann, err := reg.Lookup("f")
	if err != nil {
		t.Fatalf("Lookup(f): %v", err)
	}
	hom, ok := ann.(*HomAnnotation)
	if !ok || hom.Name != "f" {
		t.Errorf("Lookup(f) = %#v, want HomAnnotation named f", ann)
	}

	ann, err = reg.Lookup("Point")
	if err != nil {
		t.Fatalf("Lookup(Point): %v", err)
	}
	ob, ok := ann.(*ObAnnotation)
	if !ok || ob.Definition.Name != "Point" || len(ob.Slots) != 2 {
		t.Errorf("Lookup(Point) = %#v, want ObAnnotation with 2 slots", ann)
	}

	if _, err := reg.Lookup("missing"); !errors.Is(err, ErrAnnotationNotFound) {
		t.Errorf("Lookup(missing) = %v, want ErrAnnotationNotFound", err)
	}
}

func TestRegistryConstruct(t *testing.T) {
	reg := NewRegistry()
	point := semantic.Object{Name: "Point"}
	reg.RegisterConstruction(point, singleBoxDiagram("MakePoint"))

	d1, err := reg.Construct(point)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	d2, err := reg.Construct(point)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	// Each call hands out an independent copy.
	b, _ := d1.Box(d1.BoxIDs()[0])
	b.Value.Ob.Name = "Mutated"
	b2, _ := d2.Box(d2.BoxIDs()[0])
	if b2.Value.Ob.Name != "MakePoint" {
		t.Error("Construct results must not share state")
	}

	if _, err := reg.Construct(semantic.Object{Name: "Other"}); !errors.Is(err, ErrNoConstruction) {
		t.Errorf("Construct(Other) = %v, want ErrNoConstruction", err)
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindFunction, KindConstruct, KindSlot} {
		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), parsed, err, k)
		}
	}
	if _, err := ParseKind("method"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(method) = %v, want ErrUnknownKind", err)
	}
	if got := Kind(9).String(); got != "kind(9)" {
		t.Errorf("Kind(9).String() = %q, want kind(9)", got)
	}
}
