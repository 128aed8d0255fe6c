package enrich

import (
	"fmt"

	"github.com/dd0wney/cluso-semflow/pkg/flowgraph"
	"github.com/dd0wney/cluso-semflow/pkg/ontology"
	"github.com/dd0wney/cluso-semflow/pkg/semantic"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

// expansion is the result of expanding one raw box: either an atomic
// semantic box or a nested sub-diagram awaiting substitution.
type expansion struct {
	atomic *wiring.Box
	nested *wiring.Diagram
	kind   string // metrics label
}

// expandBox dispatches on the raw box's annotation kind. The closed set
// of cases is: no annotation, Function, Construct, Slot.
func expandBox(box *flowgraph.Box, inputs, outputs []*semantic.Elem, resolver ontology.Resolver, constructor ontology.Constructor, opts Options) (expansion, error) {
	node := box.Node
	if !node.Annotated() {
		return expansion{
			atomic: &wiring.Box{Inputs: inputs, Outputs: outputs},
			kind:   "atomic",
		}, nil
	}

	name := *node.Name
	ann, err := resolver.Lookup(name)
	if err != nil {
		return expansion{}, err
	}

	switch node.Kind {
	case ontology.KindFunction:
		hom, ok := ann.(*ontology.HomAnnotation)
		if !ok {
			return expansion{}, fmt.Errorf("%w: %q resolves to an object, want a morphism", ErrKindMismatch, name)
		}
		sub, err := expandFunction(box, inputs, outputs, hom, opts)
		if err != nil {
			return expansion{}, err
		}
		return expansion{nested: sub, kind: ontology.LabelFunction}, nil

	case ontology.KindConstruct:
		ob, ok := ann.(*ontology.ObAnnotation)
		if !ok {
			return expansion{}, fmt.Errorf("%w: %q resolves to a morphism, want an object", ErrKindMismatch, name)
		}
		if constructor == nil {
			return expansion{}, ErrNoConstructor
		}
		sub, err := constructor.Construct(ob.Definition)
		if err != nil {
			return expansion{}, err
		}
		return expansion{nested: sub, kind: ontology.LabelConstruct}, nil

	case ontology.KindSlot:
		ob, ok := ann.(*ontology.ObAnnotation)
		if !ok {
			return expansion{}, fmt.Errorf("%w: %q resolves to a morphism, want an object", ErrKindMismatch, name)
		}
		sub, err := expandSlot(node, inputs, outputs, ob, opts)
		if err != nil {
			return expansion{}, err
		}
		return expansion{nested: sub, kind: ontology.LabelSlot}, nil

	default:
		return expansion{}, fmt.Errorf("%w: kind %d on %q", ontology.ErrUnknownKind, node.Kind, name)
	}
}

// expandFunction builds a sub-diagram whose boundary equals the box's own
// typed ports, places the morphism definition as a single interior box,
// wires boundary ports carrying an annotation index to the interior box's
// port at that index (ports without an index stay unwired: the partial
// argument case), and substitutes the interior box so the result holds
// the morphism's internal boxes directly.
func expandFunction(box *flowgraph.Box, inputs, outputs []*semantic.Elem, hom *ontology.HomAnnotation, opts Options) (*wiring.Diagram, error) {
	def := hom.Definition
	sub := wiring.New(inputs, outputs)
	inner := sub.AddBox(&wiring.Box{
		Inputs:  def.Inputs(),
		Outputs: def.Outputs(),
		Nested:  def.Clone(),
	})

	for i, p := range box.Inputs {
		if p.Index == nil {
			continue
		}
		k := *p.Index - opts.IndexOrigin
		if k < 0 || k >= len(def.Inputs()) {
			return nil, fmt.Errorf("%w: input index %d on %q (morphism has %d inputs)", ErrIndexOutOfRange, *p.Index, hom.Name, len(def.Inputs()))
		}
		if err := sub.AddWire(wiring.Wire{
			Source: wiring.PortRef{Box: wiring.DiagramInput, Port: i},
			Target: wiring.PortRef{Box: inner, Port: k},
		}); err != nil {
			return nil, err
		}
	}
	for i, p := range box.Outputs {
		if p.Index == nil {
			continue
		}
		k := *p.Index - opts.IndexOrigin
		if k < 0 || k >= len(def.Outputs()) {
			return nil, fmt.Errorf("%w: output index %d on %q (morphism has %d outputs)", ErrIndexOutOfRange, *p.Index, hom.Name, len(def.Outputs()))
		}
		if err := sub.AddWire(wiring.Wire{
			Source: wiring.PortRef{Box: inner, Port: k},
			Target: wiring.PortRef{Box: wiring.DiagramOutput, Port: i},
		}); err != nil {
			return nil, err
		}
	}

	if err := sub.Substitute(inner); err != nil {
		return nil, err
	}
	return sub, nil
}

// expandSlot selects one component slot of the object annotation and
// returns the canonical single-box diagram for it.
func expandSlot(node flowgraph.RawNode, inputs, outputs []*semantic.Elem, ob *ontology.ObAnnotation, opts Options) (*wiring.Diagram, error) {
	if node.Index == nil {
		return nil, fmt.Errorf("%w: slot annotation %q has no index", ErrIndexOutOfRange, ob.Name)
	}
	k := *node.Index - opts.IndexOrigin
	if k < 0 || k >= len(ob.Slots) {
		return nil, fmt.Errorf("%w: slot index %d on %q (object has %d slots)", ErrIndexOutOfRange, *node.Index, ob.Name, len(ob.Slots))
	}
	return wiring.Singleton(&wiring.Box{
		Inputs:  inputs,
		Outputs: outputs,
		Value:   semantic.NewElem(ob.Slots[k]),
	}), nil
}
