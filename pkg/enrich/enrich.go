package enrich

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-semflow/pkg/flowgraph"
	"github.com/dd0wney/cluso-semflow/pkg/logging"
	"github.com/dd0wney/cluso-semflow/pkg/ontology"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

// Enrich transforms a raw flow graph into a semantic wiring diagram.
// The resolver and constructor are explicit capabilities of the call;
// they are consulted per annotation and must be referentially
// transparent for its duration. On any failure the whole call aborts
// and no diagram is returned.
func Enrich(raw *flowgraph.Diagram, resolver ontology.Resolver, constructor ontology.Constructor, opts Options) (*wiring.Diagram, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, phaseError("Options", 0, -1, "", err)
	}

	start := time.Now()
	log := opts.Logger.With(logging.Component("enrich"), logging.Run(uuid.NewString()))
	log.Debug("enrichment started",
		logging.Int("boxes", len(raw.Boxes)),
		logging.Int("wires", len(raw.Wires)),
	)

	d, pending, err := assemble(raw, resolver, constructor, opts, log)
	if err != nil {
		opts.Metrics.RecordEnrichment("error", time.Since(start))
		return nil, err
	}
	if err := substitutePending(d, pending, opts, log); err != nil {
		opts.Metrics.RecordEnrichment("error", time.Since(start))
		return nil, err
	}

	merged, err := collapse(d, log)
	if err != nil {
		opts.Metrics.RecordEnrichment("error", time.Since(start))
		return nil, err
	}
	opts.Metrics.RecordMerges(merged)
	opts.Metrics.RecordEnrichment("ok", time.Since(start))

	log.Info("enrichment complete",
		logging.Int("boxes", d.BoxCount()),
		logging.Int("wires", len(d.Wires())),
		logging.Int("merged", merged),
		logging.Duration("elapsed", time.Since(start)),
	)
	return d, nil
}

// assemble runs steps 1-3 of the transform: type the boundary, expand
// every raw box under its original handle, and copy the raw wires
// verbatim. Handle preservation is what makes the verbatim copy valid.
// Boxes whose expansion produced a nested diagram are returned as the
// pending-substitution list; substituting them here would invalidate the
// handles the remaining wires still reference.
func assemble(raw *flowgraph.Diagram, resolver ontology.Resolver, constructor ontology.Constructor, opts Options, log logging.Logger) (*wiring.Diagram, []wiring.BoxID, error) {
	if err := raw.Validate(); err != nil {
		return nil, nil, phaseError("Validate", 0, -1, "", err)
	}

	inputs, err := typePorts(raw.Inputs, resolver, opts)
	if err != nil {
		return nil, nil, err
	}
	outputs, err := typePorts(raw.Outputs, resolver, opts)
	if err != nil {
		return nil, nil, err
	}
	d := wiring.New(inputs, outputs)

	var pending []wiring.BoxID
	for _, id := range raw.Order {
		box := raw.Boxes[id]
		ins, err := typePorts(box.Inputs, resolver, opts)
		if err != nil {
			return nil, nil, phaseError("TypeInputs", id, -1, deref(box.Node.Name), err)
		}
		outs, err := typePorts(box.Outputs, resolver, opts)
		if err != nil {
			return nil, nil, phaseError("TypeOutputs", id, -1, deref(box.Node.Name), err)
		}

		exp, err := expandBox(box, ins, outs, resolver, constructor, opts)
		if err != nil {
			return nil, nil, phaseError("Expand", id, -1, deref(box.Node.Name), err)
		}
		opts.Metrics.RecordExpansion(exp.kind)

		b := exp.atomic
		if exp.nested != nil {
			b = &wiring.Box{Inputs: ins, Outputs: outs, Nested: exp.nested}
			pending = append(pending, id)
		}
		if err := d.AddBoxWithID(id, b); err != nil {
			return nil, nil, phaseError("Insert", id, -1, "", err)
		}
		log.Debug("box expanded",
			logging.Phase("expansion"),
			logging.BoxHandle(int(id)),
			logging.KindLabel(exp.kind),
		)
	}

	for _, w := range raw.Wires {
		if err := d.AddWire(w); err != nil {
			return nil, nil, phaseError("CopyWire", 0, -1, "", err)
		}
	}
	return d, pending, nil
}

// substitutePending inlines expanded sub-diagrams in original handle
// order, applying the configured dangling-wire policy first.
func substitutePending(d *wiring.Diagram, pending []wiring.BoxID, opts Options, log logging.Logger) error {
	for _, id := range pending {
		if opts.Dangling == DanglingDrop {
			for _, w := range d.DanglingWires(id) {
				d.RemoveWire(w)
				opts.Metrics.RecordDroppedWire()
				log.Warn("dropped orphaned wire",
					logging.Phase("substitution"),
					logging.BoxHandle(int(id)),
					logging.Any("wire", w),
				)
			}
		}
		if err := d.Substitute(id); err != nil {
			return phaseError("Substitute", id, -1, "", err)
		}
	}
	return nil
}
