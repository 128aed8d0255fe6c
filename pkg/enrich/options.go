// Package enrich turns a raw instrumented flow graph into a semantic
// wiring diagram: boundary ports are typed against the ontology, boxes
// are expanded through their annotations, wires are carried over, nested
// expansions are substituted in, and runs of unannotated plumbing boxes
// are collapsed.
package enrich

import (
	"fmt"

	"github.com/dd0wney/cluso-semflow/pkg/logging"
	"github.com/dd0wney/cluso-semflow/pkg/metrics"
)

// DanglingPolicy decides what happens to a wire that targets a port
// missing from an expanded sub-diagram's boundary.
type DanglingPolicy uint8

const (
	// DanglingError aborts the enrichment call with ErrDanglingWire.
	// This is the default: a silent drop would hide ontology mismatches.
	DanglingError DanglingPolicy = iota
	// DanglingDrop removes the orphaned wire and logs a warning.
	DanglingDrop
)

// Options carries the explicit parameters of one enrichment call. The
// zero value is usable: origin-0 indices, hard dangling-wire errors,
// bare object references on ports, no logging, no metrics.
type Options struct {
	// IndexOrigin is the base (0 or 1) of the annotation indices stored
	// in the ontology, used for slot selection and function port wiring.
	IndexOrigin int
	// Dangling selects the orphaned-wire policy.
	Dangling DanglingPolicy
	// Elements, when set, carries port ids and literals onto the output
	// diagram's elements instead of bare object-type references.
	Elements bool

	Logger  logging.Logger
	Metrics *metrics.Registry
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logging.NewNopLogger()
	}
	return o
}

func (o Options) validate() error {
	if o.IndexOrigin != 0 && o.IndexOrigin != 1 {
		return fmt.Errorf("index origin must be 0 or 1, got %d", o.IndexOrigin)
	}
	if o.Dangling > DanglingDrop {
		return fmt.Errorf("unknown dangling-wire policy %d", o.Dangling)
	}
	return nil
}
