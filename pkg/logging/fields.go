package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Field helpers for the enrichment domain

// Component names the pipeline component emitting the entry.
func Component(name string) Field {
	return String("component", name)
}

// Phase names the enrichment phase (typing, expansion, wiring, collapse).
func Phase(name string) Field {
	return String("phase", name)
}

// Run carries the per-enrichment run id correlating log lines.
func Run(id string) Field {
	return String("run_id", id)
}

// BoxHandle identifies a diagram box by its integer handle.
func BoxHandle(id int) Field {
	return Int("box", id)
}

// PortIndex identifies a port position on a box or boundary.
func PortIndex(i int) Field {
	return Int("port", i)
}

// Annotation names an ontology annotation being resolved.
func Annotation(name string) Field {
	return String("annotation", name)
}

// KindLabel carries an annotation kind's serialized label.
func KindLabel(label string) Field {
	return String("kind", label)
}
