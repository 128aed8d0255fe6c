// Package ontology defines annotation kinds, resolved annotations, and
// the resolver/constructor capabilities the enrichment transform depends
// on. The package also ships an in-memory Registry and a YAML vocabulary
// loader so callers can stand up a resolver without an external store.
package ontology

import (
	"fmt"
)

// Kind classifies an annotation on a raw box. It is meaningful only when
// the box carries an annotation name.
type Kind uint8

const (
	// KindFunction marks a box expanding to a morphism sub-diagram.
	KindFunction Kind = iota
	// KindConstruct marks a box that builds an ontology object.
	KindConstruct
	// KindSlot marks a box selecting one component slot of an object.
	KindSlot
)

// Serialized labels for annotation kinds.
const (
	LabelFunction  = "function"
	LabelConstruct = "construct"
	LabelSlot      = "slot"
)

// String returns the serialized label of the kind.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return LabelFunction
	case KindConstruct:
		return LabelConstruct
	case KindSlot:
		return LabelSlot
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind converts a serialized label to a Kind. Anything but the three
// known labels fails with ErrUnknownKind.
func ParseKind(label string) (Kind, error) {
	switch label {
	case LabelFunction:
		return KindFunction, nil
	case LabelConstruct:
		return KindConstruct, nil
	case LabelSlot:
		return KindSlot, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, label)
	}
}
