// Package markup implements the graph-markup serialized form for raw and
// semantic wiring diagrams: a JSON document that round-trips metadata,
// annotation fields, and kind labels, with an optional snappy-framed
// container for files.
package markup

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

// Version is the only supported document version.
const Version = 1

// Document kinds
const (
	KindRaw      = "raw"
	KindSemantic = "semantic"
)

// Common sentinel errors
var (
	ErrInvalidDocument    = errors.New("invalid markup document")
	ErrWrongDocumentKind  = errors.New("wrong markup document kind")
	ErrUnsupportedVersion = errors.New("unsupported markup version")
)

// validate is a singleton validator instance
var validate = validator.New()

// document is the top-level JSON form shared by raw and semantic
// diagrams. Which port/box fields are populated depends on Kind.
type document struct {
	Version int         `json:"version" validate:"required"`
	ID      string      `json:"id,omitempty"`
	Kind    string      `json:"kind" validate:"required,oneof=raw semantic"`
	Diagram diagramDoc  `json:"diagram"`
}

// diagramDoc is one diagram level; semantic boxes recurse through it.
type diagramDoc struct {
	Inputs  []portDoc `json:"inputs"`
	Outputs []portDoc `json:"outputs"`
	Boxes   []boxDoc  `json:"boxes" validate:"dive"`
	Wires   []wireDoc `json:"wires"`
}

// portDoc is a boundary or box port. Raw documents use Meta, Annotation,
// Ref, and Value; semantic documents use Elem (null for untyped ports).
type portDoc struct {
	Meta       map[string]any `json:"meta,omitempty"`
	Annotation *annotationDoc `json:"annotation,omitempty"`
	Ref        *string        `json:"ref,omitempty"`
	Value      *literalDoc    `json:"value,omitempty"`
	Elem       *elemDoc       `json:"elem,omitempty"`
}

// annotationDoc is an ontology reference. Kind is present on nodes only;
// it must be one of the labels "function", "construct", "slot".
type annotationDoc struct {
	Name  string `json:"name" validate:"required"`
	Index *int   `json:"index,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

type boxDoc struct {
	ID      int            `json:"id" validate:"min=1"`
	Meta    map[string]any `json:"meta,omitempty"`
	Node    *annotationDoc `json:"node,omitempty"`
	Inputs  []portDoc      `json:"inputs"`
	Outputs []portDoc      `json:"outputs"`
	Value   *elemDoc       `json:"value,omitempty"`
	Nested  *diagramDoc    `json:"nested,omitempty"`
}

type wireDoc struct {
	Source endpointDoc `json:"source"`
	Target endpointDoc `json:"target"`
}

type endpointDoc struct {
	Box  int `json:"box"`
	Port int `json:"port"`
}

type elemDoc struct {
	Ob    *string     `json:"ob,omitempty"`
	ID    *string     `json:"id,omitempty"`
	Value *literalDoc `json:"value,omitempty"`
}

// literalDoc carries a typed literal. Type is one of "string", "int",
// "float", "bool"; Value is the JSON encoding of the payload.
type literalDoc struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func checkDocument(doc *document, wantKind string) error {
	if err := validate.Struct(doc); err != nil {
		return errors.Join(ErrInvalidDocument, err)
	}
	if doc.Version != Version {
		return ErrUnsupportedVersion
	}
	if doc.Kind != wantKind {
		return ErrWrongDocumentKind
	}
	return nil
}
