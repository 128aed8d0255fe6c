package ontology

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-semflow/pkg/semantic"
	"github.com/dd0wney/cluso-semflow/pkg/wiring"
)

// validate is a singleton validator instance
var validate = validator.New()

// VocabularyVersion is the only supported vocabulary document version.
const VocabularyVersion = 1

// vocabularyDoc is the YAML form of an annotation vocabulary.
type vocabularyDoc struct {
	Version       int                `yaml:"version" validate:"required"`
	Objects       []objectDecl       `yaml:"objects" validate:"dive"`
	Morphisms     []morphismDecl     `yaml:"morphisms" validate:"dive"`
	Constructions []constructionDecl `yaml:"constructions" validate:"dive"`
}

type objectDecl struct {
	Name   string   `yaml:"name" validate:"required"`
	Object string   `yaml:"object" validate:"required"`
	Slots  []string `yaml:"slots"`
}

type morphismDecl struct {
	Name    string      `yaml:"name" validate:"required"`
	Diagram diagramDecl `yaml:"diagram" validate:"required"`
}

type constructionDecl struct {
	Object  string      `yaml:"object" validate:"required"`
	Diagram diagramDecl `yaml:"diagram" validate:"required"`
}

// diagramDecl describes a wiring diagram. Boxes are implicitly numbered
// 1..n in declaration order; wires reference those numbers, with -1 and
// -2 reserved for the diagram input and output boundaries.
type diagramDecl struct {
	Inputs  []string   `yaml:"inputs"`
	Outputs []string   `yaml:"outputs"`
	Boxes   []boxDecl  `yaml:"boxes" validate:"dive"`
	Wires   []wireDecl `yaml:"wires" validate:"dive"`
}

type boxDecl struct {
	Object  string   `yaml:"object" validate:"required"`
	Inputs  []string `yaml:"inputs"`
	Outputs []string `yaml:"outputs"`
}

type wireDecl struct {
	Source endpointDecl `yaml:"source"`
	Target endpointDecl `yaml:"target"`
}

type endpointDecl struct {
	Box  int `yaml:"box"`
	Port int `yaml:"port"`
}

// LoadVocabulary parses and validates a YAML vocabulary document and
// compiles it into a Registry.
func LoadVocabulary(data []byte) (*Registry, error) {
	var doc vocabularyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid vocabulary: %w", err)
	}
	if doc.Version != VocabularyVersion {
		return nil, fmt.Errorf("invalid vocabulary: unsupported version %d", doc.Version)
	}

	reg := NewRegistry()
	for _, o := range doc.Objects {
		slots := make([]semantic.Object, len(o.Slots))
		for i, s := range o.Slots {
			slots[i] = semantic.Object{Name: s}
		}
		reg.RegisterOb(o.Name, semantic.Object{Name: o.Object}, slots...)
	}
	for _, m := range doc.Morphisms {
		d, err := compileDiagram(m.Diagram)
		if err != nil {
			return nil, fmt.Errorf("morphism %q: %w", m.Name, err)
		}
		reg.RegisterHom(m.Name, d)
	}
	for _, c := range doc.Constructions {
		d, err := compileDiagram(c.Diagram)
		if err != nil {
			return nil, fmt.Errorf("construction %q: %w", c.Object, err)
		}
		reg.RegisterConstruction(semantic.Object{Name: c.Object}, d)
	}
	return reg, nil
}

// LoadVocabularyFile reads and compiles a vocabulary from disk.
func LoadVocabularyFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return LoadVocabulary(data)
}

func compileDiagram(decl diagramDecl) (*wiring.Diagram, error) {
	d := wiring.New(objectElems(decl.Inputs), objectElems(decl.Outputs))
	for _, b := range decl.Boxes {
		d.AddBox(&wiring.Box{
			Inputs:  objectElems(b.Inputs),
			Outputs: objectElems(b.Outputs),
			Value:   semantic.NewElem(semantic.Object{Name: b.Object}),
		})
	}
	for _, w := range decl.Wires {
		wire := wiring.Wire{
			Source: wiring.PortRef{Box: wiring.BoxID(w.Source.Box), Port: w.Source.Port},
			Target: wiring.PortRef{Box: wiring.BoxID(w.Target.Box), Port: w.Target.Port},
		}
		if err := d.AddWire(wire); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func objectElems(names []string) []*semantic.Elem {
	elems := make([]*semantic.Elem, len(names))
	for i, n := range names {
		elems[i] = semantic.NewElem(semantic.Object{Name: n})
	}
	return elems
}
