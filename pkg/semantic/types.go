// Package semantic defines the typed values attached to semantic wiring
// diagrams: ontology object references and the elements (object + id +
// literal) carried on ports and boxes.
package semantic

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Object is a reference to an ontology-defined semantic object (a type).
type Object struct {
	Name string
}

// LiteralType represents the type of a literal value
type LiteralType uint8

const (
	TypeString LiteralType = iota
	TypeInt
	TypeFloat
	TypeBool
)

// Literal is a typed literal value carried by a port.
// The encoding mirrors the value model used across cluso projects: a type
// tag plus a compact binary payload, so equality is a byte comparison.
type Literal struct {
	Type LiteralType
	Data []byte
}

// Helper functions to create typed literals
func StringLiteral(s string) Literal {
	return Literal{Type: TypeString, Data: []byte(s)}
}

func IntLiteral(i int64) Literal {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, uint64(i))
	return Literal{Type: TypeInt, Data: data}
}

func FloatLiteral(f float64) Literal {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, math.Float64bits(f))
	return Literal{Type: TypeFloat, Data: data}
}

func BoolLiteral(b bool) Literal {
	data := []byte{0}
	if b {
		data[0] = 1
	}
	return Literal{Type: TypeBool, Data: data}
}

// Decode methods
func (l Literal) AsString() (string, error) {
	if l.Type != TypeString {
		return "", fmt.Errorf("literal is not a string")
	}
	return string(l.Data), nil
}

func (l Literal) AsInt() (int64, error) {
	if l.Type != TypeInt {
		return 0, fmt.Errorf("literal is not an int")
	}
	if len(l.Data) != 8 {
		return 0, fmt.Errorf("invalid int literal data")
	}
	return int64(binary.LittleEndian.Uint64(l.Data)), nil
}

func (l Literal) AsFloat() (float64, error) {
	if l.Type != TypeFloat {
		return 0, fmt.Errorf("literal is not a float")
	}
	if len(l.Data) != 8 {
		return 0, fmt.Errorf("invalid float literal data")
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(l.Data)), nil
}

func (l Literal) AsBool() (bool, error) {
	if l.Type != TypeBool {
		return false, fmt.Errorf("literal is not a bool")
	}
	if len(l.Data) != 1 {
		return false, fmt.Errorf("invalid bool literal data")
	}
	return l.Data[0] == 1, nil
}

// Equal reports whether two literals have the same type and payload.
func (l Literal) Equal(other Literal) bool {
	return l.Type == other.Type && bytes.Equal(l.Data, other.Data)
}

// Elem is the semantic element attached to a port or box: an optional
// object reference, an optional external id, and an optional literal.
// All fields are explicit optionals; a nil *Elem means "untyped".
type Elem struct {
	Ob    *Object
	ID    *string
	Value *Literal
}

// NewElem creates an element carrying only an object reference.
func NewElem(ob Object) *Elem {
	return &Elem{Ob: &ob}
}

// Equal reports structural equality: two elements are equal when their
// object references, ids, and literals all match by value.
func (e *Elem) Equal(other *Elem) bool {
	if e == nil || other == nil {
		return e == other
	}
	if (e.Ob == nil) != (other.Ob == nil) {
		return false
	}
	if e.Ob != nil && *e.Ob != *other.Ob {
		return false
	}
	if (e.ID == nil) != (other.ID == nil) {
		return false
	}
	if e.ID != nil && *e.ID != *other.ID {
		return false
	}
	if (e.Value == nil) != (other.Value == nil) {
		return false
	}
	if e.Value != nil && !e.Value.Equal(*other.Value) {
		return false
	}
	return true
}

// Clone returns a deep copy of the element. Clone of nil is nil.
func (e *Elem) Clone() *Elem {
	if e == nil {
		return nil
	}
	out := &Elem{}
	if e.Ob != nil {
		ob := *e.Ob
		out.Ob = &ob
	}
	if e.ID != nil {
		id := *e.ID
		out.ID = &id
	}
	if e.Value != nil {
		v := Literal{Type: e.Value.Type, Data: append([]byte(nil), e.Value.Data...)}
		out.Value = &v
	}
	return out
}

func (e *Elem) String() string {
	if e == nil {
		return "<untyped>"
	}
	name := "?"
	if e.Ob != nil {
		name = e.Ob.Name
	}
	switch {
	case e.ID != nil && e.Value != nil:
		return fmt.Sprintf("%s(id=%s,value)", name, *e.ID)
	case e.ID != nil:
		return fmt.Sprintf("%s(id=%s)", name, *e.ID)
	case e.Value != nil:
		return fmt.Sprintf("%s(value)", name)
	default:
		return name
	}
}
