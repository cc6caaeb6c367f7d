package dfd

import (
	"fmt"

	"github.com/google/uuid"
)

// ElementType identifies the kind of a DFD node
type ElementType uint8

const (
	TypeProcess ElementType = iota
	TypeDatastore
	TypeExternalEntity
)

// String returns the string representation of an element type
func (t ElementType) String() string {
	switch t {
	case TypeProcess:
		return "Process"
	case TypeDatastore:
		return "Datastore"
	case TypeExternalEntity:
		return "ExternalEntity"
	default:
		return "Unknown"
	}
}

// ParseElementType converts a document type tag to an ElementType
func ParseElementType(s string) (ElementType, error) {
	switch s {
	case "Process":
		return TypeProcess, nil
	case "Datastore":
		return TypeDatastore, nil
	case "ExternalEntity":
		return TypeExternalEntity, nil
	default:
		return 0, fmt.Errorf("%w: invalid type for node: %q", ErrMalformedDocument, s)
	}
}

// Element is a single DFD node: a process, datastore, or external entity.
// Identity is immutable for the lifetime of the owning model.
type Element struct {
	ID          string
	Name        string
	Type        ElementType
	Description string
}

// NewElement creates an element. An empty id gets a generated UUID so the
// element can always be referenced by flows, boundaries, and threats.
func NewElement(name string, typ ElementType, id string) *Element {
	if id == "" {
		id = uuid.NewString()
	}
	return &Element{ID: id, Name: name, Type: typ}
}

func (e *Element) String() string {
	return fmt.Sprintf("<%s %s: %s>", e.Type, e.ID, e.Name)
}

// Flow is a directed edge between two element identifiers. When
// Bidirectional is set the edge is traversable both ways for enumeration
// and rendering. Self-loops (FirstNode == SecondNode) are allowed.
type Flow struct {
	ID            string
	Name          string
	FirstNode     string
	SecondNode    string
	Bidirectional bool
	Description   string
}

// NewFlow creates a flow between two node identifiers.
func NewFlow(name, firstNode, secondNode string, bidirectional bool, id string) (*Flow, error) {
	if firstNode == "" || secondNode == "" {
		return nil, fmt.Errorf("%w: two nodes required to define a dataflow", ErrMalformedDocument)
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &Flow{
		ID:            id,
		Name:          name,
		FirstNode:     firstNode,
		SecondNode:    secondNode,
		Bidirectional: bidirectional,
	}, nil
}

func (f *Flow) String() string {
	dir := "->"
	if f.Bidirectional {
		dir = "<->"
	}
	return fmt.Sprintf("<Flow %s: %s %s %s>", f.ID, f.FirstNode, dir, f.SecondNode)
}

// Boundary is a named trust boundary grouping element identifiers.
// Parent optionally names an enclosing boundary for nested groups.
type Boundary struct {
	ID          string
	Name        string
	Members     []string
	Parent      string
	Description string
}

// NewBoundary creates a boundary over the given member identifiers.
func NewBoundary(name string, members []string, id string) *Boundary {
	if id == "" {
		id = uuid.NewString()
	}
	return &Boundary{ID: id, Name: name, Members: append([]string(nil), members...)}
}

// Contains reports whether the boundary directly contains the identifier.
func (b *Boundary) Contains(id string) bool {
	for _, m := range b.Members {
		if m == id {
			return true
		}
	}
	return false
}
