package dfd

import (
	"errors"
	"testing"
)

func TestAddElement_DuplicateIdentifier(t *testing.T) {
	r := NewRegistry()
	if err := r.AddElement(NewElement("Server", TypeProcess, "SERVER")); err != nil {
		t.Fatalf("AddElement failed: %v", err)
	}

	err := r.AddElement(NewElement("Other server", TypeProcess, "SERVER"))
	if !errors.Is(err, ErrDuplicateIdentifier) {
		t.Errorf("Expected ErrDuplicateIdentifier, got %v", err)
	}
	if len(r.Elements()) != 1 {
		t.Errorf("Expected registry unchanged after failed add, got %d elements", len(r.Elements()))
	}
}

func TestAddElement_GeneratesID(t *testing.T) {
	e := NewElement("Server", TypeProcess, "")
	if e.ID == "" {
		t.Fatal("Expected generated identifier for element without one")
	}
}

func TestElement_NotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Element("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAddFlow_UnknownEndpoint(t *testing.T) {
	r := NewRegistry()
	if err := r.AddElement(NewElement("A", TypeProcess, "A")); err != nil {
		t.Fatalf("AddElement failed: %v", err)
	}

	f, err := NewFlow("traffic", "A", "B", false, "")
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}
	if err := r.AddFlow(f); !errors.Is(err, ErrUnknownReference) {
		t.Errorf("Expected ErrUnknownReference for missing endpoint, got %v", err)
	}
	if len(r.Flows()) != 0 {
		t.Errorf("Expected no flows after failed add, got %d", len(r.Flows()))
	}
}

func TestAddFlow_SelfLoopAllowed(t *testing.T) {
	r := NewRegistry()
	if err := r.AddElement(NewElement("A", TypeProcess, "A")); err != nil {
		t.Fatalf("AddElement failed: %v", err)
	}

	f, err := NewFlow("loopback", "A", "A", false, "")
	if err != nil {
		t.Fatalf("NewFlow failed: %v", err)
	}
	if err := r.AddFlow(f); err != nil {
		t.Errorf("Expected self-loop to be accepted, got %v", err)
	}
}

func TestNewFlow_RequiresTwoNodes(t *testing.T) {
	if _, err := NewFlow("traffic", "", "B", false, ""); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("Expected ErrMalformedDocument for missing first node, got %v", err)
	}
}

func TestAddBoundary_UnknownMember(t *testing.T) {
	r := NewRegistry()
	if err := r.AddElement(NewElement("A", TypeProcess, "A")); err != nil {
		t.Fatalf("AddElement failed: %v", err)
	}

	err := r.AddBoundary(NewBoundary("dmz", []string{"A", "ghost"}, ""))
	if !errors.Is(err, ErrUnknownReference) {
		t.Errorf("Expected ErrUnknownReference for unknown member, got %v", err)
	}
	if len(r.Boundaries()) != 0 {
		t.Errorf("Expected no boundaries after failed add, got %d", len(r.Boundaries()))
	}
}

func TestBoundariesOf(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"A", "B", "C"} {
		if err := r.AddElement(NewElement(id, TypeProcess, id)); err != nil {
			t.Fatalf("AddElement failed: %v", err)
		}
	}
	if err := r.AddBoundary(NewBoundary("inner", []string{"A", "B"}, "B1")); err != nil {
		t.Fatalf("AddBoundary failed: %v", err)
	}
	if err := r.AddBoundary(NewBoundary("outer", []string{"A"}, "B2")); err != nil {
		t.Fatalf("AddBoundary failed: %v", err)
	}

	got := r.BoundariesOf("A")
	if len(got) != 2 || got[0] != "B1" || got[1] != "B2" {
		t.Errorf("Expected [B1 B2] for A, got %v", got)
	}
	if got := r.BoundariesOf("C"); len(got) != 0 {
		t.Errorf("Expected C to be unbound, got %v", got)
	}
}

func TestBoundariesOf_DuplicateNamesStayDistinct(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"A", "B"} {
		if err := r.AddElement(NewElement(id, TypeProcess, id)); err != nil {
			t.Fatalf("AddElement failed: %v", err)
		}
	}
	if err := r.AddBoundary(NewBoundary("zone", []string{"A"}, "Z1")); err != nil {
		t.Fatalf("AddBoundary failed: %v", err)
	}
	if err := r.AddBoundary(NewBoundary("zone", []string{"B"}, "Z2")); err != nil {
		t.Fatalf("AddBoundary failed: %v", err)
	}

	// Same name, different boundaries: memberships must not collapse.
	if got := r.BoundariesOf("A"); len(got) != 1 || got[0] != "Z1" {
		t.Errorf("Expected [Z1] for A, got %v", got)
	}
	if got := r.BoundariesOf("B"); len(got) != 1 || got[0] != "Z2" {
		t.Errorf("Expected [Z2] for B, got %v", got)
	}
}

func TestHasNode_CoversElementsAndFlows(t *testing.T) {
	r := NewRegistry()
	if err := r.AddElement(NewElement("A", TypeProcess, "A")); err != nil {
		t.Fatalf("AddElement failed: %v", err)
	}
	if err := r.AddElement(NewElement("B", TypeDatastore, "B")); err != nil {
		t.Fatalf("AddElement failed: %v", err)
	}
	f, _ := NewFlow("traffic", "A", "B", false, "FLOW1")
	if err := r.AddFlow(f); err != nil {
		t.Fatalf("AddFlow failed: %v", err)
	}

	if !r.HasNode("A") || !r.HasNode("FLOW1") {
		t.Error("Expected HasNode to cover both elements and flows")
	}
	if r.HasNode("nope") {
		t.Error("Expected HasNode to be false for unknown id")
	}
}

func TestParseElementType_Invalid(t *testing.T) {
	if _, err := ParseElementType("Cloud"); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("Expected ErrMalformedDocument for unknown node type, got %v", err)
	}
}
