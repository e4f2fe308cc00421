package graph

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		build   func(m *Memory) error
		wantErr error
	}{
		{
			name:  "Simple",
			build: func(m *Memory) error { return m.AddNode("a", []string{"A"}, nil) },
		},
		{
			name:    "EmptyID",
			build:   func(m *Memory) error { return m.AddNode("", nil, nil) },
			wantErr: ErrInvalidNodeID,
		},
		{
			name: "Duplicate",
			build: func(m *Memory) error {
				if err := m.AddNode("a", nil, nil); err != nil {
					return err
				}
				return m.AddNode("a", nil, nil)
			},
			wantErr: ErrDuplicateNodeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build(New())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddRelationship(t *testing.T) {
	m := New()
	if err := m.AddNode("a", nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := m.AddNode("b", nil, nil); err != nil {
		t.Fatal(err)
	}

	if err := m.AddRelationship("a", "b", "REL", nil); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}
	if err := m.AddRelationship("a", "missing", "REL", nil); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("unknown target err = %v, want ErrNodeNotFound", err)
	}
	if err := m.AddRelationship("missing", "b", "REL", nil); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("unknown source err = %v, want ErrNodeNotFound", err)
	}
}

func TestMemoryIteration(t *testing.T) {
	m := New()
	for _, id := range []string{"b", "a", "c"} {
		if err := m.AddNode(id, []string{"L"}, Properties{"v": int64(1)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.AddRelationship("a", "b", "X", Properties{"w": int64(1)}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddRelationship("a", "b", "X", Properties{"w": int64(2)}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddRelationship("a", "a", "LOOP", nil); err != nil {
		t.Fatal(err)
	}

	// Nodes iterate in insertion order.
	got := slices.Collect(m.Nodes())
	if want := []string{"b", "a", "c"}; !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}

	// Parallel relationships stay distinct.
	var outgoing []Relationship
	for rel := range m.OutgoingRelationships("a") {
		outgoing = append(outgoing, rel)
	}
	if len(outgoing) != 3 {
		t.Fatalf("outgoing from a = %d, want 3", len(outgoing))
	}

	// A self-loop is visible from both directions of the same node.
	var incoming []Relationship
	for rel := range m.IncomingRelationships("a") {
		incoming = append(incoming, rel)
	}
	if len(incoming) != 1 || incoming[0].Type != "LOOP" {
		t.Errorf("incoming to a = %v, want single LOOP", incoming)
	}

	if m.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", m.NodeCount())
	}
	if m.RelationshipCount() != 3 {
		t.Errorf("RelationshipCount = %d, want 3", m.RelationshipCount())
	}
}

// Mutating the caller's maps after AddNode must not leak into the graph.
func TestMemoryCopiesInput(t *testing.T) {
	m := New()
	labels := []string{"A"}
	props := Properties{"v": int64(1)}
	if err := m.AddNode("a", labels, props); err != nil {
		t.Fatal(err)
	}

	labels[0] = "B"
	props["v"] = int64(2)

	if got := slices.Collect(m.NodeLabels("a")); got[0] != "A" {
		t.Errorf("labels leaked caller mutation: %v", got)
	}
	for k, v := range m.NodeProperties("a") {
		if k == "v" && v != int64(1) {
			t.Errorf("properties leaked caller mutation: %v", v)
		}
	}
}

func TestMemoryUnknownNode(t *testing.T) {
	m := New()
	if got := slices.Collect(m.NodeLabels("nope")); len(got) != 0 {
		t.Errorf("NodeLabels(unknown) = %v, want empty", got)
	}
	if m.HasNode("nope") {
		t.Error("HasNode(unknown) = true")
	}
}
