package mongosource

import (
	"errors"
	"testing"

	"github.com/grapheq/grapheq/pkg/canonical"
	"github.com/grapheq/grapheq/pkg/gdl"
	"github.com/grapheq/grapheq/pkg/graph"
)

func TestFromDocuments(t *testing.T) {
	nodes := []NodeDoc{
		{ID: "a", Labels: []string{"Person"}, Properties: map[string]any{"born": int32(1815)}},
		{ID: "b", Labels: []string{"Person"}, Properties: map[string]any{"born": int64(1791)}},
	}
	rels := []RelationshipDoc{
		{Source: "a", Target: "b", Type: "KNOWS"},
	}

	g, err := FromDocuments(nodes, rels)
	if err != nil {
		t.Fatalf("FromDocuments: %v", err)
	}

	want := gdl.MustParse("(x:Person { born: 1815 })-[:KNOWS]->(y:Person { born: 1791 })")
	equal, err := canonical.Equal(g, want)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		form, _ := canonical.Canonicalize(g)
		t.Errorf("loaded graph differs from fixture:\n%s", form)
	}
}

// BSON decodes small integers as int32; they must compare equal to the
// int64 the rest of the system uses.
func TestNormalizeIntegerWidths(t *testing.T) {
	g, err := FromDocuments([]NodeDoc{{ID: "a", Properties: map[string]any{"v": int32(7)}}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	h, err := FromDocuments([]NodeDoc{{ID: "b", Properties: map[string]any{"v": int64(7)}}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	equal, err := canonical.Equal(g, h)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("int32 and int64 property values should render identically")
	}
}

func TestFromDocumentsErrors(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []NodeDoc
		rels    []RelationshipDoc
		wantErr error
	}{
		{
			name:    "DanglingSource",
			nodes:   []NodeDoc{{ID: "a"}},
			rels:    []RelationshipDoc{{Source: "ghost", Target: "a"}},
			wantErr: graph.ErrNodeNotFound,
		},
		{
			name:    "DuplicateNode",
			nodes:   []NodeDoc{{ID: "a"}, {ID: "a"}},
			wantErr: graph.ErrDuplicateNodeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromDocuments(tt.nodes, tt.rels)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
