package neo4jsource

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/grapheq/grapheq/pkg/canonical"
	"github.com/grapheq/grapheq/pkg/gdl"
	"github.com/grapheq/grapheq/pkg/graph"
)

func node(elementID string, labels []string, props map[string]any) dbtype.Node {
	return dbtype.Node{ElementId: elementID, Labels: labels, Props: props}
}

func rel(elementID, start, end, relType string, props map[string]any) dbtype.Relationship {
	return dbtype.Relationship{
		ElementId:      elementID,
		StartElementId: start,
		EndElementId:   end,
		Type:           relType,
		Props:          props,
	}
}

func TestFromRecords(t *testing.T) {
	records := []*db.Record{
		{Values: []any{node("4:abc:0", []string{"Person"}, map[string]any{"born": int64(1815)}), rel("5:abc:0", "4:abc:0", "4:abc:1", "KNOWS", nil)}},
		{Values: []any{node("4:abc:1", []string{"Person"}, map[string]any{"born": int64(1791)}), nil}},
		// The same node appearing again must not duplicate.
		{Values: []any{node("4:abc:0", []string{"Person"}, map[string]any{"born": int64(1815)}), nil}},
	}

	g, err := FromRecords(records)
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("nodes = %d, want 2", g.NodeCount())
	}
	if g.RelationshipCount() != 1 {
		t.Errorf("relationships = %d, want 1", g.RelationshipCount())
	}

	want := gdl.MustParse("(a:Person { born: 1815 })-[:KNOWS]->(b:Person { born: 1791 })")
	equal, err := canonical.Equal(g, want)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		form, _ := canonical.Canonicalize(g)
		t.Errorf("materialized graph differs from fixture:\n%s", form)
	}
}

func TestFromRecordsDeduplicatesRelationships(t *testing.T) {
	r := rel("5:abc:0", "4:abc:0", "4:abc:0", "LOOP", nil)
	records := []*db.Record{
		{Values: []any{node("4:abc:0", nil, nil), r}},
		{Values: []any{node("4:abc:0", nil, nil), r}},
	}

	g, err := FromRecords(records)
	if err != nil {
		t.Fatal(err)
	}
	if g.RelationshipCount() != 1 {
		t.Errorf("relationships = %d, want 1 after element-ID dedup", g.RelationshipCount())
	}
}

func TestFromRecordsPath(t *testing.T) {
	p := dbtype.Path{
		Nodes: []dbtype.Node{
			node("n0", []string{"A"}, nil),
			node("n1", []string{"B"}, nil),
		},
		Relationships: []dbtype.Relationship{
			rel("r0", "n0", "n1", "REL", map[string]any{"w": int64(1)}),
		},
	}

	g, err := FromRecords([]*db.Record{{Values: []any{p}}})
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 2 || g.RelationshipCount() != 1 {
		t.Errorf("nodes=%d rels=%d, want 2/1", g.NodeCount(), g.RelationshipCount())
	}
}

func TestFromRecordsDanglingEndpoint(t *testing.T) {
	records := []*db.Record{
		{Values: []any{node("n0", nil, nil), rel("r0", "n0", "ghost", "REL", nil)}},
	}

	_, err := FromRecords(records)
	if !errors.Is(err, graph.ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
}

// fakeRunner returns a canned result without a database.
type fakeRunner struct {
	query  string
	result *neo4j.EagerResult
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	f.query = query
	return f.result, f.err
}

func TestFetch(t *testing.T) {
	runner := &fakeRunner{
		result: &neo4j.EagerResult{
			Records: []*db.Record{{Values: []any{node("n0", []string{"A"}, nil), nil}}},
		},
	}

	g, err := Fetch(context.Background(), runner, "", nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if runner.query != DefaultQuery {
		t.Errorf("query = %q, want DefaultQuery", runner.query)
	}
	if g.NodeCount() != 1 {
		t.Errorf("nodes = %d, want 1", g.NodeCount())
	}
}

func TestFetchError(t *testing.T) {
	wantErr := errors.New("connection refused")
	_, err := Fetch(context.Background(), &fakeRunner{err: wantErr}, "", nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
