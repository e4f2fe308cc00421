// Package neo4jsource materializes Neo4j query results into in-memory
// property graphs, so a database state can be compared against a fixture
// with the canonical-form machinery.
//
// The adapter is read-only and eager: the query result is fully buffered
// and converted, and the resulting [*graph.Memory] has no further
// connection to the database. Element IDs serve as node identifiers;
// they are opaque to canonicalization and never appear in canonical
// output.
package neo4jsource

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/grapheq/grapheq/pkg/graph"
	"github.com/grapheq/grapheq/pkg/observability"
)

// DefaultQuery extracts every node and every relationship. Rows carry a
// node and, when present, one of its outgoing relationships.
const DefaultQuery = "MATCH (n) OPTIONAL MATCH (n)-[r]->() RETURN n, r"

// DBRunner abstracts the execution of a Cypher query, allowing for
// different drivers or mocking in tests.
type DBRunner interface {
	// Run executes a Cypher query with parameters and returns a
	// fully-buffered result.
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Executor implements DBRunner on the official Neo4j Go driver.
type Executor struct {
	Driver neo4j.DriverWithContext
	DBName string
}

// NewExecutor creates an Executor for the given connection parameters.
func NewExecutor(uri, username, password, dbName string) (*Executor, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create Neo4j driver: %w", err)
	}
	return &Executor{Driver: driver, DBName: dbName}, nil
}

// Run executes a Cypher query through neo4j.ExecuteQuery, which handles
// session and transaction management.
func (e *Executor) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		e.Driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(e.DBName),
	)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	return result, nil
}

// Close releases the underlying driver.
func (e *Executor) Close(ctx context.Context) error {
	return e.Driver.Close(ctx)
}

// Fetch runs query against the database and materializes the result.
// An empty query falls back to [DefaultQuery].
func Fetch(ctx context.Context, runner DBRunner, query string, params map[string]any) (*graph.Memory, error) {
	if query == "" {
		query = DefaultQuery
	}
	observability.Source().OnFetchStart(ctx, "neo4j")
	start := time.Now()
	result, err := runner.Run(ctx, query, params)
	if err != nil {
		observability.Source().OnFetchComplete(ctx, "neo4j", 0, 0, time.Since(start), err)
		return nil, err
	}
	g, err := FromRecords(result.Records)
	if err != nil {
		observability.Source().OnFetchComplete(ctx, "neo4j", 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Source().OnFetchComplete(ctx, "neo4j", g.NodeCount(), g.RelationshipCount(), time.Since(start), nil)
	return g, nil
}

// FromRecords converts buffered query records into an in-memory graph.
// Node, Relationship, and Path values are collected; everything else in
// a record is ignored. Nodes and relationships appearing in multiple
// records are deduplicated by element ID. A relationship whose endpoint
// node is absent from the result yields an error wrapping
// [graph.ErrNodeNotFound].
func FromRecords(records []*db.Record) (*graph.Memory, error) {
	g := graph.New()
	seenRels := make(map[string]bool)

	var rels []dbtype.Relationship
	collect := func(v any) {
		switch v := v.(type) {
		case dbtype.Node:
			addNode(g, v)
		case dbtype.Relationship:
			rels = append(rels, v)
		case dbtype.Path:
			for _, n := range v.Nodes {
				addNode(g, n)
			}
			rels = append(rels, v.Relationships...)
		}
	}

	for _, record := range records {
		if record == nil {
			continue
		}
		for _, value := range record.Values {
			collect(value)
		}
	}

	for _, rel := range rels {
		if seenRels[rel.ElementId] {
			continue
		}
		seenRels[rel.ElementId] = true
		if err := g.AddRelationship(rel.StartElementId, rel.EndElementId, rel.Type, toProperties(rel.Props)); err != nil {
			return nil, fmt.Errorf("relationship %s: %w", rel.ElementId, err)
		}
	}

	return g, nil
}

func addNode(g *graph.Memory, n dbtype.Node) {
	if g.HasNode(n.ElementId) {
		return
	}
	// AddNode only fails for empty or duplicate IDs; both are excluded here.
	_ = g.AddNode(n.ElementId, n.Labels, toProperties(n.Props))
}

// toProperties copies driver property maps into the graph's Properties
// type; map[string]any is not convertible to it directly.
func toProperties(in map[string]any) graph.Properties {
	if in == nil {
		return nil
	}
	props := make(graph.Properties, len(in))
	for k, v := range in {
		props[k] = v
	}
	return props
}
