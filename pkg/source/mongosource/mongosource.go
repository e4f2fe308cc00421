// Package mongosource loads property graphs stored as MongoDB
// collections into memory for comparison. The expected layout is one
// collection of node documents and one of relationship documents:
//
//	nodes:         {"_id": "a", "labels": ["Person"], "properties": {"born": 1815}}
//	relationships: {"source": "a", "target": "b", "type": "KNOWS", "properties": {}}
//
// Like the other adapters, the result is a detached [*graph.Memory];
// nothing is written back.
package mongosource

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/grapheq/grapheq/pkg/graph"
	"github.com/grapheq/grapheq/pkg/observability"
)

// Default collection names.
const (
	DefaultNodeCollection         = "nodes"
	DefaultRelationshipCollection = "relationships"
)

// NodeDoc is the BSON shape of one stored node.
type NodeDoc struct {
	ID         string         `bson:"_id"`
	Labels     []string       `bson:"labels,omitempty"`
	Properties map[string]any `bson:"properties,omitempty"`
}

// RelationshipDoc is the BSON shape of one stored relationship.
type RelationshipDoc struct {
	Source     string         `bson:"source"`
	Target     string         `bson:"target"`
	Type       string         `bson:"type,omitempty"`
	Properties map[string]any `bson:"properties,omitempty"`
}

// Load reads both collections and materializes the graph. Empty
// collection names fall back to the defaults.
func Load(ctx context.Context, db *mongo.Database, nodeColl, relColl string) (*graph.Memory, error) {
	observability.Source().OnFetchStart(ctx, "mongodb")
	start := time.Now()
	g, err := load(ctx, db, nodeColl, relColl)
	if err != nil {
		observability.Source().OnFetchComplete(ctx, "mongodb", 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Source().OnFetchComplete(ctx, "mongodb", g.NodeCount(), g.RelationshipCount(), time.Since(start), nil)
	return g, nil
}

func load(ctx context.Context, db *mongo.Database, nodeColl, relColl string) (*graph.Memory, error) {
	if nodeColl == "" {
		nodeColl = DefaultNodeCollection
	}
	if relColl == "" {
		relColl = DefaultRelationshipCollection
	}

	cur, err := db.Collection(nodeColl).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find nodes: %w", err)
	}
	var nodes []NodeDoc
	if err := cur.All(ctx, &nodes); err != nil {
		return nil, fmt.Errorf("decode nodes: %w", err)
	}

	cur, err = db.Collection(relColl).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find relationships: %w", err)
	}
	var rels []RelationshipDoc
	if err := cur.All(ctx, &rels); err != nil {
		return nil, fmt.Errorf("decode relationships: %w", err)
	}

	return FromDocuments(nodes, rels)
}

// FromDocuments converts decoded documents into an in-memory graph.
// A relationship referencing an unknown node yields an error wrapping
// [graph.ErrNodeNotFound].
func FromDocuments(nodes []NodeDoc, rels []RelationshipDoc) (*graph.Memory, error) {
	g := graph.New()
	for _, n := range nodes {
		if err := g.AddNode(n.ID, n.Labels, normalizeProperties(n.Properties)); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, rel := range rels {
		if err := g.AddRelationship(rel.Source, rel.Target, rel.Type, normalizeProperties(rel.Properties)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// normalizeProperties widens BSON integer types so that a graph loaded
// from MongoDB renders values identically to one built any other way.
func normalizeProperties(in map[string]any) graph.Properties {
	if in == nil {
		return nil
	}
	props := make(graph.Properties, len(in))
	for k, v := range in {
		switch v := v.(type) {
		case int32:
			props[k] = int64(v)
		case int:
			props[k] = int64(v)
		default:
			props[k] = v
		}
	}
	return props
}
