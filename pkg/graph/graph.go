package graph

import (
	"errors"
	"iter"
)

// Sentinel errors for graph construction and navigation.
var (
	// ErrNodeNotFound is returned when a relationship references a node
	// identifier that has no corresponding node in the node enumeration.
	// It indicates a malformed backing graph, not a property of the
	// comparison algorithm, and is never retried or silently ignored.
	ErrNodeNotFound = errors.New("node not found")

	// ErrInvalidNodeID is returned by [Memory.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Memory.AddNode] when a node with
	// the same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// Value is a property value attached to a node or relationship.
// Supported dynamic types are int64, float64, bool, and string; other
// types render through their default formatting. See [FormatValue].
type Value any

// Properties is a property mapping rendered into canonical property
// blocks. Keys are unique per node or relationship.
type Properties map[string]Value

// Relationship describes one directed, typed, property-bearing edge as
// seen from one of its endpoints. For outgoing relationships Node is the
// target identifier; for incoming relationships it is the source.
// An absent relationship type is the empty string.
type Relationship struct {
	Node       string
	Type       string
	Properties iter.Seq2[string, Value]
}

// Graph is the capability interface a concrete graph representation must
// satisfy to be comparable. Implementations must be read-only for the
// duration of a canonicalization call and must produce a fresh sequence
// on every method invocation. Each node identifier appears exactly once
// in Nodes; label and property order is irrelevant (the consumer sorts).
type Graph interface {
	// Nodes enumerates all node identifiers.
	Nodes() iter.Seq[string]

	// NodeLabels enumerates the labels of a node. Duplicates are allowed
	// and deduplicated by the consumer.
	NodeLabels(id string) iter.Seq[string]

	// NodeProperties enumerates the property entries of a node.
	NodeProperties(id string) iter.Seq2[string, Value]

	// OutgoingRelationships enumerates every relationship whose source is
	// id. Parallel relationships appear as distinct entries.
	OutgoingRelationships(id string) iter.Seq[Relationship]

	// IncomingRelationships enumerates every relationship whose target is
	// id, symmetric to OutgoingRelationships.
	IncomingRelationships(id string) iter.Seq[Relationship]
}
