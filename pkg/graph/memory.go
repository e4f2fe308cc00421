package graph

import (
	"fmt"
	"iter"
	"maps"
)

// Memory is an in-memory property multigraph. Nodes and relationships
// iterate in insertion order; parallel relationships and self-loops are
// preserved as distinct entries.
//
// The zero value is not usable - use [New]. Memory is not safe for
// concurrent mutation; concurrent reads are fine once construction is
// complete.
type Memory struct {
	order []string
	nodes map[string]*memoryNode
	rels  []memoryRel
}

type memoryNode struct {
	labels []string
	props  Properties
}

type memoryRel struct {
	source  string
	target  string
	relType string
	props   Properties
}

// New creates an empty in-memory graph.
func New() *Memory {
	return &Memory{nodes: make(map[string]*memoryNode)}
}

// AddNode adds a node with the given labels and properties.
// Labels and props may be nil. The maps and slices are copied, so the
// caller may reuse them. Returns [ErrInvalidNodeID] for an empty id and
// [ErrDuplicateNodeID] if the id is already present.
func (m *Memory) AddNode(id string, labels []string, props Properties) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, ok := m.nodes[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNodeID, id)
	}
	node := &memoryNode{
		labels: append([]string(nil), labels...),
		props:  maps.Clone(props),
	}
	m.nodes[id] = node
	m.order = append(m.order, id)
	return nil
}

// AddRelationship adds a directed relationship from source to target.
// relType may be empty (untyped relationship) and props may be nil.
// Both endpoints must already exist; otherwise the error wraps
// [ErrNodeNotFound] with the offending identifier.
func (m *Memory) AddRelationship(source, target, relType string, props Properties) error {
	if _, ok := m.nodes[source]; !ok {
		return fmt.Errorf("relationship source %q: %w", source, ErrNodeNotFound)
	}
	if _, ok := m.nodes[target]; !ok {
		return fmt.Errorf("relationship target %q: %w", target, ErrNodeNotFound)
	}
	m.rels = append(m.rels, memoryRel{
		source:  source,
		target:  target,
		relType: relType,
		props:   maps.Clone(props),
	})
	return nil
}

// NodeCount returns the number of nodes.
func (m *Memory) NodeCount() int { return len(m.nodes) }

// RelationshipCount returns the number of relationships, counting
// parallel relationships individually.
func (m *Memory) RelationshipCount() int { return len(m.rels) }

// HasNode reports whether a node with the given id exists.
func (m *Memory) HasNode(id string) bool {
	_, ok := m.nodes[id]
	return ok
}

// Nodes enumerates node identifiers in insertion order.
func (m *Memory) Nodes() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, id := range m.order {
			if !yield(id) {
				return
			}
		}
	}
}

// NodeLabels enumerates a node's labels in insertion order.
// Unknown identifiers yield an empty sequence.
func (m *Memory) NodeLabels(id string) iter.Seq[string] {
	return func(yield func(string) bool) {
		node, ok := m.nodes[id]
		if !ok {
			return
		}
		for _, label := range node.labels {
			if !yield(label) {
				return
			}
		}
	}
}

// NodeProperties enumerates a node's property entries in map order.
// Unknown identifiers yield an empty sequence.
func (m *Memory) NodeProperties(id string) iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		node, ok := m.nodes[id]
		if !ok {
			return
		}
		for k, v := range node.props {
			if !yield(k, v) {
				return
			}
		}
	}
}

// OutgoingRelationships enumerates relationships whose source is id.
func (m *Memory) OutgoingRelationships(id string) iter.Seq[Relationship] {
	return func(yield func(Relationship) bool) {
		for _, rel := range m.rels {
			if rel.source != id {
				continue
			}
			if !yield(Relationship{Node: rel.target, Type: rel.relType, Properties: propertySeq(rel.props)}) {
				return
			}
		}
	}
}

// IncomingRelationships enumerates relationships whose target is id.
func (m *Memory) IncomingRelationships(id string) iter.Seq[Relationship] {
	return func(yield func(Relationship) bool) {
		for _, rel := range m.rels {
			if rel.target != id {
				continue
			}
			if !yield(Relationship{Node: rel.source, Type: rel.relType, Properties: propertySeq(rel.props)}) {
				return
			}
		}
	}
}

func propertySeq(props Properties) iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for k, v := range props {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Ensure Memory implements Graph.
var _ Graph = (*Memory)(nil)
