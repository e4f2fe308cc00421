// Package graph defines the capability interface a property-graph
// representation must expose to be canonicalized, together with an
// in-memory implementation used by the GDL front end and the data
// source adapters.
//
// # Capability Interface
//
// [Graph] is the minimal read-only contract: enumerate node identifiers,
// a node's labels, a node's properties, and a node's outgoing and
// incoming relationships. Identifiers are opaque strings that only serve
// to navigate the source graph; they never appear in canonical output.
// Any backing representation (a GDL parse result, a JSON fixture, a
// Neo4j or MongoDB query result materialized into memory) can be
// compared as long as it satisfies this interface.
//
// All sequences are Go iterators ([iter.Seq], [iter.Seq2]). A fresh
// sequence is produced per call and every sequence is finite. Consumers
// are expected to materialize what they need; laziness is an
// optimization, not part of the contract.
//
// # In-Memory Graphs
//
// [Memory] is the reference implementation: an insertion-ordered
// multigraph supporting parallel relationships and self-loops. Build one
// with [New], [Memory.AddNode], and [Memory.AddRelationship]:
//
//	g := graph.New()
//	g.AddNode("a", []string{"Person"}, map[string]graph.Value{"age": int64(42)})
//	g.AddNode("b", []string{"Person"}, nil)
//	g.AddRelationship("a", "b", "KNOWS", nil)
//
// # Value Rendering
//
// Canonical forms are compared textually, so every property value must
// render through one fixed, deterministic representation. [FormatValue]
// is that representation; it is the only value formatter used anywhere
// a property appears, on nodes and relationships alike.
package graph
