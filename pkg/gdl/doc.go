// Package gdl parses a small graph description language into in-memory
// property graphs. It exists so test suites can write fixtures as text
// instead of builder calls:
//
//	g, err := gdl.Parse("(a:Person { name: 'Ada' })-[:KNOWS]->(b:Person)")
//
// # Language
//
// A description is a comma-separated list of paths. A path is a node
// followed by zero or more relationship/node pairs:
//
//	(a)                               node with variable a
//	(a:Label1:Label2)                 labels
//	(a { answer: 42, pi: 3.14 })      properties
//	()                                anonymous node
//	(a)-->(b)                         untyped relationship
//	(a)-[:TYPE { w: 1 }]->(b)         typed relationship with properties
//	(a)<--(b), (a)<-[:TYPE]-(b)       reversed direction
//
// Property values are integers, floats, single- or double-quoted
// strings, and the booleans true and false. Repeating a variable refers
// to the same node; labels and properties may only be declared at its
// first mention. Anonymous nodes are distinct from each other and get
// hidden generated identifiers.
//
// The language is a front end only: it produces a [*graph.Memory] and
// has no say in how graphs are compared.
package gdl
