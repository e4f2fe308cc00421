// Package canonical turns property graphs into a single deterministic
// string and compares graphs through it.
//
// # Canonical Form
//
// [Canonicalize] renders a graph to a form that is invariant under node
// identifier renaming, label and property reordering, and parallel-edge
// reordering, while staying sensitive to any real structural or data
// difference. The form is assembled bottom-up:
//
//   - Each node gets a signature computed from its own labels and
//     properties only: "(:A:B { k: v, ... })". Two nodes with the same
//     label set and property set share a signature regardless of
//     identity.
//   - Each relationship contributes one outgoing entry to its source
//     node, "()-[:TYPE {props}]->TargetSignature", and one incoming
//     entry to its target node, "()<-[:TYPE {props}]-SourceSignature".
//     Neighbors are referenced by signature, never by identifier, which
//     is what makes the form renaming-invariant.
//   - Each node becomes a record "Signature => out: ... in: ..." with
//     both adjacency lists sorted and comma-joined, and the full record
//     set is sorted and newline-joined.
//
// The result is useful standalone as a diffable failure message in
// tests; [Equal] is the all-or-nothing comparison on top of it.
//
// # Limits
//
// This is not a graph-isomorphism solver. Adjacency is attributed by
// node-content signature, not by a refinement fixed point, so two
// distinct nodes with identical labels and properties are distinguished
// only by the multiset of their adjacency strings. Sufficiently
// symmetric graphs with colliding signatures can in principle defeat the
// heuristic; for test fixtures with meaningful node data it is exact.
package canonical
