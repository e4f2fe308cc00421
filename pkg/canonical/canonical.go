package canonical

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/grapheq/grapheq/pkg/graph"
)

// Canonicalize computes the canonical form of a graph: one record per
// node, lexicographically sorted and newline-joined. The result is a
// pure function of graph content - node identifiers and all enumeration
// orders are factored out. The input graph is never mutated.
//
// If a relationship references a node identifier absent from the node
// enumeration, the returned error wraps [graph.ErrNodeNotFound]; this
// signals a malformed backing representation.
func Canonicalize(g graph.Graph) (string, error) {
	sigs := signatures(g)

	outgoing := make(map[string][]string)
	incoming := make(map[string][]string)

	for source := range g.Nodes() {
		sourceSig := sigs[source]
		for rel := range g.OutgoingRelationships(source) {
			targetSig, ok := sigs[rel.Node]
			if !ok {
				return "", fmt.Errorf("relationship target %q: %w", rel.Node, graph.ErrNodeNotFound)
			}

			props := propertyBlock(rel.Properties)
			outgoing[source] = append(outgoing[source],
				fmt.Sprintf("()-[:%s %s]->%s", rel.Type, props, targetSig))
			incoming[rel.Node] = append(incoming[rel.Node],
				fmt.Sprintf("()<-[:%s %s]-%s", rel.Type, props, sourceSig))
		}
	}

	records := make([]string, 0, len(sigs))
	for id, sig := range sigs {
		records = append(records, fmt.Sprintf("%s => out: %s in: %s",
			sig, joinSorted(outgoing[id]), joinSorted(incoming[id])))
	}

	slices.Sort(records)
	return strings.Join(records, "\n"), nil
}

// Equal reports whether two graphs are structurally equal: same nodes
// with the same labels and properties, same relationships with the same
// types and properties, independent of identifier naming and enumeration
// order. The two graphs may be different concrete representations.
func Equal(left, right graph.Graph) (bool, error) {
	l, err := Canonicalize(left)
	if err != nil {
		return false, fmt.Errorf("left graph: %w", err)
	}
	r, err := Canonicalize(right)
	if err != nil {
		return false, fmt.Errorf("right graph: %w", err)
	}
	return l == r, nil
}

// signatures computes the per-node content signature table. A signature
// depends only on a node's own labels and properties:
// "(" + sorted deduplicated labels as ":Label" + " " + property block + ")".
func signatures(g graph.Graph) map[string]string {
	sigs := make(map[string]string)
	for id := range g.Nodes() {
		labels := slices.Sorted(g.NodeLabels(id))
		labels = slices.Compact(labels)

		var b strings.Builder
		for _, label := range labels {
			b.WriteByte(':')
			b.WriteString(label)
		}

		sigs[id] = fmt.Sprintf("(%s %s)", b.String(), propertyBlock(g.NodeProperties(id)))
	}
	return sigs
}

// propertyBlock renders a property mapping as "{ k1: v1, k2: v2 }" with
// entries sorted by their rendered "key: value" string and exact
// duplicates collapsed. An empty mapping renders as the empty string.
func propertyBlock(props iter.Seq2[string, graph.Value]) string {
	if props == nil {
		return ""
	}
	var entries []string
	for k, v := range props {
		entries = append(entries, k+": "+graph.FormatValue(v))
	}
	if len(entries) == 0 {
		return ""
	}

	slices.Sort(entries)
	entries = slices.Compact(entries)
	return "{ " + strings.Join(entries, ", ") + " }"
}

// joinSorted sorts adjacency entries and joins them with ", ". Entries
// are not deduplicated: parallel relationships with identical rendered
// strings must all appear to preserve multiset cardinality.
func joinSorted(entries []string) string {
	slices.Sort(entries)
	return strings.Join(entries, ", ")
}
