// Package render exports property graphs as Graphviz DOT and SVG so a
// failing comparison can be inspected visually. Rendering is a debugging
// surface only; canonical forms, not pictures, are the unit of
// comparison.
package render

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/grapheq/grapheq/pkg/graph"
)

// ToDOT converts a property graph to Graphviz DOT format. Node boxes
// show labels and sorted properties; edges show type and properties.
// Output is deterministic: nodes are emitted sorted by identifier.
func ToDOT(g graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	ids := slices.Sorted(g.Nodes())
	for _, id := range ids {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, nodeLabel(g, id))
	}

	buf.WriteString("\n")
	for _, id := range ids {
		for rel := range g.OutgoingRelationships(id) {
			if label := edgeLabel(rel); label != "" {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", id, rel.Node, label)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", id, rel.Node)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(g graph.Graph, id string) string {
	labels := slices.Sorted(g.NodeLabels(id))
	labels = slices.Compact(labels)

	parts := []string{id}
	if len(labels) > 0 {
		parts = append(parts, ":"+strings.Join(labels, ":"))
	}
	if props := propertyLines(g.NodeProperties(id)); len(props) > 0 {
		parts = append(parts, props...)
	}
	return strings.Join(parts, "\n")
}

func edgeLabel(rel graph.Relationship) string {
	parts := []string{}
	if rel.Type != "" {
		parts = append(parts, ":"+rel.Type)
	}
	if rel.Properties != nil {
		parts = append(parts, propertyLines(rel.Properties)...)
	}
	return strings.Join(parts, "\n")
}

func propertyLines(props iter.Seq2[string, graph.Value]) []string {
	var lines []string
	for k, v := range props {
		lines = append(lines, fmt.Sprintf("%s: %s", k, graph.FormatValue(v)))
	}
	slices.Sort(lines)
	return lines
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
