// Package graphjson serializes property graphs to and from JSON.
//
// The format is the interchange surface of the tool: graphs can be
// stored as test fixtures, piped between commands, and posted to the
// diff service. It is human-readable and round-trip faithful:
//
//	{
//	  "nodes": [
//	    {"id": "a", "labels": ["Person"], "properties": {"born": 1815}}
//	  ],
//	  "relationships": [
//	    {"source": "a", "target": "b", "type": "KNOWS", "properties": {}}
//	  ]
//	}
//
// Numbers decode as int64 when integral and float64 otherwise, matching
// the value model of [pkg/graph]; integral floats are written with a
// decimal point ("42.0") so the distinction survives the trip, and a
// fixture written from an in-memory graph compares equal to the graph
// it came from.
package graphjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/grapheq/grapheq/pkg/graph"
)

// =============================================================================
// Wire Types
// =============================================================================

// Graph is the JSON shape of a property graph.
type Graph struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// Node is one serialized node.
type Node struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Relationship is one serialized directed relationship. Type is empty
// for untyped relationships.
type Relationship struct {
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Type       string         `json:"type,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal converts a graph to JSON bytes. Nodes are sorted by ID for
// deterministic output; relationship order follows the source graph.
func Marshal(g graph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a graph as indented JSON to w.
func Write(g graph.Graph, w io.Writer) error {
	out := fromGraph(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a graph to a JSON file with 0644 permissions.
func WriteFile(g graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a JSON graph from r into an in-memory graph.
// A relationship referencing an undeclared node yields an error wrapping
// [graph.ErrNodeNotFound].
func Read(r io.Reader) (*graph.Memory, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data Graph
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToMemory(data)
}

// ReadFile reads a JSON file and returns the decoded in-memory graph.
func ReadFile(path string) (*graph.Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Unmarshal decodes JSON bytes into an in-memory graph.
func Unmarshal(data []byte) (*graph.Memory, error) {
	return Read(bytes.NewReader(data))
}

// =============================================================================
// Conversion
// =============================================================================

// ToMemory converts the wire shape into an in-memory graph.
func ToMemory(data Graph) (*graph.Memory, error) {
	g := graph.New()
	for _, n := range data.Nodes {
		if err := g.AddNode(n.ID, n.Labels, decodeProperties(n.Properties)); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, rel := range data.Relationships {
		if err := g.AddRelationship(rel.Source, rel.Target, rel.Type, decodeProperties(rel.Properties)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func fromGraph(g graph.Graph) Graph {
	out := Graph{Nodes: []Node{}, Relationships: []Relationship{}}

	for id := range g.Nodes() {
		node := Node{ID: id, Labels: slices.Collect(g.NodeLabels(id))}
		for k, v := range g.NodeProperties(id) {
			if node.Properties == nil {
				node.Properties = make(map[string]any)
			}
			node.Properties[k] = encodeValue(v)
		}
		out.Nodes = append(out.Nodes, node)
	}

	slices.SortFunc(out.Nodes, func(a, b Node) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	for id := range g.Nodes() {
		for rel := range g.OutgoingRelationships(id) {
			r := Relationship{Source: id, Target: rel.Node, Type: rel.Type}
			if rel.Properties != nil {
				for k, v := range rel.Properties {
					if r.Properties == nil {
						r.Properties = make(map[string]any)
					}
					r.Properties[k] = encodeValue(v)
				}
			}
			out.Relationships = append(out.Relationships, r)
		}
	}

	return out
}

// encodeValue keeps the int64/float64 distinction across the wire.
// Floats with an integral value are emitted with a decimal point
// ("42.0" rather than "42"), so decoding restores them as float64.
func encodeValue(v graph.Value) any {
	switch v := v.(type) {
	case float64:
		return floatNumber(v)
	case float32:
		return floatNumber(float64(v))
	default:
		return v
	}
}

func floatNumber(f float64) json.Number {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return json.Number(s)
}

// decodeProperties maps decoded JSON values onto the graph value model:
// json.Number becomes int64 when integral, float64 otherwise.
func decodeProperties(in map[string]any) graph.Properties {
	if in == nil {
		return nil
	}
	props := make(graph.Properties, len(in))
	for k, v := range in {
		props[k] = decodeValue(v)
	}
	return props
}

func decodeValue(v any) graph.Value {
	num, ok := v.(json.Number)
	if !ok {
		return v
	}
	if n, err := num.Int64(); err == nil {
		return n
	}
	if f, err := num.Float64(); err == nil {
		return f
	}
	return num.String()
}
