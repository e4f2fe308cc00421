package graphjson

import (
	"errors"
	"strings"
	"testing"

	"github.com/grapheq/grapheq/pkg/canonical"
	"github.com/grapheq/grapheq/pkg/gdl"
	"github.com/grapheq/grapheq/pkg/graph"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"Empty", ""},
		{"Nodes", "(a:A { v: 1 }), (b:B { w: 0.5, name: 'x' })"},
		{"Relationships", "(a)-[:REL { w: 1 }]->(b), (b)-->(a)"},
		{"ParallelEdges", "(a), (b), (a)-[{w:1}]->(b), (a)-[{w:1}]->(b)"},
		{"SelfLoop", "(a:A)-[:LOOP]->(a)"},
		{"IntegralFloat", "(a:A { f: 42.0, i: 42 })-[:REL { w: 2.0 }]->(b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := gdl.MustParse(tt.src)

			data, err := Marshal(original)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			decoded, err := Unmarshal(data)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}

			equal, err := canonical.Equal(original, decoded)
			if err != nil {
				t.Fatal(err)
			}
			if !equal {
				l, _ := canonical.Canonicalize(original)
				r, _ := canonical.Canonicalize(decoded)
				t.Errorf("round trip changed the graph\nbefore:\n%s\nafter:\n%s", l, r)
			}
		})
	}
}

// Integer properties must survive the trip as integers: 42 and 42.0
// render differently in canonical forms.
func TestNumberTyping(t *testing.T) {
	data := []byte(`{
		"nodes": [{"id": "a", "properties": {"i": 42, "f": 42.0, "g": 13.37}}],
		"relationships": []
	}`)

	g, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}

	props := map[string]graph.Value{}
	for k, v := range g.NodeProperties("a") {
		props[k] = v
	}
	if props["i"] != int64(42) {
		t.Errorf("i = %#v, want int64(42)", props["i"])
	}
	if props["f"] != 42.0 {
		t.Errorf("f = %#v, want float64(42)", props["f"])
	}
	if props["g"] != 13.37 {
		t.Errorf("g = %#v, want 13.37", props["g"])
	}
}

// The distinction must also survive in the other direction: a float64
// holding an integral value is written as "42.0", not "42", so reading
// the fixture back does not turn it into an int64.
func TestMarshalIntegralFloat(t *testing.T) {
	g := graph.New()
	if err := g.AddNode("a", nil, graph.Properties{"f": 42.0, "i": int64(7)}); err != nil {
		t.Fatal(err)
	}

	data, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"f": 42.0`) {
		t.Errorf("integral float lost its decimal point:\n%s", data)
	}
	if !strings.Contains(string(data), `"i": 7`) {
		t.Errorf("integer not emitted as integer:\n%s", data)
	}

	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	equal, err := canonical.Equal(g, decoded)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		l, _ := canonical.Canonicalize(g)
		r, _ := canonical.Canonicalize(decoded)
		t.Errorf("round trip changed the graph\nbefore:\n%s\nafter:\n%s", l, r)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "DanglingTarget",
			data:    `{"nodes": [{"id": "a"}], "relationships": [{"source": "a", "target": "ghost"}]}`,
			wantErr: graph.ErrNodeNotFound,
		},
		{
			name:    "DuplicateNode",
			data:    `{"nodes": [{"id": "a"}, {"id": "a"}], "relationships": []}`,
			wantErr: graph.ErrDuplicateNodeID,
		},
		{
			name:    "EmptyNodeID",
			data:    `{"nodes": [{"id": ""}], "relationships": []}`,
			wantErr: graph.ErrInvalidNodeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("MalformedJSON", func(t *testing.T) {
		if _, err := Read(strings.NewReader("{nodes")); err == nil {
			t.Error("malformed JSON did not error")
		}
	})
}

func TestMarshalDeterministic(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"c", "a", "b"} {
		if err := g.AddNode(id, []string{"L"}, graph.Properties{"v": int64(1)}); err != nil {
			t.Fatal(err)
		}
	}

	data, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}

	// Nodes are emitted sorted by ID.
	text := string(data)
	if !(strings.Index(text, `"id": "a"`) < strings.Index(text, `"id": "b"`) &&
		strings.Index(text, `"id": "b"`) < strings.Index(text, `"id": "c"`)) {
		t.Errorf("nodes not sorted by ID:\n%s", text)
	}
}

func TestFileHelpers(t *testing.T) {
	path := t.TempDir() + "/graph.json"
	g := gdl.MustParse("(a:A)-[:REL]->(b:B)")

	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	decoded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	equal, err := canonical.Equal(g, decoded)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("file round trip changed the graph")
	}
}
