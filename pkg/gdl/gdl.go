package gdl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/grapheq/grapheq/pkg/graph"
)

// ParseError describes a syntax or semantic error in a graph
// description, with the byte offset where parsing stopped.
type ParseError struct {
	Offset int
	Msg    string
}

// Error returns the formatted parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("gdl: %s at offset %d", e.Msg, e.Offset)
}

// Parse parses a graph description and returns the resulting in-memory
// graph. Node iteration order is first-mention order and relationship
// order is text order, though neither is observable through the
// canonical form.
func Parse(src string) (*graph.Memory, error) {
	p := &parser{src: src, nodes: make(map[string]*nodeSpec)}
	if err := p.parseGraph(); err != nil {
		return nil, err
	}
	return p.build()
}

// MustParse is like [Parse] but panics on error. Intended for test
// fixtures and package examples where the description is a literal.
func MustParse(src string) *graph.Memory {
	g, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return g
}

// =============================================================================
// Parser
// =============================================================================

type nodeSpec struct {
	labels []string
	props  graph.Properties
}

type relSpec struct {
	source  string
	target  string
	relType string
	props   graph.Properties
}

type parser struct {
	src   string
	pos   int
	nodes map[string]*nodeSpec
	order []string
	rels  []relSpec
}

func (p *parser) build() (*graph.Memory, error) {
	g := graph.New()
	for _, id := range p.order {
		spec := p.nodes[id]
		if err := g.AddNode(id, spec.labels, spec.props); err != nil {
			return nil, err
		}
	}
	for _, rel := range p.rels {
		if err := g.AddRelationship(rel.source, rel.target, rel.relType, rel.props); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// parseGraph parses a comma-separated list of paths until end of input.
func (p *parser) parseGraph() error {
	p.skipSpace()
	if p.eof() {
		return nil
	}
	for {
		if err := p.parsePath(); err != nil {
			return err
		}
		p.skipSpace()
		if p.eof() {
			return nil
		}
		if !p.consume(',') {
			return p.errorf("expected ',' or end of input, got %q", p.rest())
		}
	}
}

// parsePath parses a node followed by zero or more relationship/node pairs.
func (p *parser) parsePath() error {
	current, err := p.parseNode()
	if err != nil {
		return err
	}
	for {
		p.skipSpace()
		if p.eof() || (p.peek() != '-' && p.peek() != '<') {
			return nil
		}
		incoming, relType, props, err := p.parseRelationship()
		if err != nil {
			return err
		}
		next, err := p.parseNode()
		if err != nil {
			return err
		}
		rel := relSpec{source: current, target: next, relType: relType, props: props}
		if incoming {
			rel.source, rel.target = next, current
		}
		p.rels = append(p.rels, rel)
		current = next
	}
}

// parseNode parses "(var:Label {props})" and registers the node.
// Returns the node's identifier (generated for anonymous nodes).
func (p *parser) parseNode() (string, error) {
	p.skipSpace()
	if !p.consume('(') {
		return "", p.errorf("expected '(', got %q", p.rest())
	}

	p.skipSpace()
	variable := p.parseIdent()

	var labels []string
	for {
		p.skipSpace()
		if !p.consume(':') {
			break
		}
		p.skipSpace()
		label := p.parseIdent()
		if label == "" {
			return "", p.errorf("expected label after ':'")
		}
		labels = append(labels, label)
	}

	props, err := p.parsePropertyMap()
	if err != nil {
		return "", err
	}

	p.skipSpace()
	if !p.consume(')') {
		return "", p.errorf("expected ')', got %q", p.rest())
	}

	if variable == "" {
		// Anonymous nodes are all distinct. The identifier is hidden;
		// renaming invariance makes the choice unobservable.
		variable = "__anon_" + uuid.NewString()
	} else if _, seen := p.nodes[variable]; seen {
		if len(labels) > 0 || len(props) > 0 {
			return "", p.errorf("node %q already declared; later mentions must be bare", variable)
		}
		return variable, nil
	}

	p.nodes[variable] = &nodeSpec{labels: labels, props: props}
	p.order = append(p.order, variable)
	return variable, nil
}

// parseRelationship parses "-->", "-[..]->", "<--", or "<-[..]-".
// incoming is true for the reversed forms.
func (p *parser) parseRelationship() (incoming bool, relType string, props graph.Properties, err error) {
	p.skipSpace()
	switch {
	case p.consumeString("<-"):
		incoming = true
	case p.consume('-'):
	default:
		return false, "", nil, p.errorf("expected relationship, got %q", p.rest())
	}

	if p.peek() == '[' {
		relType, props, err = p.parseRelationshipDetail()
		if err != nil {
			return false, "", nil, err
		}
	}

	if incoming {
		if !p.consume('-') {
			return false, "", nil, p.errorf("expected '-' closing incoming relationship, got %q", p.rest())
		}
	} else {
		if !p.consumeString("->") {
			return false, "", nil, p.errorf("expected '->' closing outgoing relationship, got %q", p.rest())
		}
	}
	return incoming, relType, props, nil
}

// parseRelationshipDetail parses "[var:TYPE {props}]". The variable is
// accepted and discarded; relationships are anonymous in the model.
func (p *parser) parseRelationshipDetail() (string, graph.Properties, error) {
	if !p.consume('[') {
		return "", nil, p.errorf("expected '[', got %q", p.rest())
	}

	p.skipSpace()
	p.parseIdent() // optional relationship variable

	var relType string
	p.skipSpace()
	if p.consume(':') {
		p.skipSpace()
		relType = p.parseIdent()
		if relType == "" {
			return "", nil, p.errorf("expected relationship type after ':'")
		}
	}

	props, err := p.parsePropertyMap()
	if err != nil {
		return "", nil, err
	}

	p.skipSpace()
	if !p.consume(']') {
		return "", nil, p.errorf("expected ']', got %q", p.rest())
	}
	return relType, props, nil
}

// parsePropertyMap parses "{ key: value, ... }" or nothing.
func (p *parser) parsePropertyMap() (graph.Properties, error) {
	p.skipSpace()
	if !p.consume('{') {
		return nil, nil
	}

	props := graph.Properties{}
	p.skipSpace()
	if p.consume('}') {
		return props, nil
	}

	for {
		p.skipSpace()
		key := p.parseIdent()
		if key == "" {
			return nil, p.errorf("expected property key, got %q", p.rest())
		}
		p.skipSpace()
		if !p.consume(':') {
			return nil, p.errorf("expected ':' after property key %q", key)
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, dup := props[key]; dup {
			return nil, p.errorf("duplicate property key %q", key)
		}
		props[key] = value

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume('}') {
			return props, nil
		}
		return nil, p.errorf("expected ',' or '}' in property map, got %q", p.rest())
	}
}

// parseValue parses an integer, float, quoted string, or boolean.
func (p *parser) parseValue() (graph.Value, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("expected property value")
	}

	switch c := p.peek(); {
	case c == '\'' || c == '"':
		return p.parseQuoted(c)
	case c == '-' || c == '+' || isDigit(c):
		return p.parseNumber()
	default:
		ident := p.parseIdent()
		switch ident {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, p.errorf("invalid property value %q", ident)
	}
}

func (p *parser) parseQuoted(quote byte) (graph.Value, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case quote:
			return b.String(), nil
		case '\\':
			if p.eof() {
				return nil, p.errorf("unterminated escape in string")
			}
			b.WriteByte(p.src[p.pos])
			p.pos++
		default:
			b.WriteByte(c)
		}
	}
	return nil, p.errorf("unterminated string")
}

func (p *parser) parseNumber() (graph.Value, error) {
	start := p.pos
	if p.peek() == '-' || p.peek() == '+' {
		p.pos++
	}
	isFloat := false
	for !p.eof() {
		c := p.src[p.pos]
		if isDigit(c) {
			p.pos++
			continue
		}
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
			p.pos++
			if (c == 'e' || c == 'E') && !p.eof() && (p.peek() == '-' || p.peek() == '+') {
				p.pos++
			}
			continue
		}
		break
	}

	text := p.src[start:p.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf("invalid float %q", text)
		}
		return f, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, p.errorf("invalid integer %q", text)
	}
	return n, nil
}

// =============================================================================
// Scanning Helpers
// =============================================================================

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) consume(c byte) bool {
	if !p.eof() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) consumeString(s string) bool {
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// parseIdent consumes an identifier ([A-Za-z_][A-Za-z0-9_]*) and returns
// it, or the empty string if the input does not start with one.
func (p *parser) parseIdent() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if isAlpha(c) || c == '_' || (p.pos > start && isDigit(c)) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// rest returns a short prefix of the unparsed input for error messages.
func (p *parser) rest() string {
	const window = 12
	rest := p.src[p.pos:]
	if len(rest) > window {
		rest = rest[:window] + "..."
	}
	if rest == "" {
		rest = "end of input"
	}
	return rest
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
