package graph

import (
	"github.com/tagware/go-utag/internal/natsort"
	"github.com/tagware/go-utag/selection"
)

// TagInfo is the input record for building graphs. Its fields mirror
// what tag definition directives carry.
type TagInfo struct {
	Name        string
	Description string
	Link        string
	Requires    []string
	Size        int
}

// Builder assembles a Graph incrementally. Feed it definitions in the
// order they are encountered; requirement names that never receive a
// definition of their own become missing placeholder nodes.
type Builder struct {
	nodes map[string]*Node
}

// NewBuilder creates a new graph builder.
func NewBuilder() *Builder {
	return &Builder{nodes: make(map[string]*Node)}
}

// AddTag records a tag definition. Repeated additions for the same
// name merge: requirements accumulate duplicate free, and the first
// non-empty description, link, and size win.
func (b *Builder) AddTag(info TagInfo) {
	node := b.define(info.Name)
	if node.Description == "" {
		node.Description = info.Description
	}
	if node.Link == "" {
		node.Link = info.Link
	}
	if node.Size == 0 {
		node.Size = info.Size
	}
	for _, req := range info.Requires {
		b.addRequirement(node, req)
	}
}

// AddRequirement records a single requirement edge. The requiring tag
// counts as defined; the required tag stays a placeholder until it is
// defined itself.
func (b *Builder) AddRequirement(name, requires string) {
	b.addRequirement(b.define(name), requires)
}

// Graph assembles the recorded definitions into a Graph. Reverse edges
// are rebuilt on every call, so a builder can keep accumulating and
// re-assemble.
func (b *Builder) Graph() *Graph {
	g := &Graph{Tags: make(map[string]*Node, len(b.nodes))}
	for name, node := range b.nodes {
		node.RequiredBy = nil
		g.Tags[name] = node
	}

	// Reverse edges, in natural source order so RequiredBy lists are
	// deterministic.
	for _, name := range g.Names() {
		for _, req := range g.Tags[name].Requires {
			reqNode := g.Tags[req]
			reqNode.RequiredBy = append(reqNode.RequiredBy, name)
		}
	}

	return g
}

// define returns the node for name, creating it when absent, and marks
// it as a defined tag.
func (b *Builder) define(name string) *Node {
	node := b.lookup(name)
	node.Missing = false
	return node
}

// lookup returns the node for name, creating a missing placeholder
// when absent.
func (b *Builder) lookup(name string) *Node {
	if node, ok := b.nodes[name]; ok {
		return node
	}
	node := &Node{Name: name, Missing: true}
	b.nodes[name] = node
	return node
}

func (b *Builder) addRequirement(node *Node, requires string) {
	for _, existing := range node.Requires {
		if existing == requires {
			return
		}
	}
	node.Requires = append(node.Requires, requires)
	b.lookup(requires)
}

// Build constructs a Graph from a tag list. This is the common entry
// point when a parsed registry is at hand.
func Build(tags []TagInfo) *Graph {
	b := NewBuilder()
	for _, tag := range tags {
		b.AddTag(tag)
	}
	return b.Graph()
}

// FromDepGraph constructs a Graph from a bare name-to-requirements
// map, the shape the selection package works on. Nodes built this way
// carry no descriptions, links, or sizes.
func FromDepGraph(deps selection.DepGraph) *Graph {
	b := NewBuilder()
	for _, name := range natsort.Sorted(namesOf(deps)) {
		b.AddTag(TagInfo{Name: name, Requires: deps[name]})
	}
	return b.Graph()
}

func namesOf(deps selection.DepGraph) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	return names
}
