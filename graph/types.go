package graph

import "strings"

// Graph is a queryable view of the requirement relationships a tagged
// script declares. It supports bidirectional traversal (requirements
// and requirers) and renders to JSON, DOT, and text for tooling.
type Graph struct {
	// Tags contains all nodes in the graph, keyed by tag name.
	Tags map[string]*Node
}

// Node represents one tag in the requirement graph.
type Node struct {
	// Name uniquely identifies the tag.
	Name string

	// Description is the tag's human-readable description, when known.
	Description string

	// Link is the URL of the tag's external source, when it has one.
	Link string

	// Size is the tag's measured byte cost. Zero when unmeasured.
	Size int

	// Missing is true for a tag that appears in some requirement list
	// but was never defined itself. Missing nodes keep traversal total:
	// every edge in the graph points at a node that exists.
	Missing bool

	// Requires are the direct requirement edges, in declaration order,
	// duplicate free.
	Requires []string

	// RequiredBy are the reverse edges, in natural name order.
	RequiredBy []string
}

// Explanation describes why a tag is part of the graph.
type Explanation struct {
	// Tag is the tag being explained.
	Tag string

	// Node is the tag's graph node.
	Node *Node

	// Chains shows all requirement paths from root tags to this tag.
	Chains []RequirementChain
}

// RequirementChain is a path of requirement edges from a root tag to a
// target.
type RequirementChain struct {
	// Path is the sequence of tag names from root to target.
	Path []string
}

// String returns a human-readable representation of the chain.
func (c RequirementChain) String() string {
	return strings.Join(c.Path, " -> ")
}

// GraphStats provides statistics about the graph.
type GraphStats struct {
	// Tags is the total number of tags in the graph, missing
	// placeholders included.
	Tags int

	// Requirements is the total number of requirement edges.
	Requirements int

	// Roots is the number of tags nothing requires.
	Roots int

	// Leaves is the number of tags requiring nothing.
	Leaves int

	// MaxDepth is the longest requirement chain from any root.
	MaxDepth int

	// Linked is the number of tags with an external source.
	Linked int

	// Missing is the number of required-but-never-defined tags.
	Missing int
}
