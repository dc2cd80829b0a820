package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tagware/go-utag/internal/textutil"
)

const (
	separatorWidth = 60 // Width of separator lines in text output
	dotLabelMax    = 32 // Longest description rendered into a DOT label
)

// TagRecord is one tag in the flat list output.
type TagRecord struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Link        string   `json:"link,omitempty"`
	Size        int      `json:"size,omitempty"`
	Missing     bool     `json:"missing,omitempty"`
	Requires    []string `json:"requires,omitempty"`
	RequiredBy  []string `json:"required_by,omitempty"`
}

// ToTagList outputs a flat list of tags in natural name order.
func (g *Graph) ToTagList() []TagRecord {
	records := make([]TagRecord, 0, len(g.Tags))
	for _, name := range g.Names() {
		node := g.Tags[name]
		records = append(records, TagRecord{
			Name:        node.Name,
			Description: node.Description,
			Link:        node.Link,
			Size:        node.Size,
			Missing:     node.Missing,
			Requires:    node.Requires,
			RequiredBy:  node.RequiredBy,
		})
	}
	return records
}

// ToJSON outputs the graph as an indented JSON tag list.
func (g *Graph) ToJSON() ([]byte, error) {
	payload := struct {
		Tags []TagRecord `json:"tags"`
	}{Tags: g.ToTagList()}
	return json.MarshalIndent(payload, "", "  ")
}

// ToDOT outputs the graph in Graphviz DOT format. Root tags render
// bold, missing tags dashed.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph requirements {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	roots := make(map[string]bool)
	for _, name := range g.Roots() {
		roots[name] = true
	}

	// Add nodes (using explicit quotes for DOT format compatibility)
	for _, name := range g.Names() {
		node := g.Tags[name]
		label := name
		if node.Description != "" {
			label += "\\n" + dotEscape(textutil.Ellipsis(node.Description, dotLabelMax))
		}
		attrs := fmt.Sprintf(`label="%s"`, label) //nolint:gocritic // DOT format requires this quote style
		if roots[name] {
			attrs += ", style=bold"
		}
		if node.Missing {
			attrs += ", style=dashed"
		}
		buf.WriteString(fmt.Sprintf("  %q [%s];\n", name, attrs))
	}

	buf.WriteString("\n")

	// Add edges
	for _, name := range g.Names() {
		for _, req := range g.Tags[name].Requires {
			buf.WriteString(fmt.Sprintf("  %q -> %q;\n", name, req))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotEscape neutralizes the quote characters a free-text description
// could smuggle into a DOT label attribute.
func dotEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// ToText outputs a human-readable text representation of the graph.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	stats := g.Stats()
	buf.WriteString(fmt.Sprintf("Requirement Graph (%d tags)\n", stats.Tags))
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	buf.WriteString(fmt.Sprintf("Total tags: %d\n", stats.Tags))
	buf.WriteString(fmt.Sprintf("Requirement edges: %d\n", stats.Requirements))
	buf.WriteString(fmt.Sprintf("Root tags: %d\n", stats.Roots))
	buf.WriteString(fmt.Sprintf("Leaf tags: %d\n", stats.Leaves))
	buf.WriteString(fmt.Sprintf("Max depth: %d\n", stats.MaxDepth))
	if stats.Linked > 0 {
		buf.WriteString(fmt.Sprintf("Linked tags: %d\n", stats.Linked))
	}
	if stats.Missing > 0 {
		buf.WriteString(fmt.Sprintf("Missing tags: %d\n", stats.Missing))
	}
	buf.WriteString("\n")

	// Print one tree per root. Tags only reachable through cycles have
	// no root; start a tree at each of those too so every tag shows up.
	buf.WriteString("Requirement Tree:\n")
	printed := make(map[string]bool)
	for _, root := range g.Roots() {
		g.printTree(&buf, root, "", true, true, make(map[string]bool), printed)
	}
	for _, name := range g.Names() {
		if !printed[name] {
			g.printTree(&buf, name, "", true, true, make(map[string]bool), printed)
		}
	}

	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, name, prefix string, isLast, isStart bool, visited, printed map[string]bool) {
	// Print current node
	if isStart {
		buf.WriteString(name)
	} else {
		connector := "├── "
		if isLast {
			connector = "└── "
		}
		buf.WriteString(prefix + connector + name)
	}

	node := g.Tags[name]
	if node != nil {
		if node.Missing {
			buf.WriteString(" (missing)")
		}
		if node.Link != "" {
			buf.WriteString(" (linked)")
		}
	}

	if visited[name] {
		buf.WriteString(" (circular)\n")
		return
	}
	buf.WriteString("\n")

	printed[name] = true
	visited[name] = true
	defer func() { visited[name] = false }()

	if node == nil {
		return
	}

	// Print children
	for i, req := range node.Requires {
		isLastChild := i == len(node.Requires)-1
		childPrefix := prefix
		if !isStart {
			if isLast {
				childPrefix += "    "
			} else {
				childPrefix += "│   "
			}
		}
		g.printTree(buf, req, childPrefix, isLastChild, false, visited, printed)
	}
}

// ToExplainText outputs a human-readable explanation for a specific
// tag.
func (g *Graph) ToExplainText(name string) (string, error) {
	explanation, err := g.Explain(name)
	if err != nil {
		return "", err
	}
	node := explanation.Node

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Explanation for: %s\n", explanation.Tag))
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	if node.Missing {
		buf.WriteString("Referenced as a requirement but never defined.\n")
	}
	if node.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", node.Description))
	}
	if node.Link != "" {
		buf.WriteString(fmt.Sprintf("External source: %s\n", node.Link))
	}
	if node.Size > 0 {
		buf.WriteString(fmt.Sprintf("Measured size: %d bytes\n", node.Size))
	}
	if len(node.Requires) > 0 {
		buf.WriteString(fmt.Sprintf("Requires: %s\n", strings.Join(node.Requires, ", ")))
	}
	if len(node.RequiredBy) > 0 {
		buf.WriteString(fmt.Sprintf("Required by: %s\n", strings.Join(node.RequiredBy, ", ")))
	}

	if len(explanation.Chains) > 0 {
		buf.WriteString("\nRequirement Chains (paths from root tags):\n")
		for i, chain := range explanation.Chains {
			buf.WriteString(fmt.Sprintf("  %d. %s\n", i+1, chain.String()))
		}
	}

	return buf.String(), nil
}
