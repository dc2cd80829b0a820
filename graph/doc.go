// Package graph provides a queryable requirement graph for tagged
// scripts.
//
// Nodes are tags; edges are the requirement declarations between them.
// The graph supports the questions tooling tends to ask about a tagged
// source:
//
//   - Visualize the complete requirement graph
//   - Explain why selecting one tag pulls in another
//   - Find requirement paths between tags
//   - Query direct and transitive requirements in both directions
//
// # Building a Graph
//
// A Graph is built from tag records, typically mapped from a parsed
// script's registry:
//
//	g := graph.Build([]graph.TagInfo{
//		{Name: "CHARTS", Requires: []string{"UI"}},
//		{Name: "UI", Requires: []string{"CORE"}},
//		{Name: "CORE", Description: "Shared runtime"},
//	})
//
// Requirement names that never receive a definition become missing
// placeholder nodes, so a reference to an undefined tag is visible
// rather than silently dropped.
//
// # Querying the Graph
//
// Once built, the graph supports various queries:
//
//	// Direct and transitive requirements
//	reqs := g.TransitiveRequires("CHARTS")
//
//	// Explain why a tag is pulled in
//	explanation, _ := g.Explain("CORE")
//
//	// Find a requirement path between tags
//	path := g.Path("CHARTS", "CORE")
//
// # Output Formats
//
// The graph can be serialized to multiple formats:
//
//	// JSON tag list for tooling
//	jsonBytes, _ := g.ToJSON()
//
//	// Graphviz DOT format for visualization
//	dotString := g.ToDOT()
//
//	// Human-readable text
//	textString := g.ToText()
package graph
