package graph

import (
	"fmt"

	"github.com/tagware/go-utag/internal/natsort"
)

// Get returns the node for a tag name, or nil if not found.
func (g *Graph) Get(name string) *Node {
	return g.Tags[name]
}

// Contains returns true if the graph contains the given tag.
func (g *Graph) Contains(name string) bool {
	_, ok := g.Tags[name]
	return ok
}

// Names returns all tag names in natural sort order.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.Tags))
	for name := range g.Tags {
		names = append(names, name)
	}
	natsort.Sort(names)
	return names
}

// Requires returns the direct requirements of a tag, in declaration
// order. Returns nil for an unknown tag.
func (g *Graph) Requires(name string) []string {
	if node := g.Tags[name]; node != nil {
		return node.Requires
	}
	return nil
}

// RequiredBy returns the tags that directly require the given tag.
// Returns nil for an unknown tag.
func (g *Graph) RequiredBy(name string) []string {
	if node := g.Tags[name]; node != nil {
		return node.RequiredBy
	}
	return nil
}

// TransitiveRequires returns everything a tag requires, directly or
// through other tags. The result is in breadth-first order.
func (g *Graph) TransitiveRequires(name string) []string {
	return g.walk(name, func(n *Node) []string { return n.Requires })
}

// TransitiveRequiredBy returns every tag whose selection pulls in the
// given tag. The result is in breadth-first order, closest requirers
// first.
func (g *Graph) TransitiveRequiredBy(name string) []string {
	return g.walk(name, func(n *Node) []string { return n.RequiredBy })
}

// walk runs a breadth-first traversal from name over the edge set
// selected by edges.
func (g *Graph) walk(name string, edges func(*Node) []string) []string {
	result := make([]string, 0)
	visited := map[string]bool{name: true}
	queue := []string{name}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Tags[current]
		if node == nil {
			continue
		}

		for _, next := range edges(node) {
			if !visited[next] {
				visited[next] = true
				result = append(result, next)
				queue = append(queue, next)
			}
		}
	}

	return result
}

// Path finds the shortest requirement path from one tag to another.
// Returns nil if no path exists.
func (g *Graph) Path(from, to string) []string {
	if from == to {
		if !g.Contains(from) {
			return nil
		}
		return []string{from}
	}

	// BFS to find shortest path
	type queueItem struct {
		name string
		path []string
	}

	visited := map[string]bool{from: true}
	queue := []queueItem{{name: from, path: []string{from}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Tags[current.name]
		if node == nil {
			continue
		}

		for _, req := range node.Requires {
			if req == to {
				return append(current.path, req)
			}
			if !visited[req] {
				visited[req] = true
				next := make([]string, len(current.path)+1)
				copy(next, current.path)
				next[len(current.path)] = req
				queue = append(queue, queueItem{name: req, path: next})
			}
		}
	}

	return nil
}

// AllPaths finds all requirement paths from one tag to another. This
// can be expensive for graphs with many overlapping requirements.
func (g *Graph) AllPaths(from, to string) [][]string {
	if !g.Contains(from) {
		return nil
	}
	var result [][]string
	g.findAllPaths(from, to, []string{from}, make(map[string]bool), &result)
	return result
}

func (g *Graph) findAllPaths(current, target string, path []string, visited map[string]bool, result *[][]string) {
	if current == target {
		pathCopy := make([]string, len(path))
		copy(pathCopy, path)
		*result = append(*result, pathCopy)
		return
	}

	visited[current] = true
	defer func() { visited[current] = false }()

	node := g.Tags[current]
	if node == nil {
		return
	}

	for _, req := range node.Requires {
		if !visited[req] {
			g.findAllPaths(req, target, append(path, req), visited, result)
		}
	}
}

// Explain returns the tag's node together with every requirement chain
// that reaches it from a root tag.
func (g *Graph) Explain(name string) (*Explanation, error) {
	node := g.Get(name)
	if node == nil {
		return nil, fmt.Errorf("tag %q not found in graph", name)
	}

	chains, err := g.WhyIncluded(name)
	if err != nil {
		return nil, err
	}

	return &Explanation{Tag: name, Node: node, Chains: chains}, nil
}

// WhyIncluded returns all requirement chains that cause a tag to be
// pulled in, one per path from a root tag. A root tag explains itself
// with a single-element chain.
func (g *Graph) WhyIncluded(name string) ([]RequirementChain, error) {
	if !g.Contains(name) {
		return nil, fmt.Errorf("tag %q not found in graph", name)
	}

	var chains []RequirementChain
	for _, root := range g.Roots() {
		for _, path := range g.AllPaths(root, name) {
			chains = append(chains, RequirementChain{Path: path})
		}
	}

	return chains, nil
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() GraphStats {
	stats := GraphStats{
		Tags:     len(g.Tags),
		MaxDepth: g.calculateMaxDepth(),
	}

	for _, node := range g.Tags {
		stats.Requirements += len(node.Requires)
		if len(node.RequiredBy) == 0 {
			stats.Roots++
		}
		if len(node.Requires) == 0 {
			stats.Leaves++
		}
		if node.Link != "" {
			stats.Linked++
		}
		if node.Missing {
			stats.Missing++
		}
	}

	return stats
}

func (g *Graph) calculateMaxDepth() int {
	depths := make(map[string]int)
	onPath := make(map[string]bool)
	var maxDepth int

	var dfs func(name string, depth int)
	dfs = func(name string, depth int) {
		// A name already on the current path is a cycle back edge.
		if onPath[name] {
			return
		}
		if existing, ok := depths[name]; ok && existing >= depth {
			return
		}
		depths[name] = depth
		if depth > maxDepth {
			maxDepth = depth
		}

		node := g.Tags[name]
		if node == nil {
			return
		}

		onPath[name] = true
		for _, req := range node.Requires {
			dfs(req, depth+1)
		}
		delete(onPath, name)
	}

	for _, root := range g.Roots() {
		dfs(root, 0)
	}
	return maxDepth
}

// Roots returns all tags nothing requires, in natural name order. A
// missing placeholder always has a requirer, so roots are always
// defined tags.
func (g *Graph) Roots() []string {
	var roots []string
	for name, node := range g.Tags {
		if len(node.RequiredBy) == 0 {
			roots = append(roots, name)
		}
	}
	natsort.Sort(roots)
	return roots
}

// Leaves returns all tags requiring nothing, in natural name order.
func (g *Graph) Leaves() []string {
	var leaves []string
	for name, node := range g.Tags {
		if len(node.Requires) == 0 {
			leaves = append(leaves, name)
		}
	}
	natsort.Sort(leaves)
	return leaves
}

// HasCycles returns true if the graph contains requirement cycles.
func (g *Graph) HasCycles() bool {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var hasCycle func(name string) bool
	hasCycle = func(name string) bool {
		visited[name] = true
		recStack[name] = true

		node := g.Tags[name]
		if node != nil {
			for _, req := range node.Requires {
				if !visited[req] {
					if hasCycle(req) {
						return true
					}
				} else if recStack[req] {
					return true
				}
			}
		}

		recStack[name] = false
		return false
	}

	for name := range g.Tags {
		if !visited[name] {
			if hasCycle(name) {
				return true
			}
		}
	}

	return false
}

// FindCycles returns all requirement cycles in the graph.
func (g *Graph) FindCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make([]string, 0)

	var findCycles func(name string)
	findCycles = func(name string) {
		visited[name] = true
		recStack[name] = true
		path = append(path, name)

		node := g.Tags[name]
		if node != nil {
			for _, req := range node.Requires {
				if !visited[req] {
					findCycles(req)
				} else if recStack[req] {
					// Found a cycle, extract it
					cycleStart := -1
					for i, n := range path {
						if n == req {
							cycleStart = i
							break
						}
					}
					if cycleStart >= 0 {
						cycle := make([]string, len(path)-cycleStart)
						copy(cycle, path[cycleStart:])
						cycles = append(cycles, cycle)
					}
				}
			}
		}

		path = path[:len(path)-1]
		recStack[name] = false
	}

	for _, name := range g.Names() {
		if !visited[name] {
			findCycles(name)
		}
	}

	return cycles
}
