package selection

import (
	"slices"

	"github.com/tagware/go-utag/internal/natsort"
)

// DepGraph maps every defined tag name to the names it requires.
// Requirement lists may contain duplicates and may form cycles.
type DepGraph map[string][]string

// Result is the outcome of expanding a requested tag set.
type Result struct {
	// Included is the transitive closure of the requested names over
	// the graph, in discovery order, duplicate free.
	Included []string

	// Unknown lists the requested or required names the graph does
	// not define, in discovery order, duplicate free.
	Unknown []string
}

// Has reports whether name is in the included set.
func (r *Result) Has(name string) bool {
	return slices.Contains(r.Included, name)
}

// SortedIncluded returns the included names in natural sort order,
// suitable for stable human-facing listings.
func (r *Result) SortedIncluded() []string {
	return natsort.Sorted(r.Included)
}

// Run expands roots to their transitive closure over graph. The
// sentinel name joins the roots when the graph defines it, realizing
// the universally required tag. Names the graph does not define are
// recorded as unknown and skipped; they never fail the run.
func Run(graph DepGraph, roots []string, sentinel string) *Result {
	queue := slices.Clone(roots)
	if sentinel != "" {
		if _, ok := graph[sentinel]; ok {
			queue = append(queue, sentinel)
		}
	}

	included := make(map[string]bool)
	unknown := make(map[string]bool)
	result := &Result{}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if included[name] {
			continue
		}

		requires, ok := graph[name]
		if !ok {
			if !unknown[name] {
				unknown[name] = true
				result.Unknown = append(result.Unknown, name)
			}
			continue
		}

		included[name] = true
		result.Included = append(result.Included, name)
		queue = append(queue, requires...)
	}

	return result
}
