package utag

import "github.com/tagware/go-utag/graph"

// RequirementGraph builds a queryable requirement graph from the tags
// s defines. Node metadata mirrors the registry: descriptions, links,
// and measured sizes ride along when present.
//
// The graph is a snapshot. Directives processed or sizes measured
// after the call do not update it.
func (p *Preprocessor) RequirementGraph(s *Script) *graph.Graph {
	b := graph.NewBuilder()
	for _, tag := range s.Registry.Tags() {
		b.AddTag(graph.TagInfo{
			Name:        tag.Name,
			Description: tag.Description,
			Link:        tag.Link,
			Requires:    tag.Requires,
			Size:        tag.Size,
		})
	}
	return b.Graph()
}
