package utag

import "github.com/tagware/go-utag/selection"

// EffectiveTags expands the requested tag names into the full set a
// compilation of s must include: the transitive requirement closure of
// the requested tags plus the universal tag when one is defined.
// Requested names the registry does not define are reported in the
// result, not treated as errors.
//
// The included names feed Compile directly:
//
//	result := p.EffectiveTags(script, []string{"CHARTS"})
//	out, err := p.Compile(script, result.Included, false, false)
func (p *Preprocessor) EffectiveTags(s *Script, requested []string) *selection.Result {
	graph := make(selection.DepGraph, s.Registry.Len())
	for _, tag := range s.Registry.Tags() {
		graph[tag.Name] = tag.Requires
	}
	return selection.Run(graph, requested, RequiredTagName)
}
