package utag

import "log/slog"

// RequiredTagName is the reserved tag name that, when defined in a
// registry, is implicitly required by every other tag.
const RequiredTagName = "REQUIRED"

// Dependencies computes the transitive closure of tags required by
// tag, always including the implicit universal tag when one named
// RequiredTagName is defined. The result is ordered by discovery and
// free of duplicates.
//
// When includeSelf is false the originating tag is filtered from the
// result by identity, so a tag that transitively requires itself
// through a cycle is still excluded.
func (p *Preprocessor) Dependencies(s *Script, tag *Tag, includeSelf bool) []*Tag {
	if tag == nil {
		return nil
	}
	return dependencyClosure(s.Registry, tag, RequiredTagName, includeSelf, p.cfg.log())
}

// dependencyClosure walks the requirement graph breadth-first from
// root. The worklist is seeded with root plus the sentinel tag when
// the registry defines one. The output set is visited-gated, so cyclic
// requirement graphs terminate. Requirement names that do not resolve
// are logged and skipped.
func dependencyClosure(reg *Registry, root *Tag, sentinel string, includeSelf bool, logger *slog.Logger) []*Tag {
	queue := []*Tag{root}
	if required, ok := reg.Lookup(sentinel); ok {
		queue = append(queue, required)
	}

	seen := make(map[string]bool)
	var closure []*Tag
	for len(queue) > 0 {
		tag := queue[0]
		queue = queue[1:]
		if seen[tag.Name] {
			continue
		}
		seen[tag.Name] = true
		closure = append(closure, tag)

		for _, name := range tag.Requires {
			req, ok := reg.Lookup(name)
			if !ok {
				logger.Warn("requirement does not resolve to a known tag",
					"tag", tag.Name,
					"requirement", name)
				continue
			}
			queue = append(queue, req)
		}
	}

	if includeSelf {
		return closure
	}
	filtered := make([]*Tag, 0, len(closure))
	for _, tag := range closure {
		if tag == root {
			continue
		}
		filtered = append(filtered, tag)
	}
	return filtered
}

// TagNames extracts the names from a tag list, preserving order. It is
// the usual bridge from Dependencies to Compile.
func TagNames(tags []*Tag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}
