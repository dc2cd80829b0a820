package utag

// MeasureTags computes the byte cost of every tag in s and writes it
// to the tag's Size field. The cost of a tag is the output it alone
// contributes: the length of the compilation including the tag and its
// dependency closure, minus the length of the compilation including
// only the closure without the tag itself.
//
// Measurement always uses the plain rendering; the configured minifier
// and formatter are not applied. Recomputation is idempotent and safe
// to repeat after any tag data changes.
func (p *Preprocessor) MeasureTags(s *Script) {
	for _, tag := range s.Registry.Tags() {
		inclusive := TagNames(p.Dependencies(s, tag, true))
		exclusive := TagNames(p.Dependencies(s, tag, false))

		with := compileFiltered(s, includeSet(inclusive), true)
		without := compileFiltered(s, includeSet(exclusive), true)
		tag.Size = len(with) - len(without)
	}
}
