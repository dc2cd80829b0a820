package report

// TagMeasurement carries one tag's registry data and measured size
// into FromMeasurements. LinkedContent holds the raw fetched body for
// linked tags; only its hash is stored.
type TagMeasurement struct {
	// Name is the tag name.
	Name string

	// Description is the tag's registered description.
	Description string

	// Requires lists the tag's direct requirements in declaration order.
	Requires []string

	// Link is the tag's external source URL.
	Link string

	// Size is the measured byte cost of the tag.
	Size int

	// LinkedContent is the fetched body of Link, if available.
	LinkedContent []byte
}

// FromMeasurements creates a report from a set of measured tags.
// A source hash is recorded for every measurement that carries fetched
// content, which lets later runs detect upstream drift.
func FromMeasurements(measurements []TagMeasurement) *Report {
	r := New()

	for _, m := range measurements {
		if m.Name == "" {
			continue
		}

		r.SetTag(m.Name, TagEntry{
			Description: m.Description,
			Requires:    m.Requires,
			Link:        m.Link,
			Size:        m.Size,
		})

		if m.Link != "" && len(m.LinkedContent) > 0 {
			r.SetSourceHash(m.Link, computeSHA256(m.LinkedContent))
		}
	}

	return r
}

// computeSHA256 renders the prefixed hash format stored in SourceHashes.
func computeSHA256(content []byte) string {
	return "sha256:" + HashContent(content)
}
