package report

import "github.com/tagware/go-utag/internal/natsort"

// Report schema versions.
const (
	// CurrentVersion is the schema version written by this package.
	// Version 2 added sourceHashes.
	CurrentVersion = 2

	// MinSupportedVersion is the oldest schema version readers accept.
	MinSupportedVersion = 1

	// futureVersionTolerance is how many revisions past CurrentVersion
	// a reader still accepts, so a one-step writer upgrade does not
	// break older tooling.
	futureVersionTolerance = 1
)

// TagEntry records the registry metadata and measured footprint of a
// single tag.
type TagEntry struct {
	// Description is the tag's registered description.
	Description string `json:"description,omitempty"`

	// Requires lists the tag's direct requirements in declaration order.
	Requires []string `json:"requires,omitempty"`

	// Link is the URL of the tag's external source, if any.
	Link string `json:"link,omitempty"`

	// Size is the measured byte cost of including the tag.
	Size int `json:"size"`
}

// Report is a reproducible snapshot of a script's tag registry and
// size measurements. Writing an unchanged report twice produces
// byte-identical output.
type Report struct {
	// Version is the report schema version.
	Version int `json:"reportVersion"`

	// Tags maps tag names to their entries.
	Tags map[string]*TagEntry `json:"tags"`

	// SourceHashes maps external source URLs to "sha256:"-prefixed
	// content hashes recorded when the sources were fetched.
	SourceHashes map[string]string `json:"sourceHashes"`

	// Meta carries free-form generator metadata.
	Meta map[string]string `json:"meta"`
}

// New creates an empty report at the current schema version.
func New() *Report {
	return &Report{
		Version:      CurrentVersion,
		Tags:         make(map[string]*TagEntry),
		SourceHashes: make(map[string]string),
		Meta:         make(map[string]string),
	}
}

// SetTag records entry under name, replacing any existing entry.
func (r *Report) SetTag(name string, entry TagEntry) {
	if r.Tags == nil {
		r.Tags = make(map[string]*TagEntry)
	}
	e := entry
	r.Tags[name] = &e
}

// GetTag returns the entry for name, or nil when absent.
func (r *Report) GetTag(name string) *TagEntry {
	return r.Tags[name]
}

// HasTag reports whether an entry exists for name.
func (r *Report) HasTag(name string) bool {
	_, ok := r.Tags[name]
	return ok
}

// TagNames returns all recorded tag names in natural order.
func (r *Report) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for name := range r.Tags {
		names = append(names, name)
	}
	natsort.Sort(names)
	return names
}

// SetSourceHash records the content hash for a source URL.
func (r *Report) SetSourceHash(url, hash string) {
	if r.SourceHashes == nil {
		r.SourceHashes = make(map[string]string)
	}
	r.SourceHashes[url] = hash
}

// GetSourceHash returns the recorded hash for url, or "" when absent.
func (r *Report) GetSourceHash(url string) string {
	return r.SourceHashes[url]
}

// HasSourceHash reports whether a hash is recorded for url.
func (r *Report) HasSourceHash(url string) bool {
	_, ok := r.SourceHashes[url]
	return ok
}

// IsCompatible reports whether this package understands the report's
// schema version.
func (r *Report) IsCompatible() bool {
	return r.Version >= MinSupportedVersion &&
		r.Version <= CurrentVersion+futureVersionTolerance
}
