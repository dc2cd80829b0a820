package utag

import (
	"context"
	"fmt"
	"slices"

	"github.com/tagware/go-utag/directive"
)

// Tag represents one named, independently selectable feature of an
// annotated source. Tags are created the first time a definition
// directive references their name and are mutated as later directives
// for the same name are processed. Tags are never deleted.
type Tag struct {
	// Name uniquely identifies the tag within its registry.
	Name string `json:"name"`

	// Description is the human-readable text set by a DESC directive.
	Description string `json:"description,omitempty"`

	// Requires lists the names of tags this tag depends on, in
	// declaration order. Duplicates are possible; Dependencies
	// tolerates them.
	Requires []string `json:"requires,omitempty"`

	// Link is the URL of an external source spliced in by
	// LoadExternal. Empty for tags with no external source.
	Link string `json:"link,omitempty"`

	// Size is the byte cost of selecting this tag, computed by
	// MeasureTags. Zero until measured.
	Size int `json:"size"`
}

// Association pairs a tag with the inclusion mode its directive
// carried. A line's associations are evaluated in attachment order by
// Compile. The same tag may appear more than once on a line when
// produced by distinct directives, for example an overlapping block
// and line directive.
type Association struct {
	Tag  *Tag
	Mode directive.Mode
}

// Line is one physical line of input split into its code and comment
// word streams.
type Line struct {
	// Code is the non-comment portion, whitespace-joined.
	Code string

	// Comment is the comment portion, whitespace-joined, with the
	// dialect's comment markers stripped.
	Comment string

	// Number is the 1-based position of the line in the input it was
	// parsed from. Zero for synthetic lines added by LoadExternal.
	Number int

	// Associations is the ordered (tag, mode) list populated by
	// TagLines. Order is evaluation order: the line's own directive
	// attaches before inherited block entries.
	Associations []Association
}

// Registry owns every tag a script defines or references. Tags are
// stored arena style: all lookups go through the registry and a tag
// holds no back-reference to its script. Tag names are unique within
// a registry.
type Registry struct {
	tags  map[string]*Tag
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tags: make(map[string]*Tag)}
}

// Lookup returns the tag with the given name.
func (r *Registry) Lookup(name string) (*Tag, bool) {
	tag, ok := r.tags[name]
	return tag, ok
}

// LookupOrCreate returns the named tag, creating it on first
// reference. Directive processing for a name already present mutates
// the existing tag rather than creating a duplicate.
func (r *Registry) LookupOrCreate(name string) *Tag {
	if tag, ok := r.tags[name]; ok {
		return tag
	}
	tag := &Tag{Name: name}
	r.tags[name] = tag
	r.order = append(r.order, name)
	return tag
}

// Names returns all tag names in first-reference order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Tags returns all tags in first-reference order.
func (r *Registry) Tags() []*Tag {
	tags := make([]*Tag, len(r.order))
	for i, name := range r.order {
		tags[i] = r.tags[name]
	}
	return tags
}

// Len returns the number of tags in the registry.
func (r *Registry) Len() int {
	return len(r.tags)
}

// Script is a parsed source: an ordered sequence of lines (order is
// emission order), the registry of tags those lines define, and the
// diagnostics accumulated while processing. Every association's tag
// exists in the script's registry.
type Script struct {
	// Lines holds one entry per input line plus any lines spliced in
	// by LoadExternal.
	Lines []*Line

	// Registry owns the tags defined by this script's directives.
	Registry *Registry

	// Diagnostics lists the recoverable problems encountered while
	// parsing, tagging, and loading. Diagnostics never abort
	// processing.
	Diagnostics []Diagnostic

	// Dialect is the comment dialect the script was parsed with. It
	// also governs how Compile re-emits trailing comments.
	Dialect Dialect

	// Source identifies where the text came from, when known. Set by
	// ParseFile, empty for Parse.
	Source string
}

// Tag returns the named tag, or ErrTagNotFound when the script does
// not define it. It is the error-returning counterpart of
// Registry.Lookup for callers bridging to Dependencies.
func (s *Script) Tag(name string) (*Tag, error) {
	tag, ok := s.Registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTagNotFound, name)
	}
	return tag, nil
}

// DiagnosticKind classifies a recoverable processing problem.
type DiagnosticKind int

const (
	// DiagUnknownProperty marks a directive with an unrecognized
	// property word.
	DiagUnknownProperty DiagnosticKind = iota

	// DiagUnknownTag marks a directive referencing a tag name the
	// registry does not define.
	DiagUnknownTag

	// DiagDeprecatedProperty marks a directive using a property that
	// is recognized but no longer honored.
	DiagDeprecatedProperty

	// DiagFetchFailure marks a linked external source that could not
	// be fetched.
	DiagFetchFailure
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagUnknownProperty:
		return "unknown property"
	case DiagUnknownTag:
		return "unknown tag"
	case DiagDeprecatedProperty:
		return "deprecated property"
	case DiagFetchFailure:
		return "fetch failure"
	default:
		return "unknown"
	}
}

// Diagnostic records one recoverable problem. The offending directive
// or fetch is skipped and processing continues.
type Diagnostic struct {
	// Kind classifies the problem.
	Kind DiagnosticKind

	// Line is the 1-based input line the problem occurred on. Zero
	// when the problem is not tied to a line.
	Line int

	// Tag names the tag involved, if any.
	Tag string

	// Message describes the problem.
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}

// LoadReport summarizes one LoadExternal pass. Successes and failures
// are collected per linked tag; a failure never aborts sibling
// fetches.
type LoadReport struct {
	// Spliced lists the tags whose external source was fetched and
	// spliced, in registry order.
	Spliced []string

	// Failed lists the fetches that did not complete. Each failure
	// contributed zero lines.
	Failed []*FetchError
}

// FetchError describes a failed external source fetch for one tag.
type FetchError struct {
	// Tag is the name of the tag whose link was fetched.
	Tag string

	// URL is the link that failed.
	URL string

	// Err is the underlying fetch error.
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s for tag %q: %v", e.URL, e.Tag, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TransformStage identifies which injected transform failed.
type TransformStage int

const (
	// StageMinify is the minifier applied after filtering.
	StageMinify TransformStage = iota

	// StageFormat is the formatter applied after minification.
	StageFormat
)

func (s TransformStage) String() string {
	switch s {
	case StageMinify:
		return "minify"
	case StageFormat:
		return "format"
	default:
		return "unknown"
	}
}

// TransformError is returned by Compile when an injected transform
// fails. The filtered text is discarded rather than silently returned
// untransformed.
type TransformError struct {
	// Stage is the transform that failed.
	Stage TransformStage

	// Err is the underlying transform error.
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s transform: %v", e.Stage, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves the text behind an external tag link. LoadExternal
// calls Fetch concurrently; implementations must be safe for
// concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context, url string) (string, error)

// Fetch calls f.
func (f FetchFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// MinifyFunc compacts compiled output. A failure is wrapped in a
// TransformError and propagated; Compile never falls back to the
// unminified text.
type MinifyFunc func(text string) (string, error)

// FormatFunc pretty-prints compiled output. A failure is wrapped in a
// TransformError and propagated.
type FormatFunc func(text string) (string, error)

// ProcessOptions configures the one-shot Process pipeline.
type ProcessOptions struct {
	// Options configure the Preprocessor used for the run.
	Options []Option

	// LoadExternal fetches and splices linked sources before tagging.
	LoadExternal bool

	// MeasureSizes computes every tag's byte cost after tagging.
	MeasureSizes bool
}
