package report

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tagware/go-utag/directive"
)

// FieldError represents a validation failure for a specific field.
type FieldError struct {
	Field   string // Field path (e.g., "tags.GEO.size")
	Message string // Human-readable error message
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors struct {
	Errors []*FieldError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&b, "\n  - %s", err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add appends a validation error.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &FieldError{Field: field, Message: message})
}

// AddError appends an existing FieldError.
func (e *ValidationErrors) AddError(err *FieldError) {
	e.Errors = append(e.Errors, err)
}

// HasErrors returns true if any errors were collected.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// ToError returns nil if no errors, otherwise returns self.
func (e *ValidationErrors) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// sourceHashPattern matches the stored hash format: algorithm prefix
// plus 64 hex characters.
var sourceHashPattern = regexp.MustCompile(`^sha256:[0-9a-f]{64}$`)

// Validate checks the report for structural problems: an unsupported
// schema version, malformed tag names, negative sizes, requirements
// naming tags the report does not carry, and malformed source hashes.
//
// The returned error is a *ValidationErrors listing every problem
// found, or nil when the report is well formed.
func (r *Report) Validate() error {
	errs := &ValidationErrors{}

	if !r.IsCompatible() {
		errs.Add("reportVersion", fmt.Sprintf("unsupported version %d (supported: %d through %d)",
			r.Version, MinSupportedVersion, CurrentVersion+futureVersionTolerance))
	}

	for _, name := range r.TagNames() {
		entry := r.Tags[name]
		field := "tags." + name

		if !directive.ValidName(name) {
			errs.Add(field, "invalid tag name")
		}
		if entry == nil {
			errs.Add(field, "null entry")
			continue
		}
		if entry.Size < 0 {
			errs.Add(field+".size", fmt.Sprintf("negative size %d", entry.Size))
		}
		for _, req := range entry.Requires {
			if !r.HasTag(req) {
				errs.Add(field+".requires", fmt.Sprintf("requirement %q is not in the report", req))
			}
		}
	}

	urls := make([]string, 0, len(r.SourceHashes))
	for url := range r.SourceHashes {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	for _, url := range urls {
		if !sourceHashPattern.MatchString(r.SourceHashes[url]) {
			errs.Add("sourceHashes."+url, fmt.Sprintf("malformed hash %q", r.SourceHashes[url]))
		}
	}

	return errs.ToError()
}
