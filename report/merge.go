package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// MergeStrategy defines how to handle conflicts when merging reports.
type MergeStrategy int

const (
	// MergePreferExisting keeps existing values on conflict.
	MergePreferExisting MergeStrategy = iota

	// MergePreferNew overwrites with new values on conflict.
	MergePreferNew

	// MergeErrorOnConflict returns an error if values differ.
	MergeErrorOnConflict
)

// MergeOptions configures report merge behavior.
type MergeOptions struct {
	// Strategy determines how conflicts are resolved.
	Strategy MergeStrategy

	// VerifyHashes makes any source hash conflict an error regardless
	// of Strategy. Two hashes for one URL mean the source changed
	// between measurements.
	VerifyHashes bool
}

// DefaultMergeOptions returns sensible defaults for merging.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		Strategy:     MergePreferNew,
		VerifyHashes: true,
	}
}

// Merge combines another report into this one. Tag entries and source
// hashes are merged according to the strategy; metadata from the other
// report fills gaps, or overwrites under MergePreferNew.
func (r *Report) Merge(other *Report, opts MergeOptions) error {
	if other == nil {
		return nil
	}

	if err := r.mergeTags(other, opts); err != nil {
		return fmt.Errorf("failed to merge tags: %w", err)
	}

	if err := r.mergeSourceHashes(other, opts); err != nil {
		return fmt.Errorf("failed to merge source hashes: %w", err)
	}

	r.mergeMeta(other, opts)

	return nil
}

func (r *Report) mergeTags(other *Report, opts MergeOptions) error {
	for name, newEntry := range other.Tags {
		existing, exists := r.Tags[name]
		if !exists {
			r.SetTag(name, *newEntry)
			continue
		}

		if entriesEqual(existing, newEntry) {
			continue
		}

		// Conflict handling
		switch opts.Strategy {
		case MergePreferExisting:
			// Keep existing
		case MergePreferNew:
			r.SetTag(name, *newEntry)
		case MergeErrorOnConflict:
			return fmt.Errorf("tag conflict for %s: existing size=%d, new size=%d",
				name, existing.Size, newEntry.Size)
		}
	}
	return nil
}

func (r *Report) mergeSourceHashes(other *Report, opts MergeOptions) error {
	for url, newHash := range other.SourceHashes {
		existing, exists := r.SourceHashes[url]
		if !exists {
			r.SetSourceHash(url, newHash)
			continue
		}

		if existing == newHash {
			continue
		}

		if opts.VerifyHashes {
			return fmt.Errorf("hash conflict for %s: existing=%s, new=%s", url, existing, newHash)
		}

		switch opts.Strategy {
		case MergePreferExisting:
			// Keep existing
		case MergePreferNew:
			r.SourceHashes[url] = newHash
		case MergeErrorOnConflict:
			return fmt.Errorf("hash conflict for %s: existing=%s, new=%s", url, existing, newHash)
		}
	}
	return nil
}

func (r *Report) mergeMeta(other *Report, opts MergeOptions) {
	for key, value := range other.Meta {
		if _, exists := r.Meta[key]; exists && opts.Strategy != MergePreferNew {
			continue
		}
		if r.Meta == nil {
			r.Meta = make(map[string]string)
		}
		r.Meta[key] = value
	}
}

func entriesEqual(a, b *TagEntry) bool {
	return a.Description == b.Description &&
		a.Link == b.Link &&
		a.Size == b.Size &&
		slices.Equal(a.Requires, b.Requires)
}

// HashContent computes the bare SHA256 hex of content.
func HashContent(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// VerifyHash checks if content matches the expected hash. A "sha256:"
// algorithm prefix on expectedHash is accepted, so SourceHashes values
// verify directly.
func VerifyHash(content []byte, expectedHash string) bool {
	return HashContent(content) == strings.TrimPrefix(expectedHash, "sha256:")
}
