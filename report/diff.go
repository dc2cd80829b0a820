package report

import (
	"fmt"
	"sort"

	"github.com/tagware/go-utag/internal/natsort"
)

// TagChange represents an added or removed tag in a report diff.
type TagChange struct {
	// Name is the tag name.
	Name string `json:"name"`

	// Size is the tag's measured size in the report that carries it.
	Size int `json:"size"`
}

// SizeChange represents a size change for a tag present in both reports.
type SizeChange struct {
	// Name is the tag name.
	Name string `json:"name"`

	// OldSize is the size in the old report.
	OldSize int `json:"old_size"`

	// NewSize is the size in the new report.
	NewSize int `json:"new_size"`
}

// Delta returns the signed size difference.
func (c SizeChange) Delta() int {
	return c.NewSize - c.OldSize
}

// HashChange represents a source whose content hash changed.
type HashChange struct {
	// URL is the source URL.
	URL string `json:"url"`

	// OldHash is the hash in the old report.
	OldHash string `json:"old_hash"`

	// NewHash is the hash in the new report.
	NewHash string `json:"new_hash"`
}

// Diff describes the differences between two reports.
//
// This is useful for:
//   - Reviewing size changes before merging a feature
//   - Generating changelogs for size-sensitive releases
//   - CI checks that flag unexpected growth or upstream drift
//
// Example usage:
//
//	oldRep, _ := report.ReadFile(report.DefaultPath(root))
//	newRep := report.FromMeasurements(measurements)
//	diff := report.Compare(oldRep, newRep)
//
//	if !diff.IsEmpty() {
//	    fmt.Println(diff.Summary())
//	}
type Diff struct {
	// VersionChanged indicates the schema version differs.
	VersionChanged bool `json:"version_changed,omitempty"`

	// OldVersion and NewVersion carry the schema versions when they
	// differ.
	OldVersion int `json:"old_version,omitempty"`
	NewVersion int `json:"new_version,omitempty"`

	// Added contains tags present in new but not in old.
	Added []TagChange `json:"added,omitempty"`

	// Removed contains tags present in old but not in new.
	Removed []TagChange `json:"removed,omitempty"`

	// Grown contains tags whose size increased.
	Grown []SizeChange `json:"grown,omitempty"`

	// Shrunk contains tags whose size decreased.
	Shrunk []SizeChange `json:"shrunk,omitempty"`

	// AddedSources contains source URLs hashed only in the new report.
	AddedSources []string `json:"added_sources,omitempty"`

	// RemovedSources contains source URLs hashed only in the old report.
	RemovedSources []string `json:"removed_sources,omitempty"`

	// ChangedSources contains sources whose content hash changed.
	ChangedSources []HashChange `json:"changed_sources,omitempty"`
}

// IsEmpty returns true if there are no differences between the reports.
func (d *Diff) IsEmpty() bool {
	return !d.VersionChanged &&
		len(d.Added) == 0 &&
		len(d.Removed) == 0 &&
		len(d.Grown) == 0 &&
		len(d.Shrunk) == 0 &&
		len(d.AddedSources) == 0 &&
		len(d.RemovedSources) == 0 &&
		len(d.ChangedSources) == 0
}

// TotalChanges returns the number of tag-level changes
// (added + removed + grown + shrunk).
func (d *Diff) TotalChanges() int {
	return len(d.Added) + len(d.Removed) + len(d.Grown) + len(d.Shrunk)
}

// NetDelta returns the total signed size change, counting added and
// removed tags at their full size.
func (d *Diff) NetDelta() int {
	var delta int
	for _, c := range d.Added {
		delta += c.Size
	}
	for _, c := range d.Removed {
		delta -= c.Size
	}
	for _, c := range d.Grown {
		delta += c.Delta()
	}
	for _, c := range d.Shrunk {
		delta += c.Delta()
	}
	return delta
}

// Summary returns a human-readable summary of the differences.
func (d *Diff) Summary() string {
	if d.IsEmpty() {
		return "no changes"
	}

	var result string
	if d.VersionChanged {
		result += fmt.Sprintf("version: %d -> %d\n", d.OldVersion, d.NewVersion)
	}
	if len(d.Added) > 0 {
		result += fmt.Sprintf("added: %d tags\n", len(d.Added))
	}
	if len(d.Removed) > 0 {
		result += fmt.Sprintf("removed: %d tags\n", len(d.Removed))
	}
	if len(d.Grown) > 0 {
		result += fmt.Sprintf("grown: %d tags\n", len(d.Grown))
	}
	if len(d.Shrunk) > 0 {
		result += fmt.Sprintf("shrunk: %d tags\n", len(d.Shrunk))
	}
	if n := len(d.AddedSources) + len(d.RemovedSources) + len(d.ChangedSources); n > 0 {
		result += fmt.Sprintf("sources: %d changed\n", n)
	}
	if delta := d.NetDelta(); delta != 0 {
		result += fmt.Sprintf("net size change: %+d bytes\n", delta)
	}
	return result
}

// Diff computes the difference from this report to other.
func (r *Report) Diff(other *Report) *Diff {
	return Compare(r, other)
}

// Compare computes the difference between two reports.
//
// Parameters:
//   - old: the baseline report (nil is treated as empty)
//   - new: the updated report (nil is treated as empty)
//
// Returns a Diff describing:
//   - Added/Removed: tags present in only one report
//   - Grown/Shrunk: tags whose measured size changed
//   - Added/Removed/ChangedSources: source hash drift
//
// Tag results are sorted in natural name order for consistent output.
func Compare(old, new *Report) *Diff {
	diff := &Diff{}

	var oldTags, newTags map[string]*TagEntry
	var oldHashes, newHashes map[string]string

	if old != nil {
		oldTags = old.Tags
		oldHashes = old.SourceHashes
	}
	if new != nil {
		newTags = new.Tags
		newHashes = new.SourceHashes
	}

	// Find added and grown/shrunk
	for name, newEntry := range newTags {
		oldEntry, existedBefore := oldTags[name]
		if !existedBefore {
			diff.Added = append(diff.Added, TagChange{Name: name, Size: newEntry.Size})
			continue
		}
		if oldEntry.Size == newEntry.Size {
			continue
		}
		change := SizeChange{Name: name, OldSize: oldEntry.Size, NewSize: newEntry.Size}
		if newEntry.Size > oldEntry.Size {
			diff.Grown = append(diff.Grown, change)
		} else {
			diff.Shrunk = append(diff.Shrunk, change)
		}
	}

	// Find removed
	for name, oldEntry := range oldTags {
		if _, existsNow := newTags[name]; !existsNow {
			diff.Removed = append(diff.Removed, TagChange{Name: name, Size: oldEntry.Size})
		}
	}

	// Compare source hashes
	for url, newHash := range newHashes {
		existing, exists := oldHashes[url]
		if !exists {
			diff.AddedSources = append(diff.AddedSources, url)
		} else if existing != newHash {
			diff.ChangedSources = append(diff.ChangedSources, HashChange{
				URL:     url,
				OldHash: existing,
				NewHash: newHash,
			})
		}
	}
	for url := range oldHashes {
		if _, exists := newHashes[url]; !exists {
			diff.RemovedSources = append(diff.RemovedSources, url)
		}
	}

	// Compare version
	if old != nil && new != nil && old.Version != new.Version {
		diff.VersionChanged = true
		diff.OldVersion = old.Version
		diff.NewVersion = new.Version
	}

	// Sort results for consistent output
	sortTagChanges(diff.Added)
	sortTagChanges(diff.Removed)
	sortSizeChanges(diff.Grown)
	sortSizeChanges(diff.Shrunk)
	sort.Strings(diff.AddedSources)
	sort.Strings(diff.RemovedSources)
	sortHashChanges(diff.ChangedSources)

	return diff
}

// sortTagChanges sorts a slice of TagChange in natural name order.
func sortTagChanges(changes []TagChange) {
	sort.Slice(changes, func(i, j int) bool {
		return natsort.Less(changes[i].Name, changes[j].Name)
	})
}

// sortSizeChanges sorts a slice of SizeChange in natural name order.
func sortSizeChanges(changes []SizeChange) {
	sort.Slice(changes, func(i, j int) bool {
		return natsort.Less(changes[i].Name, changes[j].Name)
	})
}

// sortHashChanges sorts a slice of HashChange by URL.
func sortHashChanges(changes []HashChange) {
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].URL < changes[j].URL
	})
}
