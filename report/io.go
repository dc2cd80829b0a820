package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tagware/go-utag/internal/natsort"
)

// DefaultName is the conventional file name for a size report.
const DefaultName = "utag.sizes.json"

// reportPermissions is the file permission mode for written reports
// (owner read/write only).
const reportPermissions = 0o600

// ReadFile reads and parses a report from the given path.
func ReadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return Parse(data)
}

// Parse parses report JSON. Maps an older writer omitted come back
// initialized, so callers never need nil checks.
func Parse(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	if r.Tags == nil {
		r.Tags = make(map[string]*TagEntry)
	}
	if r.SourceHashes == nil {
		r.SourceHashes = make(map[string]string)
	}
	if r.Meta == nil {
		r.Meta = make(map[string]string)
	}

	return &r, nil
}

// WriteFile writes the report to the given path.
func (r *Report) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(path, data, reportPermissions)
}

// WriteTo writes the report to the given writer.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	data, err := r.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Marshal serializes the report to JSON with deterministic key ordering.
func (r *Report) Marshal() ([]byte, error) {
	return marshalDeterministic(r)
}

// MarshalIndent re-indents the deterministic output for readability.
func (r *Report) MarshalIndent(prefix, indent string) ([]byte, error) {
	data, err := r.Marshal()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// marshalDeterministic produces JSON with sorted keys for
// reproducibility. Tag names sort naturally, so STAGE2 precedes
// STAGE10; URL and meta keys sort lexically.
func marshalDeterministic(r *Report) ([]byte, error) {
	ordered := orderedReport{
		Version:      r.Version,
		Tags:         sortedTagMap(r.Tags),
		SourceHashes: sortedStringMap(r.SourceHashes),
		Meta:         sortedStringMap(r.Meta),
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ordered); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// orderedReport is used for deterministic JSON output.
type orderedReport struct {
	Version      int              `json:"reportVersion"`
	Tags         orderedTagMap    `json:"tags"`
	SourceHashes orderedStringMap `json:"sourceHashes"`
	Meta         orderedStringMap `json:"meta"`
}

// orderedTagMap marshals tag entries in natural name order.
type orderedTagMap struct {
	keys   []string
	values map[string]*TagEntry
}

func sortedTagMap(m map[string]*TagEntry) orderedTagMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	natsort.Sort(keys)
	return orderedTagMap{keys: keys, values: m}
}

func (o orderedTagMap) MarshalJSON() ([]byte, error) {
	if len(o.keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, _ := json.Marshal(k)
		valJSON, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// orderedStringMap marshals string maps in sorted key order.
type orderedStringMap struct {
	keys   []string
	values map[string]string
}

func sortedStringMap(m map[string]string) orderedStringMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return orderedStringMap{keys: keys, values: m}
}

func (o orderedStringMap) MarshalJSON() ([]byte, error) {
	if len(o.keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, _ := json.Marshal(k)
		valJSON, _ := json.Marshal(o.values[k])
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Exists returns true if a report exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultPath returns the default report path relative to a project root.
func DefaultPath(root string) string {
	if root == "" {
		return DefaultName
	}
	return root + "/" + DefaultName
}
