package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	r := New()

	if r.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", r.Version, CurrentVersion)
	}
	if r.Tags == nil {
		t.Error("Tags is nil")
	}
	if r.SourceHashes == nil {
		t.Error("SourceHashes is nil")
	}
	if r.Meta == nil {
		t.Error("Meta is nil")
	}
}

func TestReport_TagEntries(t *testing.T) {
	r := New()

	if r.HasTag("GEO") {
		t.Error("HasTag should be false initially")
	}
	if got := r.GetTag("GEO"); got != nil {
		t.Errorf("GetTag should be nil, got %+v", got)
	}

	r.SetTag("GEO", TagEntry{Description: "Geolocation support", Size: 1480})

	if !r.HasTag("GEO") {
		t.Error("HasTag should be true after set")
	}
	entry := r.GetTag("GEO")
	if entry == nil {
		t.Fatal("GetTag returned nil after set")
	}
	if entry.Description != "Geolocation support" {
		t.Errorf("Description = %q, want %q", entry.Description, "Geolocation support")
	}
	if entry.Size != 1480 {
		t.Errorf("Size = %d, want 1480", entry.Size)
	}

	// Replacing overwrites the whole entry.
	r.SetTag("GEO", TagEntry{Size: 9})
	if got := r.GetTag("GEO"); got.Description != "" || got.Size != 9 {
		t.Errorf("entry after replace = %+v", got)
	}
}

func TestReport_TagNames(t *testing.T) {
	r := New()
	r.SetTag("STAGE10", TagEntry{})
	r.SetTag("ALPHA", TagEntry{})
	r.SetTag("STAGE2", TagEntry{})

	want := []string{"ALPHA", "STAGE2", "STAGE10"}
	if got := r.TagNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("TagNames() = %v, want %v", got, want)
	}
}

func TestReport_SourceHash(t *testing.T) {
	r := New()

	url := "https://cdn.example.com/widgets/geo.js"
	hash := "sha256:abc123def456"

	// Initially no hash
	if r.HasSourceHash(url) {
		t.Error("HasSourceHash should be false initially")
	}
	if got := r.GetSourceHash(url); got != "" {
		t.Errorf("GetSourceHash should be empty, got %q", got)
	}

	// Set hash
	r.SetSourceHash(url, hash)

	if !r.HasSourceHash(url) {
		t.Error("HasSourceHash should be true after set")
	}
	if got := r.GetSourceHash(url); got != hash {
		t.Errorf("GetSourceHash = %q, want %q", got, hash)
	}
}

func TestReport_IsCompatible(t *testing.T) {
	tests := []struct {
		version int
		want    bool
	}{
		{0, false}, // Before the first published schema
		{1, true},  // Sizes only, no source hashes
		{2, true},  // Current
		{3, true},  // Future version within tolerance
		{4, false}, // Too new
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			r := &Report{Version: tt.version}
			if got := r.IsCompatible(); got != tt.want {
				t.Errorf("IsCompatible() for version %d = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestReport_JSONRoundTrip(t *testing.T) {
	original := New()
	original.SetTag("CORE", TagEntry{Description: "Shared runtime", Size: 2048})
	original.SetTag("GEO", TagEntry{
		Requires: []string{"CORE"},
		Link:     "https://cdn.example.com/geo.js",
		Size:     512,
	})
	original.SetSourceHash("https://cdn.example.com/geo.js", computeSHA256([]byte("locate();")))
	original.Meta["source"] = "app.js"

	// Marshal
	data, err := original.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// Parse back
	restored, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Compare
	if restored.Version != original.Version {
		t.Errorf("Version = %d, want %d", restored.Version, original.Version)
	}
	if len(restored.Tags) != len(original.Tags) {
		t.Errorf("Tags count = %d, want %d", len(restored.Tags), len(original.Tags))
	}
	for name, entry := range original.Tags {
		got := restored.Tags[name]
		if got == nil {
			t.Errorf("Tags[%s] missing after round trip", name)
			continue
		}
		if !entriesEqual(got, entry) {
			t.Errorf("Tags[%s] = %+v, want %+v", name, got, entry)
		}
	}
	for url, hash := range original.SourceHashes {
		if restored.SourceHashes[url] != hash {
			t.Errorf("SourceHashes[%s] = %q, want %q", url, restored.SourceHashes[url], hash)
		}
	}
	if restored.Meta["source"] != "app.js" {
		t.Errorf("Meta[source] = %q, want %q", restored.Meta["source"], "app.js")
	}
}

func TestReport_WriteRead(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, DefaultName)

	original := New()
	original.SetTag("UI", TagEntry{Size: 77})
	original.SetSourceHash("https://example.com/widget.js", "sha256:testhash")

	// Write
	if err := original.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Read
	restored, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if restored.GetSourceHash("https://example.com/widget.js") != "sha256:testhash" {
		t.Error("Hash not preserved through write/read")
	}
	if entry := restored.GetTag("UI"); entry == nil || entry.Size != 77 {
		t.Errorf("Tags[UI] = %+v, want Size 77", entry)
	}
}

func TestReport_Merge(t *testing.T) {
	t.Run("basic merge", func(t *testing.T) {
		r1 := New()
		r1.SetTag("A", TagEntry{Size: 1})
		r1.SetSourceHash("url1", "sha256:hash1")

		r2 := New()
		r2.SetTag("B", TagEntry{Size: 2})
		r2.SetSourceHash("url2", "sha256:hash2")

		opts := DefaultMergeOptions()
		if err := r1.Merge(r2, opts); err != nil {
			t.Fatalf("Merge failed: %v", err)
		}

		if !r1.HasTag("A") {
			t.Error("A should still exist")
		}
		if !r1.HasTag("B") {
			t.Error("B should be merged")
		}
		if !r1.HasSourceHash("url2") {
			t.Error("url2 should be merged")
		}
	})

	t.Run("tag conflict prefer new", func(t *testing.T) {
		r1 := New()
		r1.SetTag("A", TagEntry{Size: 1})

		r2 := New()
		r2.SetTag("A", TagEntry{Size: 2})

		opts := MergeOptions{Strategy: MergePreferNew}
		if err := r1.Merge(r2, opts); err != nil {
			t.Fatalf("Merge failed: %v", err)
		}

		if got := r1.GetTag("A").Size; got != 2 {
			t.Errorf("size = %d, want 2", got)
		}
	})

	t.Run("tag conflict prefer existing", func(t *testing.T) {
		r1 := New()
		r1.SetTag("A", TagEntry{Size: 1})

		r2 := New()
		r2.SetTag("A", TagEntry{Size: 2})

		opts := MergeOptions{Strategy: MergePreferExisting}
		if err := r1.Merge(r2, opts); err != nil {
			t.Fatalf("Merge failed: %v", err)
		}

		if got := r1.GetTag("A").Size; got != 1 {
			t.Errorf("size = %d, want 1", got)
		}
	})

	t.Run("tag conflict error", func(t *testing.T) {
		r1 := New()
		r1.SetTag("A", TagEntry{Size: 1})

		r2 := New()
		r2.SetTag("A", TagEntry{Size: 2})

		opts := MergeOptions{Strategy: MergeErrorOnConflict}
		if err := r1.Merge(r2, opts); err == nil {
			t.Error("expected error on conflict")
		}
	})

	t.Run("equal entries are not a conflict", func(t *testing.T) {
		r1 := New()
		r1.SetTag("A", TagEntry{Requires: []string{"B"}, Size: 1})

		r2 := New()
		r2.SetTag("A", TagEntry{Requires: []string{"B"}, Size: 1})

		opts := MergeOptions{Strategy: MergeErrorOnConflict}
		if err := r1.Merge(r2, opts); err != nil {
			t.Fatalf("Merge failed: %v", err)
		}
	})

	t.Run("hash conflict with verify", func(t *testing.T) {
		r1 := New()
		r1.SetSourceHash("url", "sha256:old")

		r2 := New()
		r2.SetSourceHash("url", "sha256:new")

		err := r1.Merge(r2, DefaultMergeOptions())
		if err == nil {
			t.Error("expected error on hash conflict")
		}
	})

	t.Run("hash conflict without verify follows strategy", func(t *testing.T) {
		r1 := New()
		r1.SetSourceHash("url", "sha256:old")

		r2 := New()
		r2.SetSourceHash("url", "sha256:new")

		opts := MergeOptions{Strategy: MergePreferNew}
		if err := r1.Merge(r2, opts); err != nil {
			t.Fatalf("Merge failed: %v", err)
		}
		if got := r1.GetSourceHash("url"); got != "sha256:new" {
			t.Errorf("hash = %q, want %q", got, "sha256:new")
		}
	})

	t.Run("nil other is a no-op", func(t *testing.T) {
		r1 := New()
		r1.SetTag("A", TagEntry{Size: 1})

		if err := r1.Merge(nil, DefaultMergeOptions()); err != nil {
			t.Fatalf("Merge failed: %v", err)
		}
		if !r1.HasTag("A") {
			t.Error("A should still exist")
		}
	})
}

func TestHashContent(t *testing.T) {
	content := []byte("hello world")
	hash := HashContent(content)

	// SHA256 of "hello world" is known
	expected := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if hash != expected {
		t.Errorf("HashContent = %q, want %q", hash, expected)
	}

	if !VerifyHash(content, expected) {
		t.Error("VerifyHash should return true for correct hash")
	}
	if !VerifyHash(content, "sha256:"+expected) {
		t.Error("VerifyHash should accept the prefixed form")
	}
	if VerifyHash(content, "wrong") {
		t.Error("VerifyHash should return false for incorrect hash")
	}
}

func TestFromMeasurements(t *testing.T) {
	body := []byte("locate();")
	measurements := []TagMeasurement{
		{Name: "CORE", Description: "Shared runtime", Size: 2048},
		{
			Name:          "GEO",
			Requires:      []string{"CORE"},
			Link:          "https://cdn.example.com/geo.js",
			Size:          512,
			LinkedContent: body,
		},
		{Name: "", Size: 99}, // skipped
	}

	r := FromMeasurements(measurements)

	if len(r.Tags) != 2 {
		t.Fatalf("Tags count = %d, want 2", len(r.Tags))
	}
	geo := r.GetTag("GEO")
	if geo == nil {
		t.Fatal("GEO entry missing")
	}
	if !reflect.DeepEqual(geo.Requires, []string{"CORE"}) {
		t.Errorf("Requires = %v, want [CORE]", geo.Requires)
	}

	wantHash := "sha256:" + HashContent(body)
	if got := r.GetSourceHash("https://cdn.example.com/geo.js"); got != wantHash {
		t.Errorf("source hash = %q, want %q", got, wantHash)
	}
	if !VerifyHash(body, r.GetSourceHash("https://cdn.example.com/geo.js")) {
		t.Error("recorded hash should verify against the content")
	}

	// No content, no hash.
	if r.HasSourceHash("") {
		t.Error("empty link should not be hashed")
	}
	if len(r.SourceHashes) != 1 {
		t.Errorf("SourceHashes count = %d, want 1", len(r.SourceHashes))
	}
}

func TestParse_RealReport(t *testing.T) {
	// Test parsing a realistic report structure
	reportJSON := `{
  "reportVersion": 2,
  "tags": {
    "CORE": {
      "description": "Shared runtime",
      "size": 2048
    },
    "GEO": {
      "description": "Geolocation support",
      "requires": ["CORE"],
      "link": "https://cdn.example.com/geo.js",
      "size": 512
    }
  },
  "sourceHashes": {
    "https://cdn.example.com/geo.js": "sha256:0a79a1c1fa77c5dce2ea2f27cd9c2e3d01c9fab8aaf415fe15dfa7c1c206e95f"
  },
  "meta": {
    "source": "app.js"
  }
}`

	r, err := Parse([]byte(reportJSON))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if r.Version != 2 {
		t.Errorf("Version = %d, want 2", r.Version)
	}
	if len(r.Tags) != 2 {
		t.Errorf("Tags count = %d, want 2", len(r.Tags))
	}
	if len(r.SourceHashes) != 1 {
		t.Errorf("SourceHashes count = %d, want 1", len(r.SourceHashes))
	}
	if got := r.GetTag("GEO").Requires; len(got) != 1 || got[0] != "CORE" {
		t.Errorf("GEO requires = %v, want [CORE]", got)
	}
}

func TestParse_OlderVersionOmitsMaps(t *testing.T) {
	// Version 1 files carry only tags.
	r, err := Parse([]byte(`{"reportVersion": 1, "tags": {"A": {"size": 3}}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if r.SourceHashes == nil || r.Meta == nil {
		t.Error("omitted maps should be initialized")
	}
	if !r.IsCompatible() {
		t.Error("version 1 should be compatible")
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	// File doesn't exist
	path := filepath.Join(tmpDir, DefaultName)
	if Exists(path) {
		t.Error("Exists should return false for non-existent file")
	}

	// Create file
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !Exists(path) {
		t.Error("Exists should return true for existing file")
	}
}

func TestDefaultPath(t *testing.T) {
	tests := []struct {
		root string
		want string
	}{
		{"", "utag.sizes.json"},
		{"/workspace", "/workspace/utag.sizes.json"},
		{"/home/user/project", "/home/user/project/utag.sizes.json"},
	}

	for _, tt := range tests {
		if got := DefaultPath(tt.root); got != tt.want {
			t.Errorf("DefaultPath(%q) = %q, want %q", tt.root, got, tt.want)
		}
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	// Create a report with multiple entries to test ordering
	r := New()
	r.SetTag("STAGE10", TagEntry{Size: 10})
	r.SetTag("ALPHA", TagEntry{Size: 1})
	r.SetTag("STAGE2", TagEntry{Size: 2})
	r.SetSourceHash("https://z.example.com/a.js", "sha256:z")
	r.SetSourceHash("https://a.example.com/z.js", "sha256:a")

	// Marshal twice and compare
	data1, err := r.Marshal()
	if err != nil {
		t.Fatalf("Marshal 1 failed: %v", err)
	}

	data2, err := r.Marshal()
	if err != nil {
		t.Fatalf("Marshal 2 failed: %v", err)
	}

	if string(data1) != string(data2) {
		t.Error("Marshal is not deterministic")
	}

	// Tag keys appear in natural order, not lexical.
	out := string(data1)
	if strings.Index(out, `"STAGE2"`) > strings.Index(out, `"STAGE10"`) {
		t.Error("STAGE2 should precede STAGE10 in output")
	}
	if strings.Index(out, `"ALPHA"`) > strings.Index(out, `"STAGE2"`) {
		t.Error("ALPHA should precede STAGE2 in output")
	}

	// Output must still be valid JSON.
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(data1, &parsed); err != nil {
		t.Fatal(err)
	}
}
