package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tagware/go-utag/report"
)

const sampleSource = `// UTAGDEF DESC CORE Shared helpers
// UTAGDEF DESC GREET Greeting feature
// UTAGDEF REQU GREET CORE
// UTAGDEF DESC FAREWELL Farewell feature
var app = {};
// UTAGSET START CORE OR
function say(msg) { console.log(msg); }
// UTAGSET END CORE OR
say("hello"); // UTAGSET LINE GREET OR
say("goodbye"); // UTAGSET LINE FAREWELL OR
app.run();`

func writeSampleSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.js")
	if err := os.WriteFile(path, []byte(sampleSource), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunBuildExpandsClosure(t *testing.T) {
	t.Setenv("UTAG_CONFIG", "")
	path := writeSampleSource(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"build", "-include", "GREET", "-no-fetch", path}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	out := stdout.String()
	// GREET requires CORE, so the block rides along without being
	// requested explicitly.
	if !strings.Contains(out, "function say(msg)") {
		t.Errorf("CORE block missing from build output:\n%s", out)
	}
	if !strings.Contains(out, `say("hello")`) {
		t.Errorf("GREET line missing from build output:\n%s", out)
	}
	if strings.Contains(out, `say("goodbye")`) {
		t.Errorf("unselected line leaked into build output:\n%s", out)
	}
}

func TestRunBuildMinified(t *testing.T) {
	t.Setenv("UTAG_CONFIG", "")
	path := writeSampleSource(t)

	var plain, minified, stderr bytes.Buffer
	if err := run([]string{"build", "-include", "CORE", "-no-fetch", path}, &plain, &stderr); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}
	if err := run([]string{"build", "-include", "CORE", "-minify", "-no-fetch", path}, &minified, &stderr); err != nil {
		t.Fatalf("run -minify: %v\nstderr: %s", err, stderr.String())
	}

	if minified.Len() >= plain.Len() {
		t.Errorf("minified output (%d bytes) not smaller than plain (%d bytes)", minified.Len(), plain.Len())
	}
}

func TestRunTagsTable(t *testing.T) {
	t.Setenv("UTAG_CONFIG", "")
	path := writeSampleSource(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"tags", "-sizes", "-no-fetch", path}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, "NAME") {
		t.Error("missing table header")
	}
	for _, tag := range []string{"CORE", "GREET"} {
		if !strings.Contains(out, tag) {
			t.Errorf("missing tag %s in:\n%s", tag, out)
		}
	}
}

func TestRunDiff(t *testing.T) {
	t.Setenv("UTAG_CONFIG", "")
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.json")
	newPath := filepath.Join(dir, "new.json")

	oldRep := report.New()
	oldRep.SetTag("CORE", report.TagEntry{Size: 100})
	oldRep.SetTag("LEGACY", report.TagEntry{Size: 40})
	if err := oldRep.WriteFile(oldPath); err != nil {
		t.Fatal(err)
	}
	newRep := report.New()
	newRep.SetTag("CORE", report.TagEntry{Size: 120})
	newRep.SetTag("GREET", report.TagEntry{Size: 25})
	if err := newRep.WriteFile(newPath); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	err := run([]string{"diff", oldPath, newPath}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"added: 1 tags", "removed: 1 tags", "grown: 1 tags"} {
		if !strings.Contains(out, want) {
			t.Errorf("diff summary missing %q:\n%s", want, out)
		}
	}

	// -fail-on-change turns a non-empty diff into exit code 1.
	err = run([]string{"diff", "-fail-on-change", oldPath, newPath}, &stdout, &stderr)
	var exitErr *exitError
	if !errors.As(err, &exitErr) || exitErr.code != 1 {
		t.Errorf("run(-fail-on-change) error = %v, want exit code 1", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"frobnicate"}, &stdout, &stderr)
	var exitErr *exitError
	if !errors.As(err, &exitErr) || exitErr.code != 2 {
		t.Errorf("run(frobnicate) error = %v, want exit code 2", err)
	}
}

func TestConfigProfileResolution(t *testing.T) {
	t.Setenv("BUILD_DIR", "/tmp/build")

	path := filepath.Join(t.TempDir(), "utag.hcl")
	config := `defaults {
  dialect = "js"
  minify  = true
}

profile "release" {
  include = ["CORE", "GREET"]
  output  = "${env.BUILD_DIR}/app.js"
}
`
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	st, err := cfg.resolve("release")
	if err != nil {
		t.Fatalf("resolve(release): %v", err)
	}
	if st.dialect != "js" {
		t.Errorf("dialect = %q, want js (from defaults)", st.dialect)
	}
	if !st.minify {
		t.Error("minify = false, want true (from defaults)")
	}
	if st.output != "/tmp/build/app.js" {
		t.Errorf("output = %q, want env-interpolated path", st.output)
	}
	if len(st.include) != 2 {
		t.Errorf("include = %v, want [CORE GREET]", st.include)
	}

	if _, err := cfg.resolve("nonexistent"); err == nil {
		t.Error("resolve(nonexistent) succeeded, want error")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" CORE, GREET ,,FAREWELL ")
	want := []string{"CORE", "GREET", "FAREWELL"}
	if len(got) != len(want) {
		t.Fatalf("splitList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
