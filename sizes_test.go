package utag

import (
	"strings"
	"testing"
)

func TestMeasureTags(t *testing.T) {
	src := strings.Join([]string{
		"// UTAGDEF DESC X Optional",
		"a(); // UTAGSET LINE X OR",
		"b();",
	}, "\n")
	p := mustNew(t)
	s := p.Parse(src)
	p.TagLines(s)
	p.MeasureTags(s)

	with, err := p.Compile(s, []string{"X"}, false, false)
	if err != nil {
		t.Fatal(err)
	}
	without, err := p.Compile(s, nil, false, false)
	if err != nil {
		t.Fatal(err)
	}

	x, _ := s.Registry.Lookup("X")
	if want := len(with) - len(without); x.Size != want {
		t.Errorf("Size(X) = %d, want %d", x.Size, want)
	}
	if x.Size <= 0 {
		t.Errorf("Size(X) = %d, want positive", x.Size)
	}
}

func TestMeasureTagsChargesOnlyOwnLines(t *testing.T) {
	// X requires Y, so Y's lines appear in both the inclusive and the
	// exclusive compilation and cancel out of X's size.
	src := strings.Join([]string{
		"// UTAGDEF DESC Y base",
		"// UTAGDEF DESC X extra",
		"// UTAGDEF REQU X Y",
		"y(); // UTAGSET LINE Y OR",
		"x(); // UTAGSET LINE X OR",
	}, "\n")
	p := mustNew(t)
	s := p.Parse(src)
	p.TagLines(s)
	p.MeasureTags(s)

	x, _ := s.Registry.Lookup("X")
	y, _ := s.Registry.Lookup("Y")

	if want := len("x(); // UTAGSET LINE X OR") + 1; x.Size != want {
		t.Errorf("Size(X) = %d, want %d", x.Size, want)
	}
	if want := len("y(); // UTAGSET LINE Y OR") + 1; y.Size != want {
		t.Errorf("Size(Y) = %d, want %d", y.Size, want)
	}
}

func TestMeasureTagsWithSentinel(t *testing.T) {
	src := strings.Join([]string{
		"// UTAGDEF DESC REQUIRED runtime",
		"// UTAGDEF DESC X extra",
		"rt(); // UTAGSET LINE REQUIRED OR",
		"x(); // UTAGSET LINE X OR",
	}, "\n")
	p := mustNew(t)
	s := p.Parse(src)
	p.TagLines(s)
	p.MeasureTags(s)

	// The sentinel rides along in both compilations of X, so it adds
	// nothing to X's size.
	x, _ := s.Registry.Lookup("X")
	if want := len("x(); // UTAGSET LINE X OR") + 1; x.Size != want {
		t.Errorf("Size(X) = %d, want %d", x.Size, want)
	}

	req, _ := s.Registry.Lookup("REQUIRED")
	if want := len("rt(); // UTAGSET LINE REQUIRED OR") + 1; req.Size != want {
		t.Errorf("Size(REQUIRED) = %d, want %d", req.Size, want)
	}
}

func TestMeasureTagsIgnoresTransforms(t *testing.T) {
	src := strings.Join([]string{
		"// UTAGDEF DESC X Optional",
		"a(); // UTAGSET LINE X OR",
	}, "\n")
	p := mustNew(t, WithMinifier(func(string) (string, error) {
		t.Fatal("minifier must not run during measurement")
		return "", nil
	}))
	s := p.Parse(src)
	p.TagLines(s)
	p.MeasureTags(s)

	x, _ := s.Registry.Lookup("X")
	if x.Size <= 0 {
		t.Errorf("Size(X) = %d, want positive", x.Size)
	}
}

func TestMeasureTagsIdempotent(t *testing.T) {
	src := strings.Join([]string{
		"// UTAGDEF DESC X Optional",
		"a(); // UTAGSET LINE X OR",
	}, "\n")
	p := mustNew(t)
	s := p.Parse(src)
	p.TagLines(s)

	p.MeasureTags(s)
	x, _ := s.Registry.Lookup("X")
	first := x.Size
	p.MeasureTags(s)
	if x.Size != first {
		t.Errorf("second measurement changed Size(X): %d -> %d", first, x.Size)
	}
}
