package utag

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func assocNames(line *Line) []string {
	var out []string
	for _, a := range line.Associations {
		out = append(out, fmt.Sprintf("%s/%s", a.Tag.Name, a.Mode))
	}
	return out
}

func TestTagLines(t *testing.T) {
	tests := []struct {
		name string
		src  []string
		want [][]string
	}{
		{
			name: "line directive tags its own line only",
			src: []string{
				"// UTAGDEF DESC X Optional",
				"x(); // UTAGSET LINE X AND",
				"y();",
			},
			want: [][]string{nil, {"X/AND"}, nil},
		},
		{
			name: "block is inclusive of both delimiters",
			src: []string{
				"// UTAGDEF DESC X Optional",
				"// UTAGSET START X OR",
				"body();",
				"// UTAGSET END X OR",
				"after();",
			},
			want: [][]string{nil, {"X/OR"}, {"X/OR"}, {"X/OR"}, nil},
		},
		{
			name: "nested blocks stack",
			src: []string{
				"// UTAGDEF DESC A a",
				"// UTAGDEF DESC B b",
				"// UTAGSET START A OR",
				"// UTAGSET START B AND",
				"both();",
				"// UTAGSET END B AND",
				"// UTAGSET END A OR",
			},
			want: [][]string{
				nil,
				nil,
				{"A/OR"},
				{"A/OR", "B/AND"},
				{"A/OR", "B/AND"},
				{"B/AND", "A/OR"},
				{"A/OR"},
			},
		},
		{
			name: "line directives attach before open blocks",
			src: []string{
				"// UTAGDEF DESC A a",
				"// UTAGDEF DESC B b",
				"// UTAGSET START B OR",
				"x(); // UTAGSET LINE A AND",
				"// UTAGSET END B OR",
			},
			want: [][]string{nil, nil, {"B/OR"}, {"A/AND", "B/OR"}, {"B/OR"}},
		},
		{
			name: "unclosed block runs to end of script",
			src: []string{
				"// UTAGDEF DESC X Optional",
				"// UTAGSET START X OR",
				"a();",
				"b();",
			},
			want: [][]string{nil, {"X/OR"}, {"X/OR"}, {"X/OR"}},
		},
		{
			name: "end without open block still tags its line",
			src: []string{
				"// UTAGDEF DESC X Optional",
				"code();",
				"// UTAGSET END X OR",
				"more();",
			},
			want: [][]string{nil, nil, {"X/OR"}, nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustNew(t)
			s := p.Parse(strings.Join(tt.src, "\n"))
			p.TagLines(s)
			if len(s.Diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics: %v", s.Diagnostics)
			}
			if len(s.Lines) != len(tt.want) {
				t.Fatalf("got %d lines, want %d", len(s.Lines), len(tt.want))
			}
			for i, line := range s.Lines {
				got := assocNames(line)
				if !reflect.DeepEqual(got, tt.want[i]) {
					t.Errorf("line %d associations = %v, want %v", i+1, got, tt.want[i])
				}
			}
		})
	}
}

func TestTagLinesEndPopsAllByName(t *testing.T) {
	src := strings.Join([]string{
		"// UTAGDEF DESC X Optional",
		"// UTAGSET START X AND",
		"// UTAGSET START X OR",
		"inner();",
		"// UTAGSET END X OR",
		"outer();",
	}, "\n")
	p := mustNew(t)
	s := p.Parse(src)
	p.TagLines(s)

	// Both open X blocks are closed by the single END.
	if got := assocNames(s.Lines[3]); !reflect.DeepEqual(got, []string{"X/AND", "X/OR"}) {
		t.Errorf("inner line = %v, want both blocks", got)
	}
	if got := assocNames(s.Lines[4]); !reflect.DeepEqual(got, []string{"X/OR"}) {
		t.Errorf("end line = %v, want [X/OR]", got)
	}
	if got := assocNames(s.Lines[5]); got != nil {
		t.Errorf("line after end = %v, want none", got)
	}
}

func TestTagLinesUnknownTag(t *testing.T) {
	src := strings.Join([]string{
		"x(); // UTAGSET LINE GHOST OR",
	}, "\n")
	p := mustNew(t)
	s := p.Parse(src)
	p.TagLines(s)

	if got := assocNames(s.Lines[0]); got != nil {
		t.Errorf("associations = %v, want none", got)
	}
	if len(s.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(s.Diagnostics), s.Diagnostics)
	}
	d := s.Diagnostics[0]
	if d.Kind != DiagUnknownTag || d.Line != 1 || d.Tag != "GHOST" {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestTagLinesUnknownMarkProperty(t *testing.T) {
	src := strings.Join([]string{
		"// UTAGDEF DESC X Optional",
		"// UTAGSET TOGGLE X OR",
	}, "\n")
	p := mustNew(t)
	s := p.Parse(src)
	p.TagLines(s)

	if len(s.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(s.Diagnostics), s.Diagnostics)
	}
	if s.Diagnostics[0].Kind != DiagUnknownProperty {
		t.Errorf("diagnostic kind = %v, want %v", s.Diagnostics[0].Kind, DiagUnknownProperty)
	}
}

func TestTagLinesDefinitionLinesUntagged(t *testing.T) {
	// Definition directives carry no line associations of their own.
	src := strings.Join([]string{
		"// UTAGDEF DESC X Optional",
		"// UTAGDEF DESC Y Another",
		"// UTAGDEF REQU Y X",
	}, "\n")
	p := mustNew(t)
	s := p.Parse(src)
	p.TagLines(s)
	for i, line := range s.Lines {
		if len(line.Associations) != 0 {
			t.Errorf("line %d has associations %v, want none", i+1, assocNames(line))
		}
	}
}
