package directive

import (
	"reflect"
	"strings"
	"testing"
)

func TestScanComment(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    Directive
	}{
		{
			name:    "desc",
			comment: "UTAGDEF DESC GREET prints a friendly greeting",
			want:    &DefDesc{Pos: Position{Line: 1}, Tag: "GREET", Text: "prints a friendly greeting"},
		},
		{
			name:    "desc empty text",
			comment: "UTAGDEF DESC GREET",
			want:    &DefDesc{Pos: Position{Line: 1}, Tag: "GREET", Text: ""},
		},
		{
			name:    "requ",
			comment: "UTAGDEF REQU GREET BASE",
			want:    &DefRequ{Pos: Position{Line: 1}, Tag: "GREET", Requirement: "BASE"},
		},
		{
			name:    "link",
			comment: "UTAGDEF LINK EXTRA https://example.com/extra.js",
			want:    &DefLink{Pos: Position{Line: 1}, Tag: "EXTRA", URL: "https://example.com/extra.js"},
		},
		{
			name:    "deprecated size",
			comment: "UTAGDEF SIZE GREET 120",
			want:    &DefSize{Pos: Position{Line: 1}, Tag: "GREET"},
		},
		{
			name:    "line mark",
			comment: "UTAGSET LINE GREET OR",
			want:    &SetLine{Pos: Position{Line: 1}, Tag: "GREET", Mode: ModeOr},
		},
		{
			name:    "start mark",
			comment: "UTAGSET START GREET AND",
			want:    &SetStart{Pos: Position{Line: 1}, Tag: "GREET", Mode: ModeAnd},
		},
		{
			name:    "end mark",
			comment: "UTAGSET END GREET OR",
			want:    &SetEnd{Pos: Position{Line: 1}, Tag: "GREET", Mode: ModeOr},
		},
		{
			name:    "missing mode tolerated",
			comment: "UTAGSET LINE GREET",
			want:    &SetLine{Pos: Position{Line: 1}, Tag: "GREET", Mode: ModeUnknown},
		},
		{
			name:    "bad mode tolerated",
			comment: "UTAGSET LINE GREET XOR",
			want:    &SetLine{Pos: Position{Line: 1}, Tag: "GREET", Mode: ModeUnknown},
		},
		{
			name:    "unknown define property",
			comment: "UTAGDEF COLOR GREET blue",
			want:    &Unknown{Pos: Position{Line: 1}, Op: OpDefine, Property: "COLOR", Words: []string{"COLOR", "GREET", "blue"}},
		},
		{
			name:    "unknown mark property",
			comment: "UTAGSET RANGE GREET OR",
			want:    &Unknown{Pos: Position{Line: 1}, Op: OpMark, Property: "RANGE", Words: []string{"RANGE", "GREET", "OR"}},
		},
		{
			name:    "truncated define",
			comment: "UTAGDEF DESC",
			want:    &Unknown{Pos: Position{Line: 1}, Op: OpDefine, Property: "DESC", Reason: ReasonMissingArgument, Words: []string{"DESC"}},
		},
		{
			name:    "requ without data",
			comment: "UTAGDEF REQU GREET",
			want:    &Unknown{Pos: Position{Line: 1}, Op: OpDefine, Property: "REQU", Reason: ReasonMissingArgument, Words: []string{"REQU", "GREET"}},
		},
		{
			name:    "link without data",
			comment: "UTAGDEF LINK EXTRA",
			want:    &Unknown{Pos: Position{Line: 1}, Op: OpDefine, Property: "LINK", Reason: ReasonMissingArgument, Words: []string{"LINK", "EXTRA"}},
		},
		{
			name:    "operator mid-comment",
			comment: "note for reviewers UTAGSET LINE GREET OR",
			want:    &SetLine{Pos: Position{Line: 1}, Tag: "GREET", Mode: ModeOr},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ScanComment(tt.comment, 1)
			if !ok {
				t.Fatalf("ScanComment(%q) found no directive", tt.comment)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ScanComment(%q) = %#v, want %#v", tt.comment, got, tt.want)
			}
		})
	}
}

func TestScanCommentNoDirective(t *testing.T) {
	for _, comment := range []string{
		"",
		"plain comment text",
		"utagdef desc lower case is not a directive",
		"UTAGDEFX DESC T not the operator word",
	} {
		if d, ok := ScanComment(comment, 3); ok {
			t.Errorf("ScanComment(%q) = %#v, want no directive", comment, d)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		word string
		want Mode
		ok   bool
	}{
		{"AND", ModeAnd, true},
		{"OR", ModeOr, true},
		{"and", ModeUnknown, false},
		{"XOR", ModeUnknown, false},
		{"", ModeUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.word)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = (%v, %v), want (%v, %v)", tt.word, got, ok, tt.want, tt.ok)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeAnd.String() != "AND" || ModeOr.String() != "OR" || ModeUnknown.String() != "UNKNOWN" {
		t.Errorf("unexpected mode strings: %v %v %v", ModeAnd, ModeOr, ModeUnknown)
	}
}

func TestValidName(t *testing.T) {
	valid := []string{"A", "GREET", "tag_2", "net.http", "a-b"}
	invalid := []string{"", "2TAG", "-x", "has space", "ütag"}

	for _, name := range valid {
		if !ValidName(name) {
			t.Errorf("ValidName(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if ValidName(name) {
			t.Errorf("ValidName(%q) = true, want false", name)
		}
	}
}

func TestScanPositionPropagates(t *testing.T) {
	d, ok := ScanComment("UTAGDEF DESC X hi", 42)
	if !ok {
		t.Fatal("directive not found")
	}
	if d.Position().Line != 42 {
		t.Errorf("Position().Line = %d, want 42", d.Position().Line)
	}
}

func TestScanFirstOperatorWins(t *testing.T) {
	words := strings.Fields("UTAGDEF DESC A UTAGSET LINE B OR")
	d, ok := Scan(words, 1)
	if !ok {
		t.Fatal("directive not found")
	}
	desc, ok := d.(*DefDesc)
	if !ok {
		t.Fatalf("got %T, want *DefDesc", d)
	}
	// Everything after the tag joins the description, operator words included.
	if desc.Tag != "A" || desc.Text != "UTAGSET LINE B OR" {
		t.Errorf("got tag %q text %q", desc.Tag, desc.Text)
	}
}
