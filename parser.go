package utag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tagware/go-utag/directive"
	"github.com/tagware/go-utag/internal/textutil"
)

// Parse splits text into lines, separates code from comment words
// using the configured dialect, and scans tag definitions into the
// script's registry. Malformed directives become diagnostics; Parse
// itself never fails.
func (p *Preprocessor) Parse(text string) *Script {
	return p.parseText(text, p.cfg.dialect, "")
}

// ParseFile reads and parses a file, picking the comment dialect from
// the file extension. Unknown extensions use the configured dialect.
func (p *Preprocessor) ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	d, ok := dialectForExtension(filepath.Ext(path))
	if !ok {
		d = p.cfg.dialect
	}
	return p.parseText(string(data), d, path), nil
}

// parseText runs the two parse passes: tokenization into code and
// comment word streams, then the definition scan over every comment.
func (p *Preprocessor) parseText(text string, d Dialect, source string) *Script {
	s := &Script{
		Registry: NewRegistry(),
		Dialect:  d,
		Source:   source,
	}

	tok := &tokenizer{dialect: d}
	for i, raw := range textutil.SplitLines(text) {
		s.Lines = append(s.Lines, tok.line(raw, i+1))
	}

	scan := &definitionScan{p: p, s: s}
	for _, line := range s.Lines {
		if line.Comment == "" {
			continue
		}
		if stmt, ok := directive.ScanComment(line.Comment, line.Number); ok {
			_ = directive.Dispatch(stmt, scan)
		}
	}
	return s
}

// tokenizer splits lines into code and comment words. Block comment
// state persists across lines until a closing marker is seen; line
// comment state resets at every line.
type tokenizer struct {
	dialect Dialect
	inBlock bool
}

// line tokenizes one raw input line into a Line.
func (t *tokenizer) line(raw string, number int) *Line {
	var code, comment []string
	inLine := false

	for _, word := range strings.Fields(raw) {
		if inLine {
			comment = append(comment, word)
			continue
		}
		code, comment, inLine = t.word(word, code, comment)
	}

	return &Line{
		Code:    textutil.JoinWords(code),
		Comment: textutil.JoinWords(comment),
		Number:  number,
	}
}

// word classifies one whitespace-delimited word, splitting it when a
// comment marker occurs mid-word. Returns the updated streams and
// whether a line comment opened.
func (t *tokenizer) word(word string, code, comment []string) ([]string, []string, bool) {
	for word != "" {
		if t.inBlock {
			idx := -1
			if t.dialect.BlockClose != "" {
				idx = strings.Index(word, t.dialect.BlockClose)
			}
			if idx < 0 {
				comment = append(comment, word)
				return code, comment, false
			}
			if head := word[:idx]; head != "" {
				comment = append(comment, head)
			}
			word = word[idx+len(t.dialect.BlockClose):]
			t.inBlock = false
			continue
		}

		lineIdx := -1
		if t.dialect.Line != "" {
			lineIdx = strings.Index(word, t.dialect.Line)
		}
		openIdx := -1
		if t.dialect.BlockOpen != "" {
			openIdx = strings.Index(word, t.dialect.BlockOpen)
		}

		switch {
		case lineIdx >= 0 && (openIdx < 0 || lineIdx <= openIdx):
			if head := word[:lineIdx]; head != "" {
				code = append(code, head)
			}
			if tail := word[lineIdx+len(t.dialect.Line):]; tail != "" {
				comment = append(comment, tail)
			}
			return code, comment, true
		case openIdx >= 0:
			if head := word[:openIdx]; head != "" {
				code = append(code, head)
			}
			word = word[openIdx+len(t.dialect.BlockOpen):]
			t.inBlock = true
		default:
			code = append(code, word)
			return code, comment, false
		}
	}
	return code, comment, false
}

// definitionScan applies definition directives to the script registry.
// Marking directives are handled later by TagLines.
type definitionScan struct {
	directive.BaseHandler
	p *Preprocessor
	s *Script
}

func (h *definitionScan) DefDesc(tag, text string, _ directive.Position) error {
	h.s.Registry.LookupOrCreate(tag).Description = text
	return nil
}

func (h *definitionScan) DefRequ(tag, requirement string, pos directive.Position) error {
	t := h.s.Registry.LookupOrCreate(tag)
	req, ok := h.s.Registry.Lookup(requirement)
	if !ok {
		h.p.diag(h.s, Diagnostic{
			Kind:    DiagUnknownTag,
			Line:    pos.Line,
			Tag:     tag,
			Message: fmt.Sprintf("requirement %q is not a defined tag", requirement),
		})
		return nil
	}
	t.Requires = append(t.Requires, req.Name)
	return nil
}

func (h *definitionScan) DefLink(tag, url string, _ directive.Position) error {
	h.s.Registry.LookupOrCreate(tag).Link = url
	return nil
}

func (h *definitionScan) DefSize(tag string, pos directive.Position) error {
	h.s.Registry.LookupOrCreate(tag)
	h.p.diag(h.s, Diagnostic{
		Kind:    DiagDeprecatedProperty,
		Line:    pos.Line,
		Tag:     tag,
		Message: "SIZE is deprecated; sizes are computed by MeasureTags",
	})
	return nil
}

func (h *definitionScan) Unknown(op, property string, reason directive.UnknownReason, pos directive.Position) error {
	if op != directive.OpDefine {
		return nil
	}
	h.p.diag(h.s, Diagnostic{
		Kind:    DiagUnknownProperty,
		Line:    pos.Line,
		Message: unknownDirectiveMessage(op, property, reason),
	})
	return nil
}

// unknownDirectiveMessage phrases a malformed-directive diagnostic. A
// recognized property short of arguments must not be reported as
// unsupported.
func unknownDirectiveMessage(op, property string, reason directive.UnknownReason) string {
	if reason == directive.ReasonMissingArgument {
		return fmt.Sprintf("%s %s is missing its argument", op, property)
	}
	return fmt.Sprintf("%s does not support property %q", op, property)
}
