package utag

import (
	"strings"

	"github.com/tagware/go-utag/directive"
)

// Compile renders the lines of s selected by the included tag names.
// Untagged lines are always kept. Tagged lines are evaluated
// association by association in attachment order: an AND association
// sets inclusion to whether its tag is in the set and vetoes the line
// outright on a miss; an OR association (or one with an unrecognized
// mode) sets inclusion on a hit and never clears it on a miss.
//
// Included lines emit their code verbatim. When not minifying, a line
// with a comment also re-emits it as a trailing comment in the
// script's dialect. The filtered text then passes through the
// configured minifier and formatter as requested; a transform failure
// is returned as a *TransformError, never a silent fallback.
func (p *Preprocessor) Compile(s *Script, include []string, applyMinify, applyFormat bool) (string, error) {
	if applyMinify && p.cfg.minify == nil {
		return "", ErrNoMinifier
	}
	if applyFormat && p.cfg.format == nil {
		return "", ErrNoFormatter
	}

	text := compileFiltered(s, includeSet(include), !applyMinify)

	if applyMinify {
		out, err := p.cfg.minify(text)
		if err != nil {
			return "", &TransformError{Stage: StageMinify, Err: err}
		}
		text = out
	}
	if applyFormat {
		out, err := p.cfg.format(text)
		if err != nil {
			return "", &TransformError{Stage: StageFormat, Err: err}
		}
		text = out
	}
	return text, nil
}

// includeSet builds the membership set Compile evaluates against.
func includeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// compileFiltered renders the included subset of lines joined with
// newlines. Measurement relies on this rendering being deterministic.
func compileFiltered(s *Script, included map[string]bool, withComments bool) string {
	var out []string
	for _, line := range s.Lines {
		if !lineIncluded(line, included) {
			continue
		}
		out = append(out, renderLine(line, s.Dialect, withComments))
	}
	return strings.Join(out, "\n")
}

// lineIncluded evaluates a line's associations in attachment order.
// A line with no associations is unconditional code and is always
// included.
func lineIncluded(line *Line, included map[string]bool) bool {
	if len(line.Associations) == 0 {
		return true
	}
	keep := false
	for _, assoc := range line.Associations {
		if assoc.Mode == directive.ModeAnd {
			keep = included[assoc.Tag.Name]
			if !keep {
				return false
			}
			continue
		}
		if included[assoc.Tag.Name] {
			keep = true
		}
	}
	return keep
}

// renderLine emits a line's code, with its comment re-attached when
// comments are wanted.
func renderLine(line *Line, d Dialect, withComments bool) string {
	if !withComments || line.Comment == "" {
		return line.Code
	}
	if line.Code == "" {
		return d.renderComment(line.Comment)
	}
	return line.Code + " " + d.renderComment(line.Comment)
}
