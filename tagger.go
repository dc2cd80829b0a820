package utag

import (
	"fmt"

	"github.com/tagware/go-utag/directive"
)

// TagLines assigns tag associations to every line of s. Lines are
// processed in order against an open-block stack: a START directive
// pushes its (tag, mode) pair, an END pops every entry for its tag
// name and marks its own line, and a LINE directive marks its line
// only. After a line's own directive is handled, every entry still on
// the stack is appended to the line, so block tags are inclusive of
// the lines carrying the START and END markers.
//
// Marking directives never create tags; a directive naming an
// undefined tag is skipped with a diagnostic.
func (p *Preprocessor) TagLines(s *Script) {
	t := &lineTagger{p: p, s: s}
	for _, line := range s.Lines {
		t.line = line
		if line.Comment != "" {
			if stmt, ok := directive.ScanComment(line.Comment, line.Number); ok {
				_ = directive.Dispatch(stmt, t)
			}
		}
		line.Associations = append(line.Associations, t.stack...)
	}
}

// lineTagger carries the open-block stack across lines. The line's own
// directive attaches its association before the inherited stack
// entries; Compile depends on that order.
type lineTagger struct {
	directive.BaseHandler
	p     *Preprocessor
	s     *Script
	line  *Line
	stack []Association
}

// resolve looks up a marking directive's tag name, emitting a
// diagnostic when the registry does not define it.
func (t *lineTagger) resolve(name string, pos directive.Position) (*Tag, bool) {
	tag, ok := t.s.Registry.Lookup(name)
	if !ok {
		t.p.diag(t.s, Diagnostic{
			Kind:    DiagUnknownTag,
			Line:    pos.Line,
			Tag:     name,
			Message: fmt.Sprintf("marking directive references undefined tag %q", name),
		})
		return nil, false
	}
	return tag, true
}

func (t *lineTagger) SetStart(name string, mode directive.Mode, pos directive.Position) error {
	tag, ok := t.resolve(name, pos)
	if !ok {
		return nil
	}
	t.stack = append(t.stack, Association{Tag: tag, Mode: mode})
	return nil
}

func (t *lineTagger) SetEnd(name string, mode directive.Mode, pos directive.Position) error {
	tag, ok := t.resolve(name, pos)
	if !ok {
		return nil
	}

	// Pop every open block for the name. Matching is by name only, so
	// overlapping same-name blocks with different modes coalesce.
	open := t.stack[:0]
	for _, entry := range t.stack {
		if entry.Tag.Name != name {
			open = append(open, entry)
		}
	}
	t.stack = open

	// END is inclusive of its own line.
	t.line.Associations = append(t.line.Associations, Association{Tag: tag, Mode: mode})
	return nil
}

func (t *lineTagger) SetLine(name string, mode directive.Mode, pos directive.Position) error {
	tag, ok := t.resolve(name, pos)
	if !ok {
		return nil
	}
	t.line.Associations = append(t.line.Associations, Association{Tag: tag, Mode: mode})
	return nil
}

func (t *lineTagger) Unknown(op, property string, reason directive.UnknownReason, pos directive.Position) error {
	if op != directive.OpMark {
		return nil
	}
	t.p.diag(t.s, Diagnostic{
		Kind:    DiagUnknownProperty,
		Line:    pos.Line,
		Message: unknownDirectiveMessage(op, property, reason),
	})
	return nil
}
