package directive

import (
	"regexp"
	"strings"
)

// namePattern constrains tag names accepted by lint checks. The parser
// itself is permissive; any non-empty word can name a tag.
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// ValidName reports whether name is a well-formed tag name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Scan searches a line's comment words for a directive and parses it.
// The first operator word found wins; at most one directive is
// recognized per line. Returns (nil, false) when no operator appears.
func Scan(words []string, line int) (Directive, bool) {
	pos := Position{Line: line}
	for i, w := range words {
		switch w {
		case OpDefine:
			return scanDefine(words[i+1:], pos), true
		case OpMark:
			return scanMark(words[i+1:], pos), true
		}
	}
	return nil, false
}

// ScanComment is a convenience wrapper splitting a raw comment string
// into words before scanning.
func ScanComment(comment string, line int) (Directive, bool) {
	return Scan(strings.Fields(comment), line)
}

func scanDefine(rest []string, pos Position) Directive {
	if len(rest) < 2 {
		return unknown(OpDefine, rest, pos, shortReason(rest, isDefineProperty))
	}
	property, tag := rest[0], rest[1]
	data := rest[2:]

	switch property {
	case PropDesc:
		return &DefDesc{Pos: pos, Tag: tag, Text: strings.TrimSpace(strings.Join(data, " "))}
	case PropRequ:
		if len(data) < 1 {
			return unknown(OpDefine, rest, pos, ReasonMissingArgument)
		}
		return &DefRequ{Pos: pos, Tag: tag, Requirement: data[0]}
	case PropLink:
		if len(data) < 1 {
			return unknown(OpDefine, rest, pos, ReasonMissingArgument)
		}
		return &DefLink{Pos: pos, Tag: tag, URL: data[0]}
	case PropSize:
		return &DefSize{Pos: pos, Tag: tag}
	default:
		return unknown(OpDefine, rest, pos, ReasonUnsupportedProperty)
	}
}

func scanMark(rest []string, pos Position) Directive {
	if len(rest) < 2 {
		return unknown(OpMark, rest, pos, shortReason(rest, isMarkProperty))
	}
	property, tag := rest[0], rest[1]

	// A missing mode word is tolerated and evaluates OR-like downstream.
	mode := ModeUnknown
	if len(rest) >= 3 {
		mode, _ = ParseMode(rest[2])
	}

	switch property {
	case PropLine:
		return &SetLine{Pos: pos, Tag: tag, Mode: mode}
	case PropStart:
		return &SetStart{Pos: pos, Tag: tag, Mode: mode}
	case PropEnd:
		return &SetEnd{Pos: pos, Tag: tag, Mode: mode}
	default:
		return unknown(OpMark, rest, pos, ReasonUnsupportedProperty)
	}
}

func unknown(op string, rest []string, pos Position, reason UnknownReason) *Unknown {
	property := ""
	if len(rest) > 0 {
		property = rest[0]
	}
	return &Unknown{Pos: pos, Op: op, Property: property, Reason: reason, Words: rest}
}

// shortReason classifies a directive with too few words: a recognized
// property is merely short of its arguments.
func shortReason(rest []string, known func(string) bool) UnknownReason {
	if len(rest) == 1 && known(rest[0]) {
		return ReasonMissingArgument
	}
	return ReasonUnsupportedProperty
}

func isDefineProperty(w string) bool {
	switch w {
	case PropDesc, PropRequ, PropLink, PropSize:
		return true
	}
	return false
}

func isMarkProperty(w string) bool {
	switch w {
	case PropLine, PropStart, PropEnd:
		return true
	}
	return false
}
