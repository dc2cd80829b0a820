// Package directive defines the preprocessor's comment directive grammar
// as a closed set of typed statements with an explicit handler interface.
//
// Two operators exist. UTAGDEF mutates the tag registry:
//
//	UTAGDEF DESC <tag> <description text...>
//	UTAGDEF REQU <tag> <required-tag-name>
//	UTAGDEF LINK <tag> <url>
//	UTAGDEF SIZE <tag> <ignored>       (deprecated)
//
// UTAGSET marks lines and line ranges with inclusion modes:
//
//	UTAGSET LINE  <tag> <AND|OR>
//	UTAGSET START <tag> <AND|OR>
//	UTAGSET END   <tag> <AND|OR>
//
// Scan never fails on malformed input; unrecognized properties and short
// directives surface as *Unknown values so callers can diagnose and skip.
package directive

// Operator words recognized at the start of a directive.
const (
	OpDefine = "UTAGDEF"
	OpMark   = "UTAGSET"
)

// Property words for the define operator.
const (
	PropDesc = "DESC"
	PropRequ = "REQU"
	PropLink = "LINK"
	PropSize = "SIZE"
)

// Property words for the mark operator.
const (
	PropLine  = "LINE"
	PropStart = "START"
	PropEnd   = "END"
)

// Position locates a directive for diagnostics. Line is 1-based.
type Position struct {
	Line int
}

// Directive is the interface for all parsed directive statements.
type Directive interface {
	Position() Position
	isDirective()
}

// Mode is a line-inclusion mode attached by mark directives.
type Mode int

const (
	// ModeUnknown is produced by missing or unrecognized mode words.
	// The compiler evaluates it like ModeOr.
	ModeUnknown Mode = iota
	// ModeAnd vetoes a line unless the tag is included.
	ModeAnd
	// ModeOr includes a line when the tag is included.
	ModeOr
)

// ParseMode maps a mode word to its Mode. Unrecognized words yield
// (ModeUnknown, false) rather than an error.
func ParseMode(word string) (Mode, bool) {
	switch word {
	case "AND":
		return ModeAnd, true
	case "OR":
		return ModeOr, true
	default:
		return ModeUnknown, false
	}
}

// String returns the grammar word for the mode.
func (m Mode) String() string {
	switch m {
	case ModeAnd:
		return "AND"
	case ModeOr:
		return "OR"
	default:
		return "UNKNOWN"
	}
}

// DefDesc sets a tag's description.
type DefDesc struct {
	Pos  Position
	Tag  string
	Text string
}

func (d *DefDesc) Position() Position { return d.Pos }
func (d *DefDesc) isDirective()       {}

// DefRequ appends a requirement to a tag.
type DefRequ struct {
	Pos         Position
	Tag         string
	Requirement string
}

func (d *DefRequ) Position() Position { return d.Pos }
func (d *DefRequ) isDirective()       {}

// DefLink sets a tag's external source link.
type DefLink struct {
	Pos Position
	Tag string
	URL string
}

func (d *DefLink) Position() Position { return d.Pos }
func (d *DefLink) isDirective()       {}

// DefSize is the deprecated size directive. Sizes are computed by the
// measurer; occurrences only produce a diagnostic.
type DefSize struct {
	Pos Position
	Tag string
}

func (d *DefSize) Position() Position { return d.Pos }
func (d *DefSize) isDirective()       {}

// SetLine marks a single line with (tag, mode).
type SetLine struct {
	Pos  Position
	Tag  string
	Mode Mode
}

func (d *SetLine) Position() Position { return d.Pos }
func (d *SetLine) isDirective()       {}

// SetStart opens a block marked with (tag, mode).
type SetStart struct {
	Pos  Position
	Tag  string
	Mode Mode
}

func (d *SetStart) Position() Position { return d.Pos }
func (d *SetStart) isDirective()       {}

// SetEnd closes all open blocks for the tag name. The closing line
// itself is marked with (tag, mode).
type SetEnd struct {
	Pos  Position
	Tag  string
	Mode Mode
}

func (d *SetEnd) Position() Position { return d.Pos }
func (d *SetEnd) isDirective()       {}

// UnknownReason classifies why a directive parsed as Unknown.
type UnknownReason int

const (
	// ReasonUnsupportedProperty marks a property word the grammar does
	// not define for the operator.
	ReasonUnsupportedProperty UnknownReason = iota
	// ReasonMissingArgument marks a recognized property that is short
	// of its required words.
	ReasonMissingArgument
)

// String returns a phrase suitable for diagnostic messages.
func (r UnknownReason) String() string {
	if r == ReasonMissingArgument {
		return "missing argument"
	}
	return "unsupported property"
}

// Unknown captures a directive whose operator was recognized but whose
// property list could not be, preserving the raw words for diagnostics.
type Unknown struct {
	Pos      Position
	Op       string
	Property string
	Reason   UnknownReason
	Words    []string
}

func (d *Unknown) Position() Position { return d.Pos }
func (d *Unknown) isDirective()       {}
