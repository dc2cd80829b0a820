package directive

// Handler processes parsed directives. Implement it to react to each
// directive kind; each method returns an error to stop a walk, or nil
// to continue.
type Handler interface {
	// DefDesc is called for UTAGDEF DESC.
	DefDesc(tag, text string, pos Position) error

	// DefRequ is called for UTAGDEF REQU.
	DefRequ(tag, requirement string, pos Position) error

	// DefLink is called for UTAGDEF LINK.
	DefLink(tag, url string, pos Position) error

	// DefSize is called for the deprecated UTAGDEF SIZE.
	DefSize(tag string, pos Position) error

	// SetLine is called for UTAGSET LINE.
	SetLine(tag string, mode Mode, pos Position) error

	// SetStart is called for UTAGSET START.
	SetStart(tag string, mode Mode, pos Position) error

	// SetEnd is called for UTAGSET END.
	SetEnd(tag string, mode Mode, pos Position) error

	// Unknown is called for unrecognized or malformed directives.
	Unknown(op, property string, reason UnknownReason, pos Position) error
}

// Dispatch routes one directive to the matching handler method.
func Dispatch(d Directive, handler Handler) error {
	switch s := d.(type) {
	case *DefDesc:
		return handler.DefDesc(s.Tag, s.Text, s.Pos)
	case *DefRequ:
		return handler.DefRequ(s.Tag, s.Requirement, s.Pos)
	case *DefLink:
		return handler.DefLink(s.Tag, s.URL, s.Pos)
	case *DefSize:
		return handler.DefSize(s.Tag, s.Pos)
	case *SetLine:
		return handler.SetLine(s.Tag, s.Mode, s.Pos)
	case *SetStart:
		return handler.SetStart(s.Tag, s.Mode, s.Pos)
	case *SetEnd:
		return handler.SetEnd(s.Tag, s.Mode, s.Pos)
	case *Unknown:
		return handler.Unknown(s.Op, s.Property, s.Reason, s.Pos)
	}
	return nil
}

// Walk dispatches a sequence of directives in order.
func Walk(directives []Directive, handler Handler) error {
	for _, d := range directives {
		if err := Dispatch(d, handler); err != nil {
			return err
		}
	}
	return nil
}

// BaseHandler provides no-op implementations of every Handler method.
// Embed it to implement only the directives you care about.
type BaseHandler struct{}

func (BaseHandler) DefDesc(string, string, Position) error { return nil }
func (BaseHandler) DefRequ(string, string, Position) error { return nil }
func (BaseHandler) DefLink(string, string, Position) error { return nil }
func (BaseHandler) DefSize(string, Position) error         { return nil }
func (BaseHandler) SetLine(string, Mode, Position) error   { return nil }
func (BaseHandler) SetStart(string, Mode, Position) error  { return nil }
func (BaseHandler) SetEnd(string, Mode, Position) error    { return nil }
func (BaseHandler) Unknown(string, string, UnknownReason, Position) error { return nil }

// DefCollector gathers definition directives, keyed by tag name in
// first-seen order. Useful for documentation tooling that wants the
// raw directives without building a full registry.
type DefCollector struct {
	BaseHandler
	Order        []string
	Descriptions map[string]string
	Requirements map[string][]string
	Links        map[string]string

	seen map[string]bool
}

// NewDefCollector returns a ready-to-use collector.
func NewDefCollector() *DefCollector {
	return &DefCollector{
		Descriptions: make(map[string]string),
		Requirements: make(map[string][]string),
		Links:        make(map[string]string),
		seen:         make(map[string]bool),
	}
}

func (c *DefCollector) see(tag string) {
	if c.seen[tag] {
		return
	}
	c.seen[tag] = true
	c.Order = append(c.Order, tag)
}

func (c *DefCollector) DefDesc(tag, text string, _ Position) error {
	c.see(tag)
	c.Descriptions[tag] = text
	return nil
}

func (c *DefCollector) DefRequ(tag, requirement string, _ Position) error {
	c.see(tag)
	c.Requirements[tag] = append(c.Requirements[tag], requirement)
	return nil
}

func (c *DefCollector) DefLink(tag, url string, _ Position) error {
	c.see(tag)
	c.Links[tag] = url
	return nil
}
