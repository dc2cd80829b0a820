package utag

import (
	"fmt"
	"net/url"

	"github.com/tagware/go-utag/directive"
)

// TagIssue describes a suspicious tag definition found by CheckTags.
type TagIssue struct {
	// Tag is the name of the tag the issue concerns.
	Tag string

	// Field is the definition field the issue concerns.
	Field string

	// Reason explains the problem.
	Reason string
}

func (i TagIssue) String() string {
	return fmt.Sprintf("tag %s: %s: %s", i.Tag, i.Field, i.Reason)
}

// CheckTags inspects every tag definition in s for problems the parser
// accepts but that are usually unintended: ill-formed names, missing
// descriptions, links with unsupported schemes, self-requirements,
// duplicated requirements, and explicit requirements on the implicit
// universal tag. Issues are reported in registry order and never
// affect processing.
func CheckTags(s *Script) []TagIssue {
	var issues []TagIssue
	for _, tag := range s.Registry.Tags() {
		issues = append(issues, checkTag(tag)...)
	}
	return issues
}

func checkTag(tag *Tag) []TagIssue {
	var issues []TagIssue

	if !directive.ValidName(tag.Name) {
		issues = append(issues, TagIssue{
			Tag:    tag.Name,
			Field:  "name",
			Reason: "must start with a letter and contain only letters, digits, '_', '.', or '-'",
		})
	}

	if tag.Description == "" {
		issues = append(issues, TagIssue{
			Tag:    tag.Name,
			Field:  "description",
			Reason: "tag has no DESC directive",
		})
	}

	if tag.Link != "" && !fetchableLink(tag.Link) {
		issues = append(issues, TagIssue{
			Tag:    tag.Name,
			Field:  "link",
			Reason: fmt.Sprintf("link %q is not an absolute http, https, or file URL", tag.Link),
		})
	}

	seen := make(map[string]bool, len(tag.Requires))
	for _, req := range tag.Requires {
		switch {
		case req == tag.Name:
			issues = append(issues, TagIssue{
				Tag:    tag.Name,
				Field:  "requires",
				Reason: "tag requires itself",
			})
		case req == RequiredTagName:
			issues = append(issues, TagIssue{
				Tag:    tag.Name,
				Field:  "requires",
				Reason: fmt.Sprintf("requirement %q is implicit for every tag", req),
			})
		case seen[req]:
			issues = append(issues, TagIssue{
				Tag:    tag.Name,
				Field:  "requires",
				Reason: fmt.Sprintf("requirement %q is listed more than once", req),
			})
		}
		seen[req] = true
	}

	return issues
}

// fetchableLink reports whether a link uses a scheme the bundled
// fetchers understand.
func fetchableLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "file":
		return true
	}
	return false
}
