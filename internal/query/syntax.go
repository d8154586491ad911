package query

import (
	"fmt"
	"regexp"
	"strings"

	"task-dashboard/internal/domain"
)

// Expression is a search string with facet shorthands pulled out:
//
//	#Folder  @Member  !priority  is:stat
//
// Values containing spaces are quoted: #"Leave Requests".
type Expression struct {
	Text     string
	Folder   string
	Member   string
	Priority string
	Stat     string
}

func (e Expression) IsEmpty() bool {
	return e == Expression{}
}

var mentionRegex = regexp.MustCompile(`(?:^|\s)(#|@|!|is:)(?:"([^"]*)"|(\S+))`)

// ParseExpression splits facet shorthands from free text. Each facet may
// appear once.
func ParseExpression(input string) (*Expression, error) {
	expr := &Expression{}

	for _, match := range mentionRegex.FindAllStringSubmatch(input, -1) {
		// match[1] is the sigil, match[2] a quoted value, match[3] a bare one
		value := match[2]
		if value == "" {
			value = match[3]
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("empty value after %q", match[1])
		}

		var slot *string
		switch match[1] {
		case "#":
			slot = &expr.Folder
		case "@":
			slot = &expr.Member
		case "!":
			value = strings.ToLower(value)
			if !domain.IsValidPriority(domain.Priority(value)) {
				return nil, fmt.Errorf("invalid priority: %s", value)
			}
			slot = &expr.Priority
		case "is:":
			value = strings.ToLower(value)
			if !IsValidStat(value) {
				return nil, fmt.Errorf("invalid stat: %s (must be all, active, completed or urgent)", value)
			}
			slot = &expr.Stat
		}

		if *slot != "" {
			return nil, fmt.Errorf("%s given more than once", match[1])
		}
		*slot = value
	}

	expr.Text = normalizeWhitespace(mentionRegex.ReplaceAllString(input, " "))
	return expr, nil
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// String rebuilds the expression with facets first.
func (e Expression) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []struct{ sigil, value string }{
		{"#", e.Folder},
		{"@", e.Member},
		{"!", e.Priority},
		{"is:", e.Stat},
	} {
		if p.value == "" {
			continue
		}
		v := p.value
		if strings.ContainsAny(v, " \t") {
			v = `"` + v + `"`
		}
		parts = append(parts, p.sigil+v)
	}
	if e.Text != "" {
		parts = append(parts, e.Text)
	}
	return strings.Join(parts, " ")
}
