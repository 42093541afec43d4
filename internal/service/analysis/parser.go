package analysis

import (
	"strings"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
)

// ParseSections extracts the three review sections from a model response.
//
// The response is split on "\n- "; a part mentioning "conflicts", "gaps" or
// "irrelevant" (checked in that order) contributes the text after its first
// colon. A later matching part overrides an earlier one.
func ParseSections(text string) services.Sections {
	var s services.Sections
	for _, part := range strings.Split(text, "\n- ") {
		lower := strings.ToLower(part)
		switch {
		case strings.Contains(lower, "conflicts"):
			s.Conflicts = afterColon(part)
		case strings.Contains(lower, "gaps"):
			s.Gaps = afterColon(part)
		case strings.Contains(lower, "irrelevant"):
			s.Irrelevant = afterColon(part)
		}
	}
	return s
}

func afterColon(part string) string {
	if _, rest, ok := strings.Cut(part, ":"); ok {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(part)
}
