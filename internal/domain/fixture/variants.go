package fixture

import (
	"regexp"
	"strings"
)

var nameSegmentSeparator = regexp.MustCompile(`[^A-Za-z0-9]+`)

// TeamNames carries every name field a provider may report for a team.
type TeamNames struct {
	Name             string
	ShortName        string
	ShortDisplayName string
	DisplayName      string
	Nickname         string
	TLA              string
	Abbreviation     string
	ID               string
}

// NameVariants returns candidate names, most canonical first, without
// case-insensitive duplicates. Multi-word names also contribute their last and first word.
func NameVariants(names TeamNames) []string {
	raw := []string{
		names.Name,
		names.ShortName,
		names.ShortDisplayName,
		names.DisplayName,
		names.Nickname,
		names.TLA,
		names.Abbreviation,
		names.ID,
	}

	out := make([]string, 0, len(raw)*2)
	seen := make(map[string]struct{}, len(raw)*2)
	push := func(value string) {
		if value == "" {
			return
		}
		key := strings.ToLower(value)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, value)
	}

	for _, value := range raw {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		push(trimmed)

		segments := splitSegments(trimmed)
		if len(segments) > 1 {
			push(segments[len(segments)-1])
			push(segments[0])
		}
	}

	return out
}

func splitSegments(value string) []string {
	parts := nameSegmentSeparator.Split(value, -1)
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
