package fixture

import (
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var calendarDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
}

// NormalizeDate reduces raw to a YYYY-MM-DD calendar date.
// Values already in that shape are returned verbatim so no timezone shift can happen;
// timestamps are converted to their UTC date. Timestamps without a zone are read as
// UTC, never as host-local time, so the result does not depend on where the job runs.
func NormalizeDate(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	if calendarDatePattern.MatchString(value) {
		return value, true
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC().Format(DateLayout), true
		}
	}
	return "", false
}
