package schedule

import (
	"strings"
	"time"

	"adops/internal/pkg/apperr"
)

const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDate parses a strict YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NormalizeDate converts user input into a date-only string in loc. Plain dates
// pass through unchanged; timestamps are converted to loc first so that an
// evening post in New York does not land on the next UTC day. Empty input
// yields an empty string.
func NormalizeDate(raw string, loc *time.Location) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, ok := ParseDate(raw); ok {
		return t.Format(DateLayout), nil
	}
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t.In(loc).Format(DateLayout), nil
		}
	}
	return "", apperr.Validation("date", "%q is not a valid date", raw)
}

// DateOnly formats t as a date in loc.
func DateOnly(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}
