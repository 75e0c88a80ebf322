// Package posttype canonicalizes the schedule-type labels found on ads.
//
// Ads created by older clients carry display labels such as "One-Time Post"
// or "Daily Run"; newer ones carry the canonical kind. Normalize maps both onto
// one of domain.PostTypeOneTime, domain.PostTypeDailyRun and
// domain.PostTypeCustomSchedule. Unknown input falls back to one_time.
package posttype

import (
	"regexp"
	"strings"

	"adops/internal/domain"
)

var separators = regexp.MustCompile(`[\s\-_/]+`)

var synonyms = map[string]string{
	"one_time":      domain.PostTypeOneTime,
	"onetime":       domain.PostTypeOneTime,
	"one_time_post": domain.PostTypeOneTime,
	"single":        domain.PostTypeOneTime,
	"single_post":   domain.PostTypeOneTime,
	"once":          domain.PostTypeOneTime,

	"daily_run":      domain.PostTypeDailyRun,
	"daily":          domain.PostTypeDailyRun,
	"daily_post":     domain.PostTypeDailyRun,
	"daily_run_post": domain.PostTypeDailyRun,
	"date_range":     domain.PostTypeDailyRun,
	"range":          domain.PostTypeDailyRun,

	"custom_schedule": domain.PostTypeCustomSchedule,
	"custom":          domain.PostTypeCustomSchedule,
	"custom_post":     domain.PostTypeCustomSchedule,
	"custom_dates":    domain.PostTypeCustomSchedule,
	"multiple_dates":  domain.PostTypeCustomSchedule,
	"specific_dates":  domain.PostTypeCustomSchedule,
}

// Normalize lower-cases the label, collapses separators to "_" and maps known
// synonyms to a canonical kind.
func Normalize(label string) string {
	key := separators.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "_")
	key = strings.Trim(key, "_")
	if kind, ok := synonyms[key]; ok {
		return kind
	}
	if kind, ok := synonyms[strings.TrimSuffix(key, "_post")]; ok {
		return kind
	}
	return domain.PostTypeOneTime
}

// IsCanonical reports whether s is already one of the three kinds.
func IsCanonical(s string) bool {
	switch s {
	case domain.PostTypeOneTime, domain.PostTypeDailyRun, domain.PostTypeCustomSchedule:
		return true
	}
	return false
}

// Label returns the legacy display label for a kind.
func Label(kind string) string {
	switch Normalize(kind) {
	case domain.PostTypeDailyRun:
		return "Daily Run"
	case domain.PostTypeCustomSchedule:
		return "Custom Schedule"
	default:
		return "One-Time Post"
	}
}

// Badge returns the short label used on calendar chips and tables.
func Badge(kind string) string {
	switch Normalize(kind) {
	case domain.PostTypeDailyRun:
		return "Daily"
	case domain.PostTypeCustomSchedule:
		return "Custom"
	default:
		return "One-Time"
	}
}
