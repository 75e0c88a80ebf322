package schedule

import (
	"sort"
	"strings"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
	"adops/internal/pkg/posttype"
)

// MaxRunDays bounds a daily run. Longer ranges are treated as unbounded input.
const MaxRunDays = 731

// Expand returns the sorted, de-duplicated dates an ad occupies.
func Expand(ad domain.Ad) ([]string, error) {
	switch posttype.Normalize(ad.PostType) {
	case domain.PostTypeDailyRun:
		return expandDailyRun(ad)
	case domain.PostTypeCustomSchedule:
		return expandCustom(ad.CustomDates), nil
	default:
		return expandOneTime(ad)
	}
}

func expandOneTime(ad domain.Ad) ([]string, error) {
	raw := ad.Schedule
	if strings.TrimSpace(raw) == "" {
		raw = ad.PostDateFrom
	}
	d, ok := ParseDate(raw)
	if !ok {
		return nil, apperr.Validation("schedule", "one-time ad needs a valid schedule date")
	}
	return []string{d.Format(DateLayout)}, nil
}

func expandDailyRun(ad domain.Ad) ([]string, error) {
	from, ok := ParseDate(ad.PostDateFrom)
	if !ok {
		return nil, apperr.Validation("post_date_from", "daily run needs a valid start date")
	}
	to := from
	if strings.TrimSpace(ad.PostDateTo) != "" {
		if to, ok = ParseDate(ad.PostDateTo); !ok {
			return nil, apperr.Validation("post_date_to", "%q is not a valid date", ad.PostDateTo)
		}
	}
	if to.Before(from) {
		return nil, apperr.Validation("post_date_to", "end date is before start date")
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days > MaxRunDays {
		return nil, apperr.Validation("post_date_to", "daily run spans %d days, limit is %d", days, MaxRunDays)
	}

	out := make([]string, 0, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out, nil
}

// Custom dates come from user input; malformed entries are dropped.
func expandCustom(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, raw := range dates {
		d, ok := ParseDate(raw)
		if !ok {
			continue
		}
		s := d.Format(DateLayout)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// StartDate is the first date an ad is declared for: schedule, then
// post_date_from, then the earliest valid custom date.
func StartDate(ad domain.Ad) string {
	if d, ok := ParseDate(ad.Schedule); ok {
		return d.Format(DateLayout)
	}
	if d, ok := ParseDate(ad.PostDateFrom); ok {
		return d.Format(DateLayout)
	}
	if dates := expandCustom(ad.CustomDates); len(dates) > 0 {
		return dates[0]
	}
	return ""
}

// NextOccurrence returns the earliest occurrence on or after today, or "" when
// the ad has none or its dates are unusable.
func NextOccurrence(ad domain.Ad, today string) string {
	dates, err := Expand(ad)
	if err != nil {
		return ""
	}
	i := sort.SearchStrings(dates, today)
	if i < len(dates) {
		return dates[i]
	}
	return ""
}

// Overlaps reports whether any occurrence falls inside [from, to].
func Overlaps(ad domain.Ad, from, to string) bool {
	dates, err := Expand(ad)
	if err != nil {
		return false
	}
	i := sort.SearchStrings(dates, from)
	return i < len(dates) && dates[i] <= to
}
