package schedule

import (
	"strings"

	"adops/internal/domain"
	"adops/internal/pkg/posttype"
)

type DuplicateMatch struct {
	ID     int64  `json:"id"`
	AdName string `json:"ad_name"`
	Status string `json:"status"`
}

// DuplicateResult is advisory. A conflict asks the caller to confirm; it never
// blocks the write on its own.
type DuplicateResult struct {
	Conflict bool            `json:"conflict"`
	Match    *DuplicateMatch `json:"matched_ad,omitempty"`
}

// FindDuplicate scans existing ads for one with the same advertiser, placement
// and post type that lands on the same date as candidate.
//
// One-time ads conflict on equal dates. Daily runs conflict on equal start
// dates only; overlapping ranges with different starts are not reported.
// Custom schedules are never compared.
func FindDuplicate(candidate domain.Ad, existing []domain.Ad) DuplicateResult {
	kind := posttype.Normalize(candidate.PostType)
	if kind == domain.PostTypeCustomSchedule {
		return DuplicateResult{}
	}
	key := conflictDate(kind, candidate)
	if key == "" {
		return DuplicateResult{}
	}

	for _, other := range existing {
		if other.Archived || (candidate.ID != 0 && other.ID == candidate.ID) {
			continue
		}
		if !candidate.SameAdvertiser(other) || !samePlacement(candidate.Placement, other.Placement) {
			continue
		}
		if posttype.Normalize(other.PostType) != kind {
			continue
		}
		if conflictDate(kind, other) == key {
			return DuplicateResult{
				Conflict: true,
				Match: &DuplicateMatch{
					ID:     other.ID,
					AdName: other.AdName,
					Status: string(other.Status),
				},
			}
		}
	}
	return DuplicateResult{}
}

func conflictDate(kind string, ad domain.Ad) string {
	switch kind {
	case domain.PostTypeOneTime:
		dates, err := expandOneTime(ad)
		if err != nil {
			return ""
		}
		return dates[0]
	case domain.PostTypeDailyRun:
		if d, ok := ParseDate(ad.PostDateFrom); ok {
			return d.Format(DateLayout)
		}
	}
	return ""
}

func samePlacement(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
