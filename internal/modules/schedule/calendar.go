package schedule

import (
	"fmt"
	"time"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
	"adops/internal/pkg/posttype"
)

type DaySummary struct {
	ID         int64  `json:"id"`
	AdName     string `json:"ad_name"`
	Advertiser string `json:"advertiser"`
	Status     string `json:"status"`
	PostType   string `json:"post_type"`
	Badge      string `json:"badge"`
	Placement  string `json:"placement"`
	Payment    string `json:"payment"`
	PostTime   string `json:"post_time,omitempty"`
}

// Calendar maps a YYYY-MM-DD date to the ads live on it.
type Calendar map[string][]DaySummary

// BuildCalendar buckets every non-archived ad's occurrences inside the given
// month. Within a day, ads keep the order in which they were passed in.
// Ads whose dates cannot be expanded are left out.
func BuildCalendar(ads []domain.Ad, year int, month time.Month) (Calendar, error) {
	if year < 1 || year > 9999 {
		return nil, apperr.Validation("year", "year %d is out of range", year)
	}
	if month < time.January || month > time.December {
		return nil, apperr.Validation("month", "month %d is out of range", month)
	}

	first := fmt.Sprintf("%04d-%02d-01", year, int(month))
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Format(DateLayout)

	cal := make(Calendar)
	for _, ad := range ads {
		if ad.Archived {
			continue
		}
		dates, err := Expand(ad)
		if err != nil {
			continue
		}
		summary := summarize(ad)
		for _, d := range dates {
			if d < first || d > last {
				continue
			}
			cal[d] = append(cal[d], summary)
		}
	}
	return cal, nil
}

func summarize(ad domain.Ad) DaySummary {
	return DaySummary{
		ID:         ad.ID,
		AdName:     ad.AdName,
		Advertiser: ad.Advertiser,
		Status:     string(ad.Status),
		PostType:   posttype.Label(ad.PostType),
		Badge:      posttype.Badge(ad.PostType),
		Placement:  ad.Placement,
		Payment:    string(ad.Payment),
		PostTime:   ad.PostTime,
	}
}
