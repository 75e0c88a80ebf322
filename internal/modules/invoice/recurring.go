package invoice

import (
	"fmt"
	"strings"

	"adops/internal/domain"
	"adops/internal/modules/schedule"
	"adops/internal/pkg/apperr"
)

// RecurringDraft is a recurring invoice before pricing and numbering.
type RecurringDraft struct {
	Advertiser domain.Advertiser
	Period     domain.RecurringPeriod
	Start      string
	End        string
	Lines      []Line
}

// DraftRecurring selects the advertiser's non-archived ads whose start date
// falls in [start, end] and turns each into one line priced by its own price,
// else its product's price, else zero. No matching ads is a NotFoundError.
func DraftRecurring(adv domain.Advertiser, period, start, end string, ads []domain.Ad, prices map[int64]float64) (*RecurringDraft, error) {
	p := domain.RecurringPeriod(strings.ToLower(strings.TrimSpace(period)))
	if !p.Valid() {
		return nil, apperr.Validation("period", "period must be weekly, monthly or quarterly, got %q", period)
	}
	from, ok := schedule.ParseDate(start)
	if !ok {
		return nil, apperr.Validation("start_date", "%q is not a valid date", start)
	}
	to, ok := schedule.ParseDate(end)
	if !ok {
		return nil, apperr.Validation("end_date", "%q is not a valid date", end)
	}
	if to.Before(from) {
		return nil, apperr.Validation("end_date", "end date is before start date")
	}
	start, end = from.Format(schedule.DateLayout), to.Format(schedule.DateLayout)

	var lines []Line
	for _, ad := range ads {
		if ad.Archived || !ad.BelongsTo(adv) {
			continue
		}
		d := schedule.StartDate(ad)
		if d == "" || d < start || d > end {
			continue
		}
		price := ad.ListPrice(prices)
		lines = append(lines, Line{
			AdID:        &ad.ID,
			ProductID:   ad.ProductID,
			Description: fmt.Sprintf("%s (%s, %s)", ad.AdName, ad.Placement, d),
			Quantity:    1,
			UnitPrice:   price,
		})
	}
	if len(lines) == 0 {
		return nil, apperr.NotFound("ads", fmt.Sprintf("%s %s..%s", adv.Name, start, end))
	}

	return &RecurringDraft{
		Advertiser: adv,
		Period:     p,
		Start:      start,
		End:        end,
		Lines:      lines,
	}, nil
}
