package advertiser

import (
	"adops/internal/domain"
	"adops/internal/modules/schedule"
	"adops/internal/pkg/money"
)

// Aggregates are the cached columns of an advertiser.
type Aggregates struct {
	TotalSpend float64 `json:"total_spend"`
	NextAdDate *string `json:"next_ad_date"`
}

// Compute derives an advertiser's aggregates from scratch.
//
// An ad adds to spend when it is paid itself or its invoice is in paidInvoices,
// archived ads included. Only non-archived ads feed the next ad date, which is
// the earliest occurrence on or after today.
func Compute(ads []domain.Ad, paidInvoices map[int64]bool, prices map[int64]float64, today string) Aggregates {
	var amounts []float64
	next := ""
	for _, ad := range ads {
		if isPaid(ad, paidInvoices) {
			amounts = append(amounts, ad.ListPrice(prices))
		}
		if ad.Archived {
			continue
		}
		if d := schedule.NextOccurrence(ad, today); d != "" && (next == "" || d < next) {
			next = d
		}
	}

	agg := Aggregates{TotalSpend: money.Sum(amounts...)}
	if next != "" {
		agg.NextAdDate = &next
	}
	return agg
}

func isPaid(ad domain.Ad, paidInvoices map[int64]bool) bool {
	if ad.IsPaid() {
		return true
	}
	return ad.InvoiceID != nil && paidInvoices[*ad.InvoiceID]
}

func invoiceIDs(ads []domain.Ad) []int64 {
	seen := make(map[int64]struct{})
	var out []int64
	for _, ad := range ads {
		if ad.InvoiceID == nil {
			continue
		}
		if _, ok := seen[*ad.InvoiceID]; !ok {
			seen[*ad.InvoiceID] = struct{}{}
			out = append(out, *ad.InvoiceID)
		}
	}
	return out
}
