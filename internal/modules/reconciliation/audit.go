// Package reconciliation cross-checks invoice totals against the ads they
// bill. Everything here is read-only.
package reconciliation

import (
	"math"
	"sort"
	"time"

	"adops/internal/domain"
	"adops/internal/pkg/money"
)

type Discrepancy struct {
	InvoiceID     int64   `json:"invoice_id"`
	InvoiceNumber string  `json:"invoice_number"`
	Advertiser    string  `json:"advertiser_name"`
	InvoiceTotal  float64 `json:"invoice_total"`
	AdsTotal      float64 `json:"ads_total"`
	Difference    float64 `json:"difference"`
	AdIDs         []int64 `json:"ad_ids"`
}

type AdRef struct {
	ID         int64   `json:"id"`
	AdName     string  `json:"ad_name"`
	Advertiser string  `json:"advertiser"`
	Payment    string  `json:"payment"`
	Amount     float64 `json:"amount"`
	InvoiceID  *int64  `json:"paid_via_invoice_id,omitempty"`
}

type Report struct {
	GeneratedAt       time.Time     `json:"generated_at"`
	InvoicesChecked   int           `json:"invoices_checked"`
	Discrepancies     []Discrepancy `json:"discrepancies"`
	OrphanedPaidAds   []AdRef       `json:"orphaned_paid_ads"`
	DeletedInvoiceAds []AdRef       `json:"deleted_invoice_ads"`
}

// Audit produces the three findings:
//
//   - live invoices whose total differs from the paid amounts of their ads by
//     more than money.Tolerance, largest difference first;
//   - paid, non-archived ads with no recorded invoice link, even when an
//     unpaid invoice lists them as an item;
//   - ads still linked to a soft-deleted invoice.
//
// invoices must include soft-deleted rows for the third finding to work.
func Audit(invoices []domain.Invoice, items []domain.InvoiceItem, ads []domain.Ad, prices map[int64]float64) Report {
	adsByID := make(map[int64]domain.Ad, len(ads))
	for _, ad := range ads {
		adsByID[ad.ID] = ad
	}

	deleted := make(map[int64]bool)
	live := make(map[int64]bool)
	for _, inv := range invoices {
		if inv.IsDeleted() {
			deleted[inv.ID] = true
		} else {
			live[inv.ID] = true
		}
	}

	itemAds := make(map[int64][]int64)
	for _, it := range items {
		if it.AdID == nil || !live[it.InvoiceID] {
			continue
		}
		if !containsID(itemAds[it.InvoiceID], *it.AdID) {
			itemAds[it.InvoiceID] = append(itemAds[it.InvoiceID], *it.AdID)
		}
	}

	report := Report{
		Discrepancies:     []Discrepancy{},
		OrphanedPaidAds:   []AdRef{},
		DeletedInvoiceAds: []AdRef{},
	}

	for _, inv := range invoices {
		if inv.IsDeleted() {
			continue
		}
		report.InvoicesChecked++

		ids := itemAds[inv.ID]
		amounts := make([]float64, 0, len(ids))
		for _, id := range ids {
			if ad, ok := adsByID[id]; ok {
				amounts = append(amounts, paidAmount(ad, prices))
			}
		}
		adsTotal := money.Sum(amounts...)
		if !money.Differs(inv.Total, adsTotal) {
			continue
		}
		report.Discrepancies = append(report.Discrepancies, Discrepancy{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			Advertiser:    inv.Advertiser,
			InvoiceTotal:  inv.Total,
			AdsTotal:      adsTotal,
			Difference:    money.Sub(inv.Total, adsTotal),
			AdIDs:         nonNil(ids),
		})
	}
	sort.SliceStable(report.Discrepancies, func(i, j int) bool {
		a, b := report.Discrepancies[i], report.Discrepancies[j]
		if math.Abs(a.Difference) != math.Abs(b.Difference) {
			return math.Abs(a.Difference) > math.Abs(b.Difference)
		}
		return a.InvoiceID < b.InvoiceID
	})

	for _, ad := range ads {
		if ad.IsPaid() && !ad.Archived && ad.InvoiceID == nil {
			report.OrphanedPaidAds = append(report.OrphanedPaidAds, ref(ad, prices))
		}
		if ad.InvoiceID != nil && deleted[*ad.InvoiceID] {
			report.DeletedInvoiceAds = append(report.DeletedInvoiceAds, ref(ad, prices))
		}
	}
	sort.Slice(report.OrphanedPaidAds, func(i, j int) bool { return report.OrphanedPaidAds[i].ID < report.OrphanedPaidAds[j].ID })
	sort.Slice(report.DeletedInvoiceAds, func(i, j int) bool { return report.DeletedInvoiceAds[i].ID < report.DeletedInvoiceAds[j].ID })

	return report
}

// paidAmount is the ad's list price when the ad is marked paid, else zero.
func paidAmount(ad domain.Ad, prices map[int64]float64) float64 {
	if !ad.IsPaid() {
		return 0
	}
	return ad.ListPrice(prices)
}

func ref(ad domain.Ad, prices map[int64]float64) AdRef {
	return AdRef{
		ID:         ad.ID,
		AdName:     ad.AdName,
		Advertiser: ad.Advertiser,
		Payment:    string(ad.Payment),
		Amount:     ad.ListPrice(prices),
		InvoiceID:  ad.InvoiceID,
	}
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
