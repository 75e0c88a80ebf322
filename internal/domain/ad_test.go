package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int64) *int64       { return &v }

func TestAdListPrice(t *testing.T) {
	prices := map[int64]float64{3: 75}

	assert.Equal(t, 40.0, Ad{Price: ptrFloat(40), ProductID: ptrInt(3)}.ListPrice(prices))
	assert.Equal(t, 75.0, Ad{ProductID: ptrInt(3)}.ListPrice(prices))
	assert.Equal(t, 0.0, Ad{ProductID: ptrInt(9)}.ListPrice(prices))
	assert.Equal(t, 0.0, Ad{}.ListPrice(nil))
	assert.Equal(t, 0.0, Ad{Price: ptrFloat(0), ProductID: ptrInt(3)}.ListPrice(prices))
}

func TestAdBelongsTo(t *testing.T) {
	acme := Advertiser{ID: 1, Name: "Acme Corp"}

	assert.True(t, Ad{AdvertiserID: ptrInt(1), Advertiser: "Renamed"}.BelongsTo(acme))
	assert.False(t, Ad{AdvertiserID: ptrInt(2), Advertiser: "Acme Corp"}.BelongsTo(acme))
	assert.True(t, Ad{Advertiser: "  acme   corp "}.BelongsTo(acme))
	assert.False(t, Ad{Advertiser: ""}.BelongsTo(Advertiser{Name: ""}))
}

func TestProductIDs(t *testing.T) {
	ads := []Ad{{ProductID: ptrInt(2)}, {}, {ProductID: ptrInt(2)}, {ProductID: ptrInt(5)}}
	assert.Equal(t, []int64{2, 5}, ProductIDs(ads))
}

func TestParseStatuses(t *testing.T) {
	st, ok := ParseAdStatus(" published ")
	assert.True(t, ok)
	assert.Equal(t, AdPublished, st)

	_, ok = ParseAdStatus("Live")
	assert.False(t, ok)

	p, ok := ParsePaymentStatus("PAID")
	assert.True(t, ok)
	assert.Equal(t, PaymentPaid, p)
}

func TestParseInvoiceStatus(t *testing.T) {
	st, ok := ParseInvoiceStatus("overdue")
	assert.True(t, ok)
	assert.Equal(t, InvoiceOverdue, st)

	_, ok = ParseInvoiceStatus("void")
	assert.False(t, ok)
}
