package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type AdStatus string

const (
	AdDraft     AdStatus = "Draft"
	AdPending   AdStatus = "Pending"
	AdApproved  AdStatus = "Approved"
	AdScheduled AdStatus = "Scheduled"
	AdPublished AdStatus = "Published"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

var adStatuses = []AdStatus{AdDraft, AdPending, AdApproved, AdScheduled, AdPublished}

// ParseAdStatus matches s case-insensitively against the known statuses.
func ParseAdStatus(s string) (AdStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range adStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(PaymentPaid)):
		return PaymentPaid, true
	case strings.EqualFold(strings.TrimSpace(s), string(PaymentUnpaid)):
		return PaymentUnpaid, true
	}
	return "", false
}

// Canonical post types. Anything else stored in Ad.PostType is a legacy label
// and must go through posttype.Normalize before use.
const (
	PostTypeOneTime        = "one_time"
	PostTypeDailyRun       = "daily_run"
	PostTypeCustomSchedule = "custom_schedule"
)

type Ad struct {
	ID           int64         `json:"id" gorm:"primaryKey"`
	AdName       string        `json:"ad_name" gorm:"not null"`
	Advertiser   string        `json:"advertiser" gorm:"index"`
	AdvertiserID *int64        `json:"advertiser_id,omitempty" gorm:"index"`
	Status       AdStatus      `json:"status" gorm:"type:varchar(32);not null;default:'Draft'"`
	Payment      PaymentStatus `json:"payment" gorm:"type:varchar(16);not null;default:'Unpaid'"`
	PostType     string        `json:"post_type" gorm:"type:varchar(32);not null"`
	Placement    string        `json:"placement" gorm:"index"`

	Schedule     string                      `json:"schedule,omitempty"`
	PostDateFrom string                      `json:"post_date_from,omitempty"`
	PostDateTo   string                      `json:"post_date_to,omitempty"`
	CustomDates  datatypes.JSONSlice[string] `json:"custom_dates,omitempty"`
	PostTime     string                      `json:"post_time,omitempty"`

	Price     *float64 `json:"price,omitempty"`
	ProductID *int64   `json:"product_id,omitempty"`
	InvoiceID *int64   `json:"paid_via_invoice_id,omitempty" gorm:"column:paid_via_invoice_id;index"`

	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	Archived  bool      `json:"archived" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (Ad) TableName() string {
	return "ads"
}

// IsPaid reports whether the ad itself is marked paid. Payment through a paid
// invoice is resolved by callers that have the invoice at hand.
func (a Ad) IsPaid() bool {
	return strings.EqualFold(string(a.Payment), string(PaymentPaid))
}

// BelongsTo joins an ad to an advertiser by id when both sides carry one and
// falls back to the case-insensitive display name otherwise. Renaming an
// advertiser breaks the name fallback for ads that never got an id.
func (a Ad) BelongsTo(adv Advertiser) bool {
	if a.AdvertiserID != nil && adv.ID != 0 {
		return *a.AdvertiserID == adv.ID
	}
	return NormalizeName(a.Advertiser) != "" && NormalizeName(a.Advertiser) == NormalizeName(adv.Name)
}

// SameAdvertiser compares the advertiser of two ads using the same id-first rule.
func (a Ad) SameAdvertiser(b Ad) bool {
	if a.AdvertiserID != nil && b.AdvertiserID != nil {
		return *a.AdvertiserID == *b.AdvertiserID
	}
	return NormalizeName(a.Advertiser) != "" && NormalizeName(a.Advertiser) == NormalizeName(b.Advertiser)
}

// CleanName is the stored form of an advertiser name: trimmed, with inner
// whitespace runs collapsed to one space. Case is kept for display.
func CleanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeName is the fallback join key for advertisers.
func NormalizeName(s string) string {
	return strings.ToLower(CleanName(s))
}

// ListPrice resolves what the ad bills for: its own price, else its product's
// price from prices, else zero.
func (a Ad) ListPrice(prices map[int64]float64) float64 {
	if a.Price != nil {
		return *a.Price
	}
	if a.ProductID != nil {
		if p, ok := prices[*a.ProductID]; ok {
			return p
		}
	}
	if a.Product != nil {
		return a.Product.Price
	}
	return 0
}

// ProductIDs collects the distinct product ids referenced by ads.
func ProductIDs(ads []Ad) []int64 {
	seen := make(map[int64]struct{})
	var out []int64
	for _, ad := range ads {
		if ad.ProductID == nil {
			continue
		}
		if _, ok := seen[*ad.ProductID]; ok {
			continue
		}
		seen[*ad.ProductID] = struct{}{}
		out = append(out, *ad.ProductID)
	}
	return out
}
