package domain

import "time"

type AdvertiserStatus string

const (
	AdvertiserActive   AdvertiserStatus = "active"
	AdvertiserInactive AdvertiserStatus = "inactive"
)

// Advertiser.TotalSpend and Advertiser.NextAdDate are caches. They are rebuilt
// from ads and invoices by the recalculator and never patched incrementally.
type Advertiser struct {
	ID          int64            `json:"id" gorm:"primaryKey"`
	Name        string           `json:"advertiser_name" gorm:"column:advertiser_name;not null;index"`
	ContactName string           `json:"contact_name,omitempty"`
	Email       string           `json:"email,omitempty"`
	Phone       string           `json:"phone_number,omitempty"`
	Status      AdvertiserStatus `json:"status" gorm:"type:varchar(16);not null;default:'active'"`
	TotalSpend  float64          `json:"total_spend" gorm:"not null;default:0"`
	NextAdDate  *string          `json:"next_ad_date"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Advertiser) TableName() string {
	return "advertisers"
}
