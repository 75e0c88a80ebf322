package domain

import "time"

const SettingsSingletonKey = "default"

// AdminSettings is a singleton row keyed by SettingsSingletonKey.
type AdminSettings struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Key           string    `json:"-" gorm:"column:settings_key;not null;uniqueIndex"`
	MaxAdsPerDay  int       `json:"max_ads_per_day" gorm:"not null;default:0"`
	MaxAdsPerSlot int       `json:"max_ads_per_slot" gorm:"not null;default:0"`
	UpdatedAt     time.Time `json:"updated_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (AdminSettings) TableName() string {
	return "admin_settings"
}

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&Product{},
		&Advertiser{},
		&Ad{},
		&Invoice{},
		&InvoiceItem{},
		&AdminSettings{},
	}
}
