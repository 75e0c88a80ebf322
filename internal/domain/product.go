package domain

import "time"

// Product is a priced placement template. Its price is the billing fallback
// for ads that carry no explicit price.
type Product struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	ProductName   string    `json:"product_name" gorm:"not null"`
	PlacementType string    `json:"placement_type,omitempty"`
	Price         float64   `json:"price" gorm:"not null;default:0"`
	Description   string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
