package catalog

type CreateProductRequest struct {
	ProductName   string  `json:"product_name" validate:"required,max=255"`
	PlacementType string  `json:"placement_type" validate:"omitempty,max=100"`
	Price         float64 `json:"price" validate:"gte=0"`
	Description   string  `json:"description" validate:"max=2000"`
}
