package invoice

type ItemRequest struct {
	AdID        *int64   `json:"ad_id" validate:"omitempty,gt=0"`
	ProductID   *int64   `json:"product_id" validate:"omitempty,gt=0"`
	Description string   `json:"description" validate:"max=500"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	UnitPrice   float64  `json:"unit_price" validate:"gte=0"`
	Amount      *float64 `json:"amount"`
}

type CreateInvoiceRequest struct {
	Advertiser   string        `json:"advertiser_name" validate:"required_without=AdvertiserID,max=255"`
	AdvertiserID *int64        `json:"advertiser_id" validate:"omitempty,gt=0"`
	Status       string        `json:"status"`
	Discount     float64       `json:"discount" validate:"gte=0"`
	Tax          float64       `json:"tax" validate:"gte=0"`
	IssueDate    string        `json:"issue_date"`
	DueDate      string        `json:"due_date"`
	Notes        string        `json:"notes"`
	Items        []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

type RecurringRequest struct {
	Advertiser string  `json:"advertiser" validate:"required"`
	Period     string  `json:"period" validate:"required"`
	StartDate  string  `json:"start_date" validate:"required"`
	EndDate    string  `json:"end_date" validate:"required"`
	Discount   float64 `json:"discount" validate:"gte=0"`
	Tax        float64 `json:"tax" validate:"gte=0"`
	DueDate    string  `json:"due_date"`
	Notes      string  `json:"notes"`
}
