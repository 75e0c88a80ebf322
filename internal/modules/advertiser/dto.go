package advertiser

type CreateAdvertiserRequest struct {
	Name        string `json:"advertiser_name" validate:"required,max=255"`
	ContactName string `json:"contact_name" validate:"omitempty,max=255"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone_number" validate:"omitempty,max=32"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// RecalculateRequest targets one advertiser by id or name. An empty key
// recalculates everyone.
type RecalculateRequest struct {
	Advertiser string `json:"advertiser"`
}
