package ads

import (
	"adops/internal/domain"
	"adops/internal/modules/schedule"
)

type CreateAdRequest struct {
	AdName       string   `json:"ad_name" validate:"required,max=255"`
	Advertiser   string   `json:"advertiser" validate:"required_without=AdvertiserID,max=255"`
	AdvertiserID *int64   `json:"advertiser_id" validate:"omitempty,gt=0"`
	Status       string   `json:"status"`
	Payment      string   `json:"payment"`
	PostType     string   `json:"post_type"`
	Placement    string   `json:"placement" validate:"required,max=255"`
	Schedule     string   `json:"schedule"`
	PostDateFrom string   `json:"post_date_from"`
	PostDateTo   string   `json:"post_date_to"`
	CustomDates  []string `json:"custom_dates" validate:"max=366"`
	PostTime     string   `json:"post_time" validate:"omitempty,max=32"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	ProductID    *int64   `json:"product_id" validate:"omitempty,gt=0"`
	Notes        string   `json:"notes"`

	// Force skips the duplicate check after the caller has seen the warning.
	Force bool `json:"force"`
}

// UpdateAdRequest is a partial update; nil fields are left alone.
type UpdateAdRequest struct {
	AdName       *string   `json:"ad_name" validate:"omitempty,min=1,max=255"`
	Advertiser   *string   `json:"advertiser" validate:"omitempty,max=255"`
	AdvertiserID *int64    `json:"advertiser_id" validate:"omitempty,gt=0"`
	Status       *string   `json:"status"`
	Payment      *string   `json:"payment"`
	PostType     *string   `json:"post_type"`
	Placement    *string   `json:"placement" validate:"omitempty,min=1,max=255"`
	Schedule     *string   `json:"schedule"`
	PostDateFrom *string   `json:"post_date_from"`
	PostDateTo   *string   `json:"post_date_to"`
	CustomDates  *[]string `json:"custom_dates"`
	PostTime     *string   `json:"post_time"`
	Price        *float64  `json:"price" validate:"omitempty,gte=0"`
	ProductID    *int64    `json:"product_id" validate:"omitempty,gt=0"`
	Notes        *string   `json:"notes"`
	Archived     *bool     `json:"archived"`
}

const (
	BulkDelete    = "delete"
	BulkPublish   = "publish"
	BulkStatus    = "status"
	BulkArchive   = "archive"
	BulkUnarchive = "unarchive"
)

type BulkRequest struct {
	Action string  `json:"action" validate:"required,oneof=delete publish status archive unarchive"`
	IDs    []int64 `json:"ids" validate:"required,min=1,max=500,dive,gt=0"`
	Status string  `json:"status"`
}

type BulkResult struct {
	Action   string `json:"action"`
	Affected int64  `json:"affected"`
}

// DuplicateWarning asks the caller to confirm a create that looks like a
// repeat of an existing ad.
type DuplicateWarning struct {
	Message string                   `json:"message"`
	Match   *schedule.DuplicateMatch `json:"matched_ad"`
}

// CreateResult carries either the stored ad or, when a duplicate was found
// and not forced, a warning and no ad.
type CreateResult struct {
	Ad      *domain.Ad        `json:"ad,omitempty"`
	Warning *DuplicateWarning `json:"warning,omitempty"`
}
