package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "Pending"
	InvoicePaid    InvoiceStatus = "Paid"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

// ParseInvoiceStatus matches s case-insensitively against the known statuses.
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	for _, st := range []InvoiceStatus{InvoicePending, InvoicePaid, InvoiceOverdue} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

type RecurringPeriod string

const (
	PeriodWeekly    RecurringPeriod = "weekly"
	PeriodMonthly   RecurringPeriod = "monthly"
	PeriodQuarterly RecurringPeriod = "quarterly"
)

func (p RecurringPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly:
		return true
	}
	return false
}

type Invoice struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	InvoiceNumber   string          `json:"invoice_number" gorm:"not null;uniqueIndex"`
	Advertiser      string          `json:"advertiser_name" gorm:"column:advertiser_name;index"`
	AdvertiserID    *int64          `json:"advertiser_id,omitempty" gorm:"index"`
	Status          InvoiceStatus   `json:"status" gorm:"type:varchar(16);not null;default:'Pending'"`
	Subtotal        float64         `json:"subtotal"`
	Discount        float64         `json:"discount"`
	Tax             float64         `json:"tax"`
	Total           float64         `json:"total"`
	AmountPaid      float64         `json:"amount_paid"`
	IssueDate       string          `json:"issue_date,omitempty"`
	DueDate         string          `json:"due_date,omitempty"`
	Notes           string          `json:"notes,omitempty" gorm:"type:text"`
	IsRecurring     bool            `json:"is_recurring"`
	RecurringPeriod RecurringPeriod `json:"recurring_period,omitempty" gorm:"type:varchar(16)"`
	PeriodStart     string          `json:"period_start,omitempty"`
	PeriodEnd       string          `json:"period_end,omitempty"`
	LastGeneratedAt *time.Time      `json:"last_generated_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`

	Items []InvoiceItem `json:"items,omitempty" gorm:"foreignKey:InvoiceID"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (i Invoice) IsPaid() bool {
	return strings.EqualFold(string(i.Status), string(InvoicePaid))
}

func (i Invoice) IsDeleted() bool {
	return i.DeletedAt.Valid
}

// InvoiceItem.Amount is authoritative: it may differ from Quantity*UnitPrice
// when an explicit override was supplied.
type InvoiceItem struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	InvoiceID   int64     `json:"invoice_id" gorm:"not null;index"`
	AdID        *int64    `json:"ad_id,omitempty" gorm:"index"`
	ProductID   *int64    `json:"product_id,omitempty"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity" gorm:"not null;default:1"`
	UnitPrice   float64   `json:"unit_price"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}
