package invoice

import (
	"context"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
	"adops/internal/pkg/money"
)

// Line is one invoice line before it is stored. Amount, when set, overrides
// Quantity*UnitPrice.
type Line struct {
	AdID        *int64
	ProductID   *int64
	Description string
	Quantity    int
	UnitPrice   float64
	Amount      *float64
}

func (l Line) amount() float64 {
	if l.Amount != nil {
		return money.Round(*l.Amount)
	}
	return money.Mul(l.UnitPrice, l.quantity())
}

func (l Line) quantity() int {
	if l.Quantity <= 0 {
		return 1
	}
	return l.Quantity
}

type Composition struct {
	Items         []domain.InvoiceItem `json:"items"`
	Subtotal      float64              `json:"subtotal"`
	Discount      float64              `json:"discount"`
	Tax           float64              `json:"tax"`
	Total         float64              `json:"total"`
	AmountPaid    float64              `json:"amount_paid"`
	InvoiceNumber string               `json:"invoice_number"`
}

type Composer struct {
	numbers NumberStrategy
}

func NewComposer(numbers NumberStrategy) *Composer {
	return &Composer{numbers: numbers}
}

// Compose prices the lines: subtotal is the sum of line amounts, total is
// subtotal - discount + tax, and amount_paid equals total only for Paid.
func (c *Composer) Compose(ctx context.Context, lines []Line, discount, tax float64, status domain.InvoiceStatus) (*Composition, error) {
	if len(lines) == 0 {
		return nil, apperr.Validation("items", "an invoice needs at least one line item")
	}
	if discount < 0 || tax < 0 {
		return nil, apperr.Validation("discount", "discount and tax must not be negative")
	}

	items := make([]domain.InvoiceItem, 0, len(lines))
	amounts := make([]float64, 0, len(lines))
	for _, l := range lines {
		amt := l.amount()
		items = append(items, domain.InvoiceItem{
			AdID:        l.AdID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.quantity(),
			UnitPrice:   money.Round(l.UnitPrice),
			Amount:      amt,
		})
		amounts = append(amounts, amt)
	}

	subtotal := money.Sum(amounts...)
	total := money.Sum(subtotal, -discount, tax)
	paid := 0.0
	if status == domain.InvoicePaid {
		paid = total
	}

	number, err := c.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}

	return &Composition{
		Items:         items,
		Subtotal:      subtotal,
		Discount:      money.Round(discount),
		Tax:           money.Round(tax),
		Total:         total,
		AmountPaid:    paid,
		InvoiceNumber: number,
	}, nil
}
