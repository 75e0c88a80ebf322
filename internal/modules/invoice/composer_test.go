package invoice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
	"adops/internal/testutil"
)

type fixedNumber string

func (f fixedNumber) Next(context.Context) (string, error) { return string(f), nil }

func TestCompose(t *testing.T) {
	c := NewComposer(fixedNumber("INV-TEST"))
	lines := []Line{
		{Description: "Banner", Amount: testutil.Float(100)},
		{Description: "Story", Amount: testutil.Float(50)},
	}

	tests := []struct {
		status     domain.InvoiceStatus
		amountPaid float64
	}{
		{domain.InvoicePaid, 135},
		{domain.InvoicePending, 0},
		{domain.InvoiceOverdue, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			comp, err := c.Compose(context.Background(), lines, 20, 5, tt.status)
			require.NoError(t, err)
			assert.Equal(t, 150.0, comp.Subtotal)
			assert.Equal(t, 135.0, comp.Total)
			assert.Equal(t, tt.amountPaid, comp.AmountPaid)
			assert.Equal(t, "INV-TEST", comp.InvoiceNumber)
			assert.Len(t, comp.Items, 2)
		})
	}
}

func TestComposeAmountOverridesQuantityTimesPrice(t *testing.T) {
	c := NewComposer(fixedNumber("X"))
	comp, err := c.Compose(context.Background(), []Line{
		{Quantity: 3, UnitPrice: 10, Amount: testutil.Float(25)},
		{Quantity: 2, UnitPrice: 19.99},
		{UnitPrice: 5},
	}, 0, 0, domain.InvoicePending)

	require.NoError(t, err)
	assert.Equal(t, 25.0, comp.Items[0].Amount)
	assert.Equal(t, 39.98, comp.Items[1].Amount)
	assert.Equal(t, 1, comp.Items[2].Quantity)
	assert.Equal(t, 69.98, comp.Subtotal)
}

func TestComposeRejectsEmptyAndNegative(t *testing.T) {
	c := NewComposer(fixedNumber("X"))

	_, err := c.Compose(context.Background(), nil, 0, 0, domain.InvoicePending)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = c.Compose(context.Background(), []Line{{UnitPrice: 1}}, -1, 0, domain.InvoicePending)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
