package repository

import (
	"context"

	"gorm.io/gorm"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
)

type InvoiceRepository struct {
	invoices *Table[domain.Invoice]
	items    *Table[domain.InvoiceItem]
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{
		invoices: NewTable[domain.Invoice](db, "invoices"),
		items:    NewTable[domain.InvoiceItem](db, "invoice_items"),
	}
}

// Create inserts the invoice together with its items.
func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.invoices.Insert(ctx, inv)
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	return r.invoices.First(ctx, Query{Filters: []Filter{Eq("id", id)}, Preload: []string{"Items"}})
}

func (r *InvoiceRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Invoice, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.invoices.Select(ctx, Query{Filters: []Filter{In("id", ids)}})
}

func (r *InvoiceRepository) List(ctx context.Context, includeDeleted bool) ([]domain.Invoice, error) {
	return r.invoices.Select(ctx, Query{
		Order:    "created_at DESC, id DESC",
		Preload:  []string{"Items"},
		Unscoped: includeDeleted,
	})
}

// ListForAudit returns all invoices, soft-deleted ones included, and all items.
func (r *InvoiceRepository) ListForAudit(ctx context.Context) ([]domain.Invoice, []domain.InvoiceItem, error) {
	invoices, err := r.invoices.Select(ctx, Query{Order: "id", Unscoped: true})
	if err != nil {
		return nil, nil, err
	}
	items, err := r.items.Select(ctx, Query{Order: "id"})
	if err != nil {
		return nil, nil, err
	}
	return invoices, items, nil
}

// NumbersWithPrefix lists invoice numbers starting with prefix, including
// numbers held by soft-deleted invoices since the unique index still covers them.
func (r *InvoiceRepository) NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	err := r.invoices.DB().WithContext(ctx).
		Unscoped().
		Model(&domain.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Pluck("invoice_number", &numbers).Error
	if err != nil {
		return nil, apperr.Store("select invoices", err)
	}
	return numbers, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, id int64, patch map[string]any) error {
	n, err := r.invoices.Update(ctx, []Filter{Eq("id", id)}, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("invoice", idKey(id))
	}
	return nil
}

// SoftDelete sets deleted_at. Items and ad links stay in place for audits.
func (r *InvoiceRepository) SoftDelete(ctx context.Context, id int64) error {
	n, err := r.invoices.Delete(ctx, Eq("id", id))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("invoice", idKey(id))
	}
	return nil
}
