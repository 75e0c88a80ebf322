package repository

import (
	"context"

	"gorm.io/gorm"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
)

type AdFilter struct {
	Status          string
	Advertiser      string
	Placement       string
	IncludeArchived bool
	Limit           int
	Offset          int

	// From and To keep ads with an occurrence in the inclusive window. They
	// are applied by the ads service after expansion, not in SQL.
	From string
	To   string
}

type AdRepository struct {
	table *Table[domain.Ad]
}

func NewAdRepository(db *gorm.DB) *AdRepository {
	return &AdRepository{table: NewTable[domain.Ad](db, "ads")}
}

func (r *AdRepository) Create(ctx context.Context, ad *domain.Ad) error {
	return r.table.Insert(ctx, ad)
}

func (r *AdRepository) GetByID(ctx context.Context, id int64) (*domain.Ad, error) {
	return r.table.First(ctx, Query{Filters: []Filter{Eq("id", id)}})
}

func (r *AdRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ad, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.table.Select(ctx, Query{Filters: []Filter{In("id", ids)}, Order: "id"})
}

// List returns ads newest first.
func (r *AdRepository) List(ctx context.Context, f AdFilter) ([]domain.Ad, error) {
	var filters []Filter
	if f.Status != "" {
		filters = append(filters, Fold("status", f.Status))
	}
	if f.Advertiser != "" {
		filters = append(filters, Fold("advertiser", f.Advertiser))
	}
	if f.Placement != "" {
		filters = append(filters, Fold("placement", f.Placement))
	}
	if !f.IncludeArchived {
		filters = append(filters, Eq("archived", false))
	}
	return r.table.Select(ctx, Query{
		Filters: filters,
		Order:   "created_at DESC, id DESC",
		Limit:   f.Limit,
		Offset:  f.Offset,
	})
}

// ListForAdvertiser returns every ad joined to adv by id or by name, archived
// ones included. SQL only narrows by id; the name join runs in Go through
// Ad.BelongsTo so both sides share one normalization.
func (r *AdRepository) ListForAdvertiser(ctx context.Context, adv domain.Advertiser) ([]domain.Ad, error) {
	var rows []domain.Ad
	err := r.table.DB().WithContext(ctx).
		Where("advertiser_id = ? OR advertiser_id IS NULL", adv.ID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Store("select ads", err)
	}

	out := rows[:0]
	for _, ad := range rows {
		if ad.BelongsTo(adv) {
			out = append(out, ad)
		}
	}
	return out, nil
}

// ListCandidates returns non-archived ads sharing the placement and, by id or
// name, the advertiser of ad. These are the only ads a duplicate can come from.
// The advertiser match is Ad.SameAdvertiser, applied after the placement query.
func (r *AdRepository) ListCandidates(ctx context.Context, ad domain.Ad) ([]domain.Ad, error) {
	tx := r.table.DB().WithContext(ctx).
		Where("archived = ?", false).
		Where("LOWER(TRIM(placement)) = LOWER(TRIM(?))", ad.Placement)
	if ad.AdvertiserID != nil {
		tx = tx.Where("advertiser_id = ? OR advertiser_id IS NULL", *ad.AdvertiserID)
	}

	var rows []domain.Ad
	if err := tx.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, apperr.Store("select ads", err)
	}

	out := rows[:0]
	for _, other := range rows {
		if ad.SameAdvertiser(other) {
			out = append(out, other)
		}
	}
	return out, nil
}

// ListAll returns every ad including archived ones, for audits.
func (r *AdRepository) ListAll(ctx context.Context) ([]domain.Ad, error) {
	return r.table.Select(ctx, Query{Order: "id"})
}

func (r *AdRepository) Update(ctx context.Context, id int64, patch map[string]any) error {
	n, err := r.table.Update(ctx, []Filter{Eq("id", id)}, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("ad", idKey(id))
	}
	return nil
}

func (r *AdRepository) UpdateMany(ctx context.Context, ids []int64, patch map[string]any) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.table.Update(ctx, []Filter{In("id", ids)}, patch)
}

func (r *AdRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.table.Delete(ctx, Eq("id", id))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("ad", idKey(id))
	}
	return nil
}

func (r *AdRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.table.Delete(ctx, In("id", ids))
}

// ListOnPlacement returns the non-archived ads booked on placement.
func (r *AdRepository) ListOnPlacement(ctx context.Context, placement string) ([]domain.Ad, error) {
	return r.table.Select(ctx, Query{
		Filters: []Filter{Eq("archived", false), Fold("placement", placement)},
		Order:   "id",
	})
}
