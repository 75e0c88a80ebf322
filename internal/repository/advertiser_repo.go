package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
)

type AdvertiserRepository struct {
	table *Table[domain.Advertiser]
}

func NewAdvertiserRepository(db *gorm.DB) *AdvertiserRepository {
	return &AdvertiserRepository{table: NewTable[domain.Advertiser](db, "advertisers")}
}

func (r *AdvertiserRepository) Create(ctx context.Context, a *domain.Advertiser) error {
	return r.table.Insert(ctx, a)
}

func (r *AdvertiserRepository) GetByID(ctx context.Context, id int64) (*domain.Advertiser, error) {
	return r.table.First(ctx, Query{Filters: []Filter{Eq("id", id)}})
}

// FindByName matches on the normalized name. Rows stored before names were
// cleaned on write are found by the slower full scan.
func (r *AdvertiserRepository) FindByName(ctx context.Context, name string) (*domain.Advertiser, error) {
	adv, err := r.table.First(ctx, Query{Filters: []Filter{Fold("advertiser_name", domain.CleanName(name))}, Order: "id"})
	if err == nil || !errors.Is(err, apperr.ErrNotFound) {
		return adv, err
	}

	key := domain.NormalizeName(name)
	if key == "" {
		return nil, err
	}
	all, lerr := r.table.Select(ctx, Query{Order: "id"})
	if lerr != nil {
		return nil, lerr
	}
	for i := range all {
		if domain.NormalizeName(all[i].Name) == key {
			return &all[i], nil
		}
	}
	return nil, err
}

// Resolve accepts either a numeric id or a display name.
func (r *AdvertiserRepository) Resolve(ctx context.Context, key string) (*domain.Advertiser, error) {
	key = strings.TrimSpace(key)
	if id, err := strconv.ParseInt(key, 10, 64); err == nil && id > 0 {
		if adv, err := r.GetByID(ctx, id); err == nil {
			return adv, nil
		}
	}
	return r.FindByName(ctx, key)
}

func (r *AdvertiserRepository) List(ctx context.Context, status string) ([]domain.Advertiser, error) {
	q := Query{Order: "advertiser_name"}
	if status != "" {
		q.Filters = append(q.Filters, Fold("status", status))
	}
	return r.table.Select(ctx, q)
}

// UpdateCaches overwrites the derived spend and next-ad-date columns.
func (r *AdvertiserRepository) UpdateCaches(ctx context.Context, id int64, totalSpend float64, nextAdDate *string) error {
	_, err := r.table.Update(ctx, []Filter{Eq("id", id)}, map[string]any{
		"total_spend":  totalSpend,
		"next_ad_date": nextAdDate,
	})
	return err
}
