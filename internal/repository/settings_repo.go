package repository

import (
	"context"

	"gorm.io/gorm"

	"adops/internal/domain"
)

type SettingsRepository struct {
	table *Table[domain.AdminSettings]
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{table: NewTable[domain.AdminSettings](db, "admin_settings")}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (*domain.AdminSettings, error) {
	return r.table.First(ctx, Query{Filters: []Filter{Eq("settings_key", key)}})
}

func (r *SettingsRepository) Create(ctx context.Context, s *domain.AdminSettings) error {
	return r.table.Insert(ctx, s)
}

func (r *SettingsRepository) Update(ctx context.Context, key string, patch map[string]any) error {
	_, err := r.table.Update(ctx, []Filter{Eq("settings_key", key)}, patch)
	return err
}
