package settings

import (
	"context"
	"errors"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
	"adops/internal/pkg/validator"
	"adops/internal/repository"
)

type Repository interface {
	Get(ctx context.Context, key string) (*domain.AdminSettings, error)
	Create(ctx context.Context, s *domain.AdminSettings) error
	Update(ctx context.Context, key string, patch map[string]any) error
}

type UpdateRequest struct {
	MaxAdsPerDay  *int `json:"max_ads_per_day" validate:"omitempty,gte=0"`
	MaxAdsPerSlot *int `json:"max_ads_per_slot" validate:"omitempty,gte=0"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the settings row, creating it with defaults on first read. Two
// concurrent first reads race on the unique key; the loser re-reads.
func (s *Service) Get(ctx context.Context) (*domain.AdminSettings, error) {
	st, err := s.repo.Get(ctx, domain.SettingsSingletonKey)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	st = &domain.AdminSettings{Key: domain.SettingsSingletonKey}
	if err := s.repo.Create(ctx, st); err != nil {
		if repository.IsUniqueViolation(err) {
			return s.repo.Get(ctx, domain.SettingsSingletonKey)
		}
		return nil, err
	}
	return st, nil
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) (*domain.AdminSettings, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx); err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if req.MaxAdsPerDay != nil {
		patch["max_ads_per_day"] = *req.MaxAdsPerDay
	}
	if req.MaxAdsPerSlot != nil {
		patch["max_ads_per_slot"] = *req.MaxAdsPerSlot
	}
	if len(patch) > 0 {
		if err := s.repo.Update(ctx, domain.SettingsSingletonKey, patch); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, domain.SettingsSingletonKey)
}
