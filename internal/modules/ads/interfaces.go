package ads

import (
	"context"

	"adops/internal/domain"
	"adops/internal/repository"
)

type AdRepository interface {
	Create(ctx context.Context, ad *domain.Ad) error
	GetByID(ctx context.Context, id int64) (*domain.Ad, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ad, error)
	List(ctx context.Context, f repository.AdFilter) ([]domain.Ad, error)
	ListCandidates(ctx context.Context, ad domain.Ad) ([]domain.Ad, error)
	ListOnPlacement(ctx context.Context, placement string) ([]domain.Ad, error)
	Update(ctx context.Context, id int64, patch map[string]any) error
	UpdateMany(ctx context.Context, ids []int64, patch map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
}

type advertiserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Advertiser, error)
	FindByName(ctx context.Context, name string) (*domain.Advertiser, error)
}

type productLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

type settingsReader interface {
	Get(ctx context.Context) (*domain.AdminSettings, error)
}

// Refresher rebuilds advertiser aggregates after ads change.
type Refresher interface {
	Refresh(ctx context.Context, ads ...domain.Ad)
}
