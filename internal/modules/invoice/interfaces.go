package invoice

import (
	"context"

	"adops/internal/domain"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	List(ctx context.Context, includeDeleted bool) ([]domain.Invoice, error)
	NumbersWithPrefix(ctx context.Context, prefix string) ([]string, error)
	Update(ctx context.Context, id int64, patch map[string]any) error
	SoftDelete(ctx context.Context, id int64) error
}

type adRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ad, error)
	ListForAdvertiser(ctx context.Context, adv domain.Advertiser) ([]domain.Ad, error)
	UpdateMany(ctx context.Context, ids []int64, patch map[string]any) (int64, error)
}

type advertiserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Advertiser, error)
	FindByName(ctx context.Context, name string) (*domain.Advertiser, error)
	Resolve(ctx context.Context, key string) (*domain.Advertiser, error)
}

type priceReader interface {
	PriceIndex(ctx context.Context, ids []int64) (map[int64]float64, error)
}

type Refresher interface {
	Refresh(ctx context.Context, ads ...domain.Ad)
}
