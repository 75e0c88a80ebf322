package advertiser

import (
	"context"

	"adops/internal/domain"
)

type AdvertiserRepository interface {
	Create(ctx context.Context, a *domain.Advertiser) error
	GetByID(ctx context.Context, id int64) (*domain.Advertiser, error)
	FindByName(ctx context.Context, name string) (*domain.Advertiser, error)
	Resolve(ctx context.Context, key string) (*domain.Advertiser, error)
	List(ctx context.Context, status string) ([]domain.Advertiser, error)
	UpdateCaches(ctx context.Context, id int64, totalSpend float64, nextAdDate *string) error
}

type adReader interface {
	ListForAdvertiser(ctx context.Context, adv domain.Advertiser) ([]domain.Ad, error)
}

type invoiceReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Invoice, error)
}

type priceReader interface {
	PriceIndex(ctx context.Context, ids []int64) (map[int64]float64, error)
}
