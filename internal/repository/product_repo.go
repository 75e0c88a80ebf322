package repository

import (
	"context"

	"gorm.io/gorm"

	"adops/internal/domain"
)

type ProductRepository struct {
	table *Table[domain.Product]
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{table: NewTable[domain.Product](db, "products")}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.table.Insert(ctx, p)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return r.table.First(ctx, Query{Filters: []Filter{Eq("id", id)}})
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.table.Select(ctx, Query{Order: "product_name"})
}

// PriceIndex maps product id to price for the given ids. Unknown ids are
// simply absent.
func (r *ProductRepository) PriceIndex(ctx context.Context, ids []int64) (map[int64]float64, error) {
	out := make(map[int64]float64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.table.Select(ctx, Query{Filters: []Filter{In("id", ids)}})
	if err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p.Price
	}
	return out, nil
}
