// Package catalog manages the priced products ads and invoice lines fall back
// to when they carry no explicit price.
package catalog

import (
	"context"
	"strings"

	"adops/internal/domain"
	"adops/internal/pkg/money"
	"adops/internal/pkg/validator"
)

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type Service struct {
	products ProductRepository
}

func NewService(products ProductRepository) *Service {
	return &Service{products: products}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	req.ProductName = strings.TrimSpace(req.ProductName)
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	p := &domain.Product{
		ProductName:   req.ProductName,
		PlacementType: strings.TrimSpace(req.PlacementType),
		Price:         money.Round(req.Price),
		Description:   req.Description,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
