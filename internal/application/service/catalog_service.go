package service

import (
	"context"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/billing"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogService handles product lookups and stock intake
type CatalogService struct {
	engine *billing.Engine
	log    *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(engine *billing.Engine, log *zap.Logger) *CatalogService {
	return &CatalogService{engine: engine, log: log}
}

// ListProductsInput represents the product listing filters
type ListProductsInput struct {
	Search     string
	Category   string
	Pagination pagination.Params
}

// ListProducts returns one page of matching products
func (s *CatalogService) ListProducts(_ context.Context, input *ListProductsInput) ([]entity.Product, *pagination.Meta) {
	products := s.engine.Catalog().List(billing.ProductFilter{
		Search:   input.Search,
		Category: input.Category,
	})
	return pagination.Slice(products, input.Pagination), pagination.NewMeta(input.Pagination, int64(len(products)))
}

// Categories returns the filter options, "All" first
func (s *CatalogService) Categories(_ context.Context) []string {
	return append([]string{entity.CategoryAll}, s.engine.Catalog().Categories()...)
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := s.engine.Catalog().FindByID(id)
	if !ok {
		return nil, billing.ErrProductNotFound
	}
	return &p, nil
}

// CreateProductInput represents the create product input. A zero ID picks
// the next free one.
type CreateProductInput struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
	Category  string
}

// CreateProduct adds a product to the catalog
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	p, err := s.engine.AddProduct(ctx, entity.Product{
		ID:        input.ID,
		Name:      input.Name,
		UnitPrice: input.UnitPrice,
		Stock:     input.Stock,
		Category:  input.Category,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product added", zap.Int64("product_id", p.ID), zap.String("name", p.Name), zap.Int("stock", p.Stock))
	return &p, nil
}

// Restock adds units to a product
func (s *CatalogService) Restock(ctx context.Context, id int64, amount int) (*entity.Product, error) {
	p, err := s.engine.Restock(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	s.log.Info("product restocked", zap.Int64("product_id", id), zap.Int("added", amount), zap.Int("stock", p.Stock))
	return &p, nil
}
