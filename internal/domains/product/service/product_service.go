package service

import (
	"context"
	"fmt"
	"time"

	"pharmastore-backend/internal/domains/product/model"
	"pharmastore-backend/internal/domains/product/repository"
)

type ProductService struct {
	repository repository.RepositoryInterface
	stockCache *StockCache
}

func NewProductService(r repository.RepositoryInterface, stockTTL time.Duration) ServiceInterface {
	return &ProductService{
		repository: r,
		stockCache: NewStockCache(r, stockTTL),
	}
}

// GetProduct implements ServiceInterface.GetProduct
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id is required")
	}

	product, err := s.repository.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return product, nil
}

// GetStock implements ServiceInterface.GetStock.
// Served through the short-lived cache; repeated lookups within the
// freshness window don't touch the database.
func (s *ProductService) GetStock(ctx context.Context, productID, variantID string) (int, error) {
	return s.stockCache.GetStock(ctx, productID, variantID)
}
