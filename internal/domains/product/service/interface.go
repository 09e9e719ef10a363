package service

import (
	"context"

	"pharmastore-backend/internal/domains/product/model"
)

// ServiceInterface exposes catalog reads to other domains
type ServiceInterface interface {
	// GetProduct returns a product with its variants
	GetProduct(ctx context.Context, productID string) (*model.Product, error)

	// GetStock returns the current (cached) stock for a product or
	// variant
	GetStock(ctx context.Context, productID, variantID string) (int, error)
}
