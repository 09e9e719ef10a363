package repository

import (
	"context"

	"pharmastore-backend/internal/domains/product/model"
)

// RepositoryInterface defines read-only catalog access.
// The cart treats this as the authoritative stock source.
type RepositoryInterface interface {
	// GetProduct retrieves a product with its variants.
	// Returns model.ErrProductNotFound if not exists.
	GetProduct(ctx context.Context, productID string) (*model.Product, error)

	// GetStock returns the current stock count for a product, or for
	// one of its variants when variantID is non-empty.
	// Returns model.ErrProductNotFound / model.ErrVariantNotFound.
	GetStock(ctx context.Context, productID, variantID string) (int, error)
}
