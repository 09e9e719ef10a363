package model

import (
	"errors"
	"fmt"

	productModel "pharmastore-backend/internal/domains/product/model"
)

// Error codes returned to clients
const (
	ErrCodeOutOfStock        = "OUT_OF_STOCK"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeVariantRequired   = "VARIANT_REQUIRED"
	ErrCodeStockLookupFailed = "STOCK_LOOKUP_FAILED"
)

var (
	// ErrOutOfStock - resolved stock is 0 at add time, no mutation
	ErrOutOfStock = errors.New("product is out of stock")

	// ErrStockLookupFailed - stock service unreachable; callers fall
	// back to locally known bounds, never to "unlimited"
	ErrStockLookupFailed = errors.New("stock lookup failed")

	// ErrVariantSelectionCancelled - user dismissed the variant prompt;
	// the cart is left unmodified
	ErrVariantSelectionCancelled = errors.New("variant selection cancelled")

	// ErrCorruptPersistedState - stored cart could not be decoded;
	// recovered by starting from an empty cart, never propagated
	ErrCorruptPersistedState = errors.New("corrupt persisted cart state")

	// ErrCartEmpty - checkout requested on an empty cart
	ErrCartEmpty = errors.New("cart is empty")
)

// InsufficientStockError reports an add that would exceed the resolved
// stock. Carries the exact available count so the UI can show
// "Only N left in stock".
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: only %d available", e.Available)
}

// VariantRequiredError is a control-flow signal, not a failure: the
// product has multiple purchasable variants and none was specified.
// The caller re-invokes the add once the user picks one.
type VariantRequiredError struct {
	ProductID string
	Variants  []productModel.Variant
}

func (e *VariantRequiredError) Error() string {
	return fmt.Sprintf("product %s requires a variant selection (%d options)", e.ProductID, len(e.Variants))
}
