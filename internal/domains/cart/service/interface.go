package service

import (
	"context"

	"github.com/hibiken/asynq"

	"pharmastore-backend/internal/domains/cart/model"
)

// ServiceInterface defines session-scoped cart operations
type ServiceInterface interface {
	// GetCart loads (and repairs) the persisted cart for a session
	GetCart(ctx context.Context, sessionID string) (*model.CartResponse, error)

	// AddItem adds one unit of a product. May return
	// *model.VariantRequiredError, model.ErrOutOfStock or
	// *model.InsufficientStockError.
	AddItem(ctx context.Context, sessionID string, req model.AddItemRequest) (*model.CartResponse, error)

	// UpdateQuantity sets a line's quantity (0 removes), silently
	// clamped to the effective stock bound
	UpdateQuantity(ctx context.Context, sessionID, lineID string, req model.UpdateQuantityRequest) (*model.CartResponse, error)

	// RemoveItem deletes a line. Idempotent.
	RemoveItem(ctx context.Context, sessionID, lineID string) (*model.CartResponse, error)

	// ClearCart resets the cart to empty
	ClearCart(ctx context.Context, sessionID string) error

	// Checkout completes the purchase flow and schedules the cart to
	// be cleared
	Checkout(ctx context.Context, sessionID string) (*model.CheckoutResponse, error)
}

// TaskEnqueuer abstracts the asynq client for testability
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
