package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"pharmastore-backend/internal/domains/cart/model"
	"pharmastore-backend/internal/domains/cart/storage"
	"pharmastore-backend/internal/domains/cart/store"
	productService "pharmastore-backend/internal/domains/product/service"
	"pharmastore-backend/internal/shared"
	"pharmastore-backend/pkg/logger"
)

type CartService struct {
	storage     storage.PersistentStorage
	products    productService.ServiceInterface
	prompt      store.VariantPrompt
	asynqClient TaskEnqueuer
}

func NewCartService(
	st storage.PersistentStorage,
	products productService.ServiceInterface,
	asynqClient TaskEnqueuer,
) ServiceInterface {
	return &CartService{
		storage:     st,
		products:    products,
		prompt:      signalPrompt{},
		asynqClient: asynqClient,
	}
}

// openStore builds a Store bound to the session's storage key and
// loads (repairing if needed) its persisted state
func (s *CartService) openStore(ctx context.Context, sessionID string) (*store.Store, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	cartStore := store.New(model.StorageKey(sessionID), s.storage, s.products, s.prompt)
	if err := cartStore.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to open cart: %w", err)
	}

	return cartStore, nil
}

// GetCart implements ServiceInterface.GetCart
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	cartStore, err := s.openStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return cartStore.State().ToResponse(), nil
}

// AddItem implements ServiceInterface.AddItem
func (s *CartService) AddItem(ctx context.Context, sessionID string, req model.AddItemRequest) (*model.CartResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cartStore, err := s.openStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Step 2: Build the add candidate from the catalog
	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, model.ErrOutOfStock
	}

	stockHint := req.Stock
	if stockHint == nil && !product.HasVariants() {
		stock := product.Stock
		stockHint = &stock
	}

	candidate := model.AddCandidate{
		ProductID:       product.ID,
		Name:            product.Name,
		UnitPrice:       product.UnitPrice,
		DiscountedPrice: product.DiscountedPrice,
		StockHint:       stockHint,
		Variants:        product.Variants,
		ImageRef:        product.ImageRef,
		Size:            product.Size,
		SellerRef:       product.SellerRef,
	}

	// Step 3: Let the store resolve stock and merge-or-append.
	// Stock and variant outcomes propagate as-is for the handler to
	// translate; they are expected conditions, not server faults.
	if err := cartStore.AddItem(ctx, candidate, req.VariantID); err != nil {
		return nil, err
	}

	return cartStore.State().ToResponse(), nil
}

// UpdateQuantity implements ServiceInterface.UpdateQuantity
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, lineID string, req model.UpdateQuantityRequest) (*model.CartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cartStore, err := s.openStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := cartStore.UpdateQuantity(ctx, lineID, req.Quantity, req.Stock); err != nil {
		return nil, err
	}

	return cartStore.State().ToResponse(), nil
}

// RemoveItem implements ServiceInterface.RemoveItem
func (s *CartService) RemoveItem(ctx context.Context, sessionID, lineID string) (*model.CartResponse, error) {
	cartStore, err := s.openStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := cartStore.RemoveItem(ctx, lineID); err != nil {
		return nil, err
	}

	return cartStore.State().ToResponse(), nil
}

// ClearCart implements ServiceInterface.ClearCart
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	cartStore, err := s.openStore(ctx, sessionID)
	if err != nil {
		return err
	}

	return cartStore.Clear(ctx)
}

// Checkout implements ServiceInterface.Checkout.
// Payment itself is a black box upstream of this call; here the order
// is acknowledged and the cart clear is scheduled on the worker.
func (s *CartService) Checkout(ctx context.Context, sessionID string) (*model.CheckoutResponse, error) {
	cartStore, err := s.openStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state := cartStore.State()
	if len(state.Lines) == 0 {
		return nil, model.ErrCartEmpty
	}

	resp := &model.CheckoutResponse{
		SessionID:     sessionID,
		TotalQuantity: state.TotalQuantity,
		Total:         state.DiscountedTotal,
	}

	payload, err := json.Marshal(model.ClearCartPayload{SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal clear cart payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeClearCart, payload)
	if _, err := s.asynqClient.Enqueue(task, asynq.Queue(shared.QueueHigh)); err != nil {
		// Worker unreachable: clear synchronously so the user never
		// checks out twice with the same cart
		logger.Error("Failed to enqueue clear cart task, clearing inline", err)
		if err := cartStore.Clear(ctx); err != nil {
			return nil, err
		}
	}

	return resp, nil
}
