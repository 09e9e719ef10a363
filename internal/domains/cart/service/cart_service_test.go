package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmastore-backend/internal/domains/cart/model"
	"pharmastore-backend/internal/domains/cart/storage"
	productModel "pharmastore-backend/internal/domains/product/model"
	"pharmastore-backend/internal/shared"
)

// stubCatalog is an in-memory product service
type stubCatalog struct {
	products map[string]*productModel.Product
	stockErr error
}

func (c *stubCatalog) GetProduct(_ context.Context, productID string) (*productModel.Product, error) {
	p, ok := c.products[productID]
	if !ok {
		return nil, productModel.ErrProductNotFound
	}
	return p, nil
}

func (c *stubCatalog) GetStock(_ context.Context, productID, variantID string) (int, error) {
	if c.stockErr != nil {
		return 0, c.stockErr
	}
	p, ok := c.products[productID]
	if !ok {
		return 0, productModel.ErrProductNotFound
	}
	if variantID != "" {
		for _, v := range p.Variants {
			if v.ID == variantID {
				return v.Stock, nil
			}
		}
		return 0, productModel.ErrVariantNotFound
	}
	return p.Stock, nil
}

// stubEnqueuer records enqueued tasks
type stubEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *stubEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func simpleProduct(id string, price int64, stock int) *productModel.Product {
	return &productModel.Product{
		ID:        id,
		Name:      "Product " + id,
		UnitPrice: decimal.NewFromInt(price),
		Stock:     stock,
		IsActive:  true,
	}
}

func newTestService(catalog *stubCatalog, enqueuer *stubEnqueuer) (ServiceInterface, storage.PersistentStorage) {
	st := storage.NewMemoryStorage()
	if enqueuer == nil {
		enqueuer = &stubEnqueuer{}
	}
	return NewCartService(st, catalog, enqueuer), st
}

func TestAddItem_HappyPath(t *testing.T) {
	catalog := &stubCatalog{products: map[string]*productModel.Product{
		"P1": simpleProduct("P1", 100, 10),
	}}
	svc, _ := newTestService(catalog, nil)

	cart, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{ProductID: "P1"})
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "P1", cart.Lines[0].LineID)
	assert.Equal(t, 1, cart.TotalQuantity)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc, _ := newTestService(&stubCatalog{products: map[string]*productModel.Product{}}, nil)

	_, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{ProductID: "NOPE"})
	assert.ErrorIs(t, err, productModel.ErrProductNotFound)
}

func TestAddItem_InactiveProductIsOutOfStock(t *testing.T) {
	inactive := simpleProduct("P1", 100, 10)
	inactive.IsActive = false
	svc, _ := newTestService(&stubCatalog{products: map[string]*productModel.Product{
		"P1": inactive,
	}}, nil)

	_, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{ProductID: "P1"})
	assert.ErrorIs(t, err, model.ErrOutOfStock)
}

func TestAddItem_MissingProductID_Validation(t *testing.T) {
	svc, _ := newTestService(&stubCatalog{products: map[string]*productModel.Product{}}, nil)

	_, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{})
	assert.Error(t, err)
}

func TestAddItem_MultiVariantWithoutSelection_Signals(t *testing.T) {
	multi := simpleProduct("P1", 100, 10)
	multi.Variants = []productModel.Variant{
		{ID: "V1", Name: "Small", UnitPrice: decimal.NewFromInt(80), Stock: 3},
		{ID: "V2", Name: "Large", UnitPrice: decimal.NewFromInt(120), Stock: 6},
	}
	svc, _ := newTestService(&stubCatalog{products: map[string]*productModel.Product{
		"P1": multi,
	}}, nil)

	_, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{ProductID: "P1"})

	var variantRequired *model.VariantRequiredError
	require.ErrorAs(t, err, &variantRequired)
	assert.Equal(t, "P1", variantRequired.ProductID)
	assert.Len(t, variantRequired.Variants, 2)

	// The interrupted add must not have touched the cart
	cart, err := svc.GetCart(context.Background(), "sess1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestAddItem_ResubmitWithVariant(t *testing.T) {
	multi := simpleProduct("P1", 100, 10)
	multi.Variants = []productModel.Variant{
		{ID: "V1", Name: "Small", UnitPrice: decimal.NewFromInt(80), Stock: 3},
		{ID: "V2", Name: "Large", UnitPrice: decimal.NewFromInt(120), Stock: 6},
	}
	svc, _ := newTestService(&stubCatalog{products: map[string]*productModel.Product{
		"P1": multi,
	}}, nil)

	cart, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{
		ProductID: "P1",
		VariantID: "V2",
	})
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "P1-V2", cart.Lines[0].LineID)
	assert.True(t, cart.Lines[0].UnitPrice.Equal(decimal.NewFromInt(120)))
}

func TestSessionIsolation(t *testing.T) {
	catalog := &stubCatalog{products: map[string]*productModel.Product{
		"P1": simpleProduct("P1", 100, 10),
	}}
	svc, _ := newTestService(catalog, nil)

	_, err := svc.AddItem(context.Background(), "sessA", model.AddItemRequest{ProductID: "P1"})
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), "sessB")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestUpdateQuantity_Clamped(t *testing.T) {
	catalog := &stubCatalog{products: map[string]*productModel.Product{
		"P1": simpleProduct("P1", 100, 5),
	}}
	svc, _ := newTestService(catalog, nil)

	_, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{ProductID: "P1"})
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(context.Background(), "sess1", "P1", model.UpdateQuantityRequest{Quantity: 99})
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
}

func TestRemoveItem_ThenCartIsEmpty(t *testing.T) {
	catalog := &stubCatalog{products: map[string]*productModel.Product{
		"P1": simpleProduct("P1", 100, 5),
	}}
	svc, _ := newTestService(catalog, nil)

	_, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{ProductID: "P1"})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), "sess1", "P1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestCheckout_EnqueuesClearTask(t *testing.T) {
	catalog := &stubCatalog{products: map[string]*productModel.Product{
		"P1": simpleProduct("P1", 100, 5),
	}}
	enqueuer := &stubEnqueuer{}
	svc, _ := newTestService(catalog, enqueuer)

	_, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{ProductID: "P1"})
	require.NoError(t, err)

	resp, err := svc.Checkout(context.Background(), "sess1")
	require.NoError(t, err)

	assert.Equal(t, "sess1", resp.SessionID)
	assert.Equal(t, 1, resp.TotalQuantity)
	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, shared.TypeClearCart, enqueuer.tasks[0].Type())
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _ := newTestService(&stubCatalog{products: map[string]*productModel.Product{}}, nil)

	_, err := svc.Checkout(context.Background(), "sess1")
	assert.ErrorIs(t, err, model.ErrCartEmpty)
}

func TestCheckout_EnqueueFailure_ClearsInline(t *testing.T) {
	catalog := &stubCatalog{products: map[string]*productModel.Product{
		"P1": simpleProduct("P1", 100, 5),
	}}
	enqueuer := &stubEnqueuer{err: errors.New("redis down")}
	svc, _ := newTestService(catalog, enqueuer)

	_, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{ProductID: "P1"})
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), "sess1")
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), "sess1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestClearCart(t *testing.T) {
	catalog := &stubCatalog{products: map[string]*productModel.Product{
		"P1": simpleProduct("P1", 100, 5),
	}}
	svc, _ := newTestService(catalog, nil)

	_, err := svc.AddItem(context.Background(), "sess1", model.AddItemRequest{ProductID: "P1"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(context.Background(), "sess1"))

	cart, err := svc.GetCart(context.Background(), "sess1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}
