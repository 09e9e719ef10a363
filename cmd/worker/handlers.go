package main

import (
	"github.com/hibiken/asynq"

	cartJob "pharmastore-backend/internal/domains/cart/job"
	"pharmastore-backend/internal/shared"
	"pharmastore-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	clearCart      *cartJob.ClearCartHandler
	reconcileStock *cartJob.ReconcileStockHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		clearCart:      cartJob.NewClearCartHandler(c.CartStorage),
		reconcileStock: cartJob.NewReconcileStockHandler(c.CartStorage, c.ProductService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeClearCart, h.clearCart.ProcessTask)
	mux.HandleFunc(shared.TypeReconcileStock, h.reconcileStock.ProcessTask)
}
