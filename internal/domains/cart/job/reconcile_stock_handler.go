package job

import (
	"context"

	"github.com/hibiken/asynq"

	"pharmastore-backend/internal/domains/cart/model"
	"pharmastore-backend/internal/domains/cart/storage"
	"pharmastore-backend/internal/domains/cart/store"
	"pharmastore-backend/pkg/logger"
)

// ReconcileStockHandler walks every persisted cart and re-clamps line
// quantities against live stock. Carts the shop can no longer honor
// shrink before the user comes back, not at checkout.
type ReconcileStockHandler struct {
	storage storage.PersistentStorage
	stocks  store.StockProvider
}

func NewReconcileStockHandler(st storage.PersistentStorage, stocks store.StockProvider) *ReconcileStockHandler {
	return &ReconcileStockHandler{
		storage: st,
		stocks:  stocks,
	}
}

func (h *ReconcileStockHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	keys, err := h.storage.List(ctx, model.StorageKeyPrefix)
	if err != nil {
		logger.Error("ReconcileStock: failed to list carts", err)
		return err
	}

	reconciled := 0
	for _, key := range keys {
		// Reconcile never prompts for variants, so no prompt is wired
		cartStore := store.New(key, h.storage, h.stocks, nil)
		if err := cartStore.Load(ctx); err != nil {
			logger.Error("ReconcileStock: failed to load cart", err)
			continue
		}

		changed, err := cartStore.Reconcile(ctx)
		if err != nil {
			logger.Error("ReconcileStock: failed to reconcile cart", err)
			continue
		}
		if changed {
			reconciled++
		}
	}

	logger.Info("ReconcileStock: pass complete", map[string]interface{}{
		"carts":      len(keys),
		"reconciled": reconciled,
	})

	return nil
}
