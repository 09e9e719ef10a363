package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"pharmastore-backend/internal/domains/cart/model"
	"pharmastore-backend/internal/domains/cart/storage"
	"pharmastore-backend/internal/shared/utils"
	"pharmastore-backend/pkg/logger"
)

type ClearCartHandler struct {
	storage storage.PersistentStorage
}

func NewClearCartHandler(st storage.PersistentStorage) *ClearCartHandler {
	return &ClearCartHandler{
		storage: st,
	}
}

func (h *ClearCartHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.ClearCartPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	logger.Info("Processing clear cart task", map[string]interface{}{
		"session_id": payload.SessionID,
	})

	if err := h.storage.Clear(ctx, model.StorageKey(payload.SessionID)); err != nil {
		logger.Info("Failed to clear cart", map[string]interface{}{
			"session_id": payload.SessionID,
			"error":      err.Error(),
		})
		return fmt.Errorf("clear cart: %w", err)
	}

	logger.Info("Cleared cart successfully", map[string]interface{}{
		"session_id": payload.SessionID,
	})

	return nil
}
