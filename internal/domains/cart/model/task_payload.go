package model

// ClearCartPayload for clearing the persisted cart after checkout
type ClearCartPayload struct {
	SessionID string `json:"session_id"`
}

// ReconcileStockPayload for the periodic re-clamp of persisted carts
// against live stock. Empty: the handler scans all cart keys.
type ReconcileStockPayload struct{}
