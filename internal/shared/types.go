package shared

// Task type names registered with the worker
const (
	TypeClearCart      = "cart:clear"
	TypeReconcileStock = "cart:reconcile_stock"
)

// Queue names
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)
