package storage

import "context"

// PersistentStorage is the durable key/value slot carts are saved to.
// One key per cart session; last writer wins (no versioning - see
// DESIGN.md on the multi-writer race).
type PersistentStorage interface {
	// Load reads the raw value for key.
	// Returns: (raw, found, error) - missing keys are not errors.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save overwrites the value for key
	Save(ctx context.Context, key string, raw []byte) error

	// Clear removes the key. Idempotent.
	Clear(ctx context.Context, key string) error

	// List returns all keys with the given prefix (background jobs)
	List(ctx context.Context, prefix string) ([]string, error)
}
