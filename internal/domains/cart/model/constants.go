package model

// Storage keys
const (
	// StorageKeyPrefix prefixes every persisted cart key
	StorageKeyPrefix = "cart:session:"
)

// StorageKey builds the persisted-cart key for a session
func StorageKey(sessionID string) string {
	return StorageKeyPrefix + sessionID
}
