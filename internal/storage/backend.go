package storage

// Backend is the persistence layer the stores write through: a key-value
// byte store where each key holds one whole JSON document.
type Backend interface {
	// Get returns the bytes stored under key, or nil if the key is absent.
	Get(key string) ([]byte, error)
	// Set replaces the bytes stored under key.
	Set(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}
