// Package repo contains all persistence logic for the Protokoll editor.
// Storage is a small key/value "slot" abstraction with one implementation per
// backend; SessionRepo and LanguageRepo map domain values onto named slots.
// No business logic lives here, only encoding and storage access.
package repo

import "context"

// SlotStore is a durable string-keyed store holding one value per key.
// The session and language repos depend on this interface, not on a concrete
// backend, which allows them to be tested against the in-memory store.
type SlotStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key holds no value.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
