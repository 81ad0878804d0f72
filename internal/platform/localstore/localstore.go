// Package localstore provides synchronous, string-serialized key-value
// storage for session-local state. Unlike the Firestore mirror, localstore
// operations never touch the network, so store mutations can persist
// locally before any remote write is attempted.
package localstore

import "errors"

// ErrClosed is returned when operating on a closed store.
var ErrClosed = errors.New("localstore: store is closed")

// Store is a synchronous key-value store with string values.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
