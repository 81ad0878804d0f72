// Package wishlist implements the session wishlist: a deduplicated set of
// product references persisted only to local device storage. Unlike the
// cart there is no remote mirror, so every mutation is fully synchronous.
package wishlist

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/kridana/kridana-api/internal/platform/localstore"
	applog "github.com/kridana/kridana-api/internal/platform/logging"
	"github.com/kridana/kridana-api/internal/store/cart"
)

const localKeyPrefix = "wishlist:"

// Entry is one wishlist item. ItemID is the set key; at most one entry per
// ItemID exists, regardless of size variants.
type Entry struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	ImageRef  string  `json:"imageRef"`
}

// Store holds one user's wishlist. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	local   localstore.Store
	userID  string
}

// NewStore loads a user's wishlist from local storage. A missing or corrupt
// cache starts the wishlist empty.
func NewStore(ctx context.Context, local localstore.Store, userID string) *Store {
	s := &Store{local: local, userID: userID}
	s.entries = s.loadLocal(ctx)
	return s
}

// Add inserts the product if its identity is not already present. Adding an
// existing identity is a no-op; this is a set, not a multiset. Products
// without an identity are ignored.
func (s *Store) Add(product cart.Product) {
	line, ok := cart.Normalize(product, "")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(line.ItemID) >= 0 {
		return
	}
	s.entries = append(s.entries, Entry{
		ItemID:    line.ItemID,
		Name:      line.Name,
		UnitPrice: line.UnitPrice,
		ImageRef:  line.ImageRef,
	})
	s.persist()
}

// Remove removes the entry with the given identity. Absent entries are a
// no-op.
func (s *Store) Remove(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(itemID)
	if idx < 0 {
		return
	}
	s.entries = slices.Delete(s.entries, idx, idx+1)
	s.persist()
}

// Clear empties the wishlist and removes the local storage key.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if err := s.local.Delete(s.localKey()); err != nil {
		applog.LogWarn(context.Background(), "wishlist local clear failed",
			zap.String("userId", s.userID), zap.Error(err))
	}
}

// Contains reports whether the identity is on the wishlist.
func (s *Store) Contains(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(itemID) >= 0
}

// Entries returns a copy of the current entries in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// persist re-serializes the full collection to local storage. Callers hold
// s.mu.
func (s *Store) persist() {
	data, err := json.Marshal(s.entries)
	if err != nil {
		applog.LogError(context.Background(), "wishlist serialization failed", err,
			zap.String("userId", s.userID))
		return
	}
	if err := s.local.Set(s.localKey(), string(data)); err != nil {
		applog.LogWarn(context.Background(), "wishlist local persist failed",
			zap.String("userId", s.userID), zap.Error(err))
	}
}

func (s *Store) loadLocal(ctx context.Context) []Entry {
	raw, ok, err := s.local.Get(s.localKey())
	if err != nil {
		applog.LogWarn(ctx, "wishlist local load failed",
			zap.String("userId", s.userID), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		applog.LogWarn(ctx, "wishlist local cache corrupt, starting empty",
			zap.String("userId", s.userID), zap.Error(err))
		return nil
	}
	return entries
}

func (s *Store) localKey() string {
	return localKeyPrefix + s.userID
}

func (s *Store) indexOf(itemID string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool {
		return e.ItemID == itemID
	})
}
