package wishlist

import (
	"context"
	"sync"

	"github.com/kridana/kridana-api/internal/platform/localstore"
)

// Manager hands out one Store per user, created lazily on first access.
type Manager struct {
	mu     sync.Mutex
	local  localstore.Store
	stores map[string]*Store
}

// NewManager creates a Manager backed by the given local store.
func NewManager(local localstore.Store) *Manager {
	return &Manager{
		local:  local,
		stores: make(map[string]*Store),
	}
}

// ForUser returns the user's wishlist store, loading it on first access.
func (m *Manager) ForUser(ctx context.Context, userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[userID]; ok {
		return s
	}
	s := NewStore(ctx, m.local, userID)
	m.stores[userID] = s
	return s
}
