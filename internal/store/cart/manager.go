package cart

import (
	"context"
	"sync"

	"github.com/kridana/kridana-api/internal/platform/localstore"
)

// Manager hands out one Store per user so cart state has a single writer
// per session. Stores are created lazily on first access.
type Manager struct {
	mu     sync.Mutex
	local  localstore.Store
	mirror Mirror
	stores map[string]*Store
}

// NewManager creates a Manager. mirror may be nil for local-only operation.
func NewManager(local localstore.Store, mirror Mirror) *Manager {
	return &Manager{
		local:  local,
		mirror: mirror,
		stores: make(map[string]*Store),
	}
}

// ForUser returns the user's cart store, loading it on first access.
func (m *Manager) ForUser(ctx context.Context, userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[userID]; ok {
		return s
	}
	s := NewStore(ctx, m.local, m.mirror, userID)
	m.stores[userID] = s
	return s
}

// Flush waits for in-flight mirror writes across all stores.
func (m *Manager) Flush() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.mu.Unlock()

	for _, s := range stores {
		s.Flush()
	}
}
