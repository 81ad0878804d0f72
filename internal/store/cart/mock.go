package cart

import (
	"context"
	"slices"
	"sync"
)

// MockMirror implements Mirror in memory for unit tests.
type MockMirror struct {
	mu    sync.Mutex
	carts map[string][]Line

	FetchErr   error
	ReplaceErr error
	ClearErr   error

	ReplaceCalls int
}

// NewMockMirror creates an empty mock mirror.
func NewMockMirror() *MockMirror {
	return &MockMirror{carts: make(map[string][]Line)}
}

func (m *MockMirror) Fetch(_ context.Context, userID string) ([]Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	return slices.Clone(m.carts[userID]), nil
}

func (m *MockMirror) Replace(_ context.Context, userID string, lines []Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceCalls++
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	m.carts[userID] = slices.Clone(lines)
	return nil
}

func (m *MockMirror) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	delete(m.carts, userID)
	return nil
}

// Lines returns the mirrored lines for a user.
func (m *MockMirror) Lines(userID string) []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.carts[userID])
}

// Seed replaces the mirrored lines for a user directly.
func (m *MockMirror) Seed(userID string, lines []Line) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[userID] = slices.Clone(lines)
}

// Compile-time interface check
var _ Mirror = (*MockMirror)(nil)
