package order

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// MockOrderService implements Service for unit tests.
type MockOrderService struct {
	mu     sync.Mutex
	orders map[string][]*Order
	seq    int

	CreateErr error
}

// NewMockOrderService creates an empty mock service.
func NewMockOrderService() *MockOrderService {
	return &MockOrderService{orders: make(map[string][]*Order)}
}

func (m *MockOrderService) Create(_ context.Context, userID string, params CreateParams) (*Order, error) {
	if len(params.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	m.seq++
	now := time.Now().UTC()
	o := &Order{
		ID:        fmt.Sprintf("o%d", m.seq),
		UserID:    userID,
		Lines:     slices.Clone(params.Lines),
		Total:     Total(params.Lines),
		Address:   params.Address,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.orders[userID] = append(m.orders[userID], o)
	cp := *o
	return &cp, nil
}

func (m *MockOrderService) Get(_ context.Context, userID, orderID string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders[userID] {
		if o.ID == orderID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockOrderService) ListForUser(_ context.Context, userID string) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.orders[userID]
	out := make([]Order, 0, len(stored))
	// Newest first, matching the backing store's ordering.
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, *stored[i])
	}
	return out, nil
}

func (m *MockOrderService) MarkPaid(_ context.Context, userID, orderID, paymentRef string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders[userID] {
		if o.ID == orderID {
			o.Status = StatusPaid
			o.PaymentRef = paymentRef
			o.UpdatedAt = time.Now().UTC()
			cp := *o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Compile-time interface check
var _ Service = (*MockOrderService)(nil)
