package payment

import (
	"context"
	"fmt"
	"sync"
)

// MockPaymentService implements Service for unit tests.
type MockPaymentService struct {
	mu  sync.Mutex
	seq int

	CreateErr error
	Requests  []CheckoutRequest
}

// NewMockPaymentService creates a new mock service.
func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{}
}

func (m *MockPaymentService) CreateCheckout(_ context.Context, req CheckoutRequest) (*Checkout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.seq++
	m.Requests = append(m.Requests, req)
	return &Checkout{
		OrderID:          req.OrderID,
		Amount:           req.Amount,
		EncryptedRequest: fmt.Sprintf("enc-%d", m.seq),
		AccessCode:       "mock-access-code",
		RedirectURL:      "https://gateway.example/pay/" + req.OrderID,
	}, nil
}

// Compile-time interface check
var _ Service = (*MockPaymentService)(nil)
