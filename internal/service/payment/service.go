// Package payment prepares checkout redirects to the payment gateway. The
// gateway contract is opaque: the caller receives an amount, an order
// reference, an encrypted request blob and an access code, and hands them
// to the gateway's hosted page. Payment mechanics beyond that live with
// the gateway.
package payment

import (
	"context"
	"errors"
	"fmt"
)

// Service errors
var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrRejected           = errors.New("payment request rejected by gateway")
)

// GatewayError includes gateway response metadata for error mapping.
type GatewayError struct {
	Status int
	cause  error
}

func (e *GatewayError) Error() string {
	if e == nil {
		return "payment gateway error"
	}
	if e.cause == nil {
		return fmt.Sprintf("payment gateway error (status=%d)", e.Status)
	}
	return fmt.Sprintf("payment gateway error (status=%d): %v", e.Status, e.cause)
}

// Unwrap enables errors.Is/As against sentinel service errors.
func (e *GatewayError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// CheckoutRequest carries the order fields the gateway needs.
type CheckoutRequest struct {
	OrderID     string
	Amount      float64
	Currency    string
	CustomerID  string
	CallbackURL string
}

// Checkout is the redirect payload for the gateway's hosted page.
type Checkout struct {
	OrderID          string
	Amount           float64
	EncryptedRequest string
	AccessCode       string
	RedirectURL      string
}

// Service defines payment gateway operations.
type Service interface {
	// CreateCheckout registers the order with the gateway and returns the
	// redirect payload. Failures are surfaced to the caller; checkout is
	// never optimistic.
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
}

// Disabled stands in when no gateway credentials are configured. Every
// checkout fails with ErrGatewayUnavailable.
type Disabled struct{}

func (Disabled) CreateCheckout(context.Context, CheckoutRequest) (*Checkout, error) {
	return nil, ErrGatewayUnavailable
}

var _ Service = Disabled{}
