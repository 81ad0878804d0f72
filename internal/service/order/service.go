// Package order implements checkout: validated order creation from a cart
// snapshot, persisted to the document store. Unlike cart mirroring, order
// writes surface failures to the caller; a local cart cannot substitute for
// a missing order record.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kridana/kridana-api/internal/store/cart"
)

// Service errors
var (
	ErrNotFound  = errors.New("order not found")
	ErrEmptyCart = errors.New("cannot place an order with an empty cart")
)

// Order statuses.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// Address is the delivery address captured at checkout.
type Address struct {
	FullName string
	Line1    string
	Line2    string
	City     string
	State    string
	PinCode  string
	Phone    string
}

// Order is a placed order. Lines are a snapshot of the cart at checkout
// time; later cart edits never touch an existing order.
type Order struct {
	ID         string
	UserID     string
	Lines      []cart.Line
	Total      float64
	Address    Address
	Status     string
	PaymentRef string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateParams for placing an order.
type CreateParams struct {
	Lines      []cart.Line
	Address    Address
	AgreeTerms bool
}

// ValidationError reports the checkout fields that failed validation. The
// triggering action aborts with no partial state change.
type ValidationError struct {
	Fields []FieldIssue
}

// FieldIssue names one invalid field.
type FieldIssue struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "order validation failed"
	}
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("order validation failed: %s", strings.Join(names, ", "))
}

// Validate checks the checkout form. It returns a *ValidationError listing
// every failing field, or nil.
func (p CreateParams) Validate() error {
	var issues []FieldIssue
	if strings.TrimSpace(p.Address.FullName) == "" {
		issues = append(issues, FieldIssue{Field: "address.fullName", Message: "full name is required"})
	}
	if strings.TrimSpace(p.Address.Line1) == "" {
		issues = append(issues, FieldIssue{Field: "address.line1", Message: "address line is required"})
	}
	if strings.TrimSpace(p.Address.City) == "" {
		issues = append(issues, FieldIssue{Field: "address.city", Message: "city is required"})
	}
	if strings.TrimSpace(p.Address.PinCode) == "" {
		issues = append(issues, FieldIssue{Field: "address.pinCode", Message: "pin code is required"})
	}
	if strings.TrimSpace(p.Address.Phone) == "" {
		issues = append(issues, FieldIssue{Field: "address.phone", Message: "phone number is required"})
	}
	for i, l := range p.Lines {
		if l.SizeVariant == "" {
			issues = append(issues, FieldIssue{
				Field:   fmt.Sprintf("lines[%d].sizeVariant", i),
				Message: "size is required",
			})
		}
	}
	if !p.AgreeTerms {
		issues = append(issues, FieldIssue{Field: "agreeTerms", Message: "terms must be accepted"})
	}
	if len(issues) > 0 {
		return &ValidationError{Fields: issues}
	}
	return nil
}

// Total sums unit price times quantity over the snapshot lines, treating
// non-positive prices and quantities as 0.
func Total(lines []cart.Line) float64 {
	total := 0.0
	for _, l := range lines {
		if l.UnitPrice > 0 && l.Quantity > 0 {
			total += l.UnitPrice * float64(l.Quantity)
		}
	}
	return total
}

// Service defines order operations.
type Service interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Order, error)
	Get(ctx context.Context, userID, orderID string) (*Order, error)
	ListForUser(ctx context.Context, userID string) ([]Order, error)
	// MarkPaid records a successful gateway callback against the order.
	MarkPaid(ctx context.Context, userID, orderID, paymentRef string) (*Order, error)
}
