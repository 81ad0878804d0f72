package order

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/kridana/kridana-api/internal/platform/logging"
	"github.com/kridana/kridana-api/internal/store/cart"
)

const (
	usersCollection  = "users"
	ordersCollection = "orders"
)

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return "validation_failed"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// firestoreOrder maps to the Firestore document structure.
type firestoreOrder struct {
	Lines      []cart.Line      `firestore:"lines"`
	Total      float64          `firestore:"total"`
	Address    firestoreAddress `firestore:"address"`
	Status     string           `firestore:"status"`
	PaymentRef string           `firestore:"payment_ref"`
	CreatedAt  time.Time        `firestore:"created_at"`
	UpdatedAt  time.Time        `firestore:"updated_at"`
}

type firestoreAddress struct {
	FullName string `firestore:"full_name"`
	Line1    string `firestore:"line1"`
	Line2    string `firestore:"line2"`
	City     string `firestore:"city"`
	State    string `firestore:"state"`
	PinCode  string `firestore:"pin_code"`
	Phone    string `firestore:"phone"`
}

// FirestoreStore implements Service under users/{uid}/orders.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) ordersRef(userID string) *firestore.CollectionRef {
	return s.client.Collection(usersCollection).Doc(userID).Collection(ordersCollection)
}

// Create validates the params and writes the order document. Validation
// failures abort with no write at all.
func (s *FirestoreStore) Create(ctx context.Context, userID string, params CreateParams) (*Order, error) {
	if len(params.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	orderID := uuid.NewString()
	now := time.Now().UTC()
	fo := firestoreOrder{
		Lines:     params.Lines,
		Total:     Total(params.Lines),
		Address:   toFirestoreAddress(params.Address),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.ordersRef(userID).Doc(orderID).Create(ctx, fo); err != nil {
		applog.LogAuditEvent(ctx, "create", userID, "order", orderID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "create", userID, "order", orderID, applog.AuditSuccess,
		map[string]any{"total": fo.Total, "lines": len(fo.Lines)})

	return toOrder(orderID, userID, fo), nil
}

// Get retrieves one of the user's orders.
func (s *FirestoreStore) Get(ctx context.Context, userID, orderID string) (*Order, error) {
	doc, err := s.ordersRef(userID).Doc(orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fo firestoreOrder
	if err := doc.DataTo(&fo); err != nil {
		return nil, err
	}
	return toOrder(orderID, userID, fo), nil
}

// ListForUser returns the user's orders newest first.
func (s *FirestoreStore) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	q := s.ordersRef(userID).OrderBy("created_at", firestore.Desc)

	var orders []Order
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fo firestoreOrder
		if err := doc.DataTo(&fo); err != nil {
			return nil, err
		}
		orders = append(orders, *toOrder(doc.Ref.ID, userID, fo))
	}
	return orders, nil
}

// MarkPaid transitions the order to paid inside a transaction so the status
// and payment reference change together.
func (s *FirestoreStore) MarkPaid(ctx context.Context, userID, orderID, paymentRef string) (*Order, error) {
	docRef := s.ordersRef(userID).Doc(orderID)

	var result *Order
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fo firestoreOrder
		if err := doc.DataTo(&fo); err != nil {
			return err
		}

		fo.Status = StatusPaid
		fo.PaymentRef = paymentRef
		fo.UpdatedAt = time.Now().UTC()

		if terr := tx.Set(docRef, fo); terr != nil {
			return terr
		}
		result = toOrder(orderID, userID, fo)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "mark_paid", userID, "order", orderID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "mark_paid", userID, "order", orderID, applog.AuditSuccess, nil)

	return result, nil
}

func toFirestoreAddress(a Address) firestoreAddress {
	return firestoreAddress{
		FullName: a.FullName,
		Line1:    a.Line1,
		Line2:    a.Line2,
		City:     a.City,
		State:    a.State,
		PinCode:  a.PinCode,
		Phone:    a.Phone,
	}
}

func toOrder(id, userID string, fo firestoreOrder) *Order {
	return &Order{
		ID:     id,
		UserID: userID,
		Lines:  fo.Lines,
		Total:  fo.Total,
		Address: Address{
			FullName: fo.Address.FullName,
			Line1:    fo.Address.Line1,
			Line2:    fo.Address.Line2,
			City:     fo.Address.City,
			State:    fo.Address.State,
			PinCode:  fo.Address.PinCode,
			Phone:    fo.Address.Phone,
		},
		Status:     fo.Status,
		PaymentRef: fo.PaymentRef,
		CreatedAt:  fo.CreatedAt,
		UpdatedAt:  fo.UpdatedAt,
	}
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
