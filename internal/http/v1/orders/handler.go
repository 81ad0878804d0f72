// Package orders exposes checkout: placing an order from the caller's cart,
// reading order history, and driving gateway payment.
package orders

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kridana/kridana-api/internal/platform/auth"
	ordersvc "github.com/kridana/kridana-api/internal/service/order"
	paymentsvc "github.com/kridana/kridana-api/internal/service/payment"
	cartstore "github.com/kridana/kridana-api/internal/store/cart"
)

// Register registers order endpoints. Order creation snapshots the caller's
// server-side cart and empties it once the order is persisted.
func Register(api huma.API, svc ordersvc.Service, payments paymentsvc.Service, carts *cartstore.Manager) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-order",
		Method:        http.MethodPost,
		Path:          "/orders",
		Summary:       "Place an order from the current cart",
		Description:   "Validates the checkout form, snapshots the cart lines into a pending order and empties the cart. Validation failures leave the cart untouched.",
		Tags:          []string{"Orders"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *OrderCreateInput) (*OrderCreateOutput, error) {
		user := auth.UserFromContext(ctx)
		store := carts.ForUser(ctx, user.UID)

		order, err := svc.Create(ctx, user.UID, ordersvc.CreateParams{
			Lines: store.Lines(),
			Address: ordersvc.Address{
				FullName: input.Body.Address.FullName,
				Line1:    input.Body.Address.Line1,
				Line2:    input.Body.Address.Line2,
				City:     input.Body.Address.City,
				State:    input.Body.Address.State,
				PinCode:  input.Body.Address.PinCode,
				Phone:    input.Body.Address.Phone,
			},
			AgreeTerms: input.Body.AgreeTerms,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}

		// The snapshot is safely persisted; the working cart starts over.
		store.Clear()

		return &OrderCreateOutput{
			Location: "/v1/orders/" + order.ID,
			Body:     toOrder(*order),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-orders",
		Method:      http.MethodGet,
		Path:        "/orders",
		Summary:     "List the caller's orders",
		Description: "Returns the caller's orders, newest first.",
		Tags:        []string{"Orders"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *struct{}) (*OrdersListOutput, error) {
		user := auth.UserFromContext(ctx)
		all, err := svc.ListForUser(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		out := &OrdersListOutput{}
		out.Body.Orders = make([]Order, len(all))
		for i, o := range all {
			out.Body.Orders[i] = toOrder(o)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-order",
		Method:      http.MethodGet,
		Path:        "/orders/{orderId}",
		Summary:     "Get one of the caller's orders",
		Tags:        []string{"Orders"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *OrderGetInput) (*struct{ Body Order }, error) {
		user := auth.UserFromContext(ctx)
		o, err := svc.Get(ctx, user.UID, input.OrderID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &struct{ Body Order }{Body: toOrder(*o)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "checkout-order",
		Method:      http.MethodPost,
		Path:        "/orders/{orderId}/checkout",
		Summary:     "Start gateway payment for an order",
		Description: "Registers the order with the payment gateway and returns the redirect payload for its hosted page.",
		Tags:        []string{"Orders"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CheckoutInput) (*struct{ Body CheckoutPayload }, error) {
		user := auth.UserFromContext(ctx)
		o, err := svc.Get(ctx, user.UID, input.OrderID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		if o.Status == ordersvc.StatusPaid {
			return nil, huma.Error409Conflict("order is already paid")
		}

		checkout, err := payments.CreateCheckout(ctx, paymentsvc.CheckoutRequest{
			OrderID:     o.ID,
			Amount:      o.Total,
			CustomerID:  user.UID,
			CallbackURL: input.Body.CallbackURL,
		})
		if err != nil {
			return nil, mapPaymentError(err)
		}
		return &struct{ Body CheckoutPayload }{Body: CheckoutPayload{
			OrderID:          checkout.OrderID,
			Amount:           checkout.Amount,
			EncryptedRequest: checkout.EncryptedRequest,
			AccessCode:       checkout.AccessCode,
			RedirectURL:      checkout.RedirectURL,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "confirm-order-payment",
		Method:      http.MethodPost,
		Path:        "/orders/{orderId}/payment",
		Summary:     "Record a successful gateway payment",
		Tags:        []string{"Orders"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *PaymentConfirmInput) (*struct{ Body Order }, error) {
		user := auth.UserFromContext(ctx)
		o, err := svc.MarkPaid(ctx, user.UID, input.OrderID, input.Body.PaymentRef)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &struct{ Body Order }{Body: toOrder(*o)}, nil
	})
}

func mapServiceError(err error) error {
	var verr *ordersvc.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]error, len(verr.Fields))
		for i, f := range verr.Fields {
			details[i] = &huma.ErrorDetail{Location: "body." + f.Field, Message: f.Message}
		}
		return huma.Error422UnprocessableEntity("checkout form is invalid", details...)
	case errors.Is(err, ordersvc.ErrEmptyCart):
		return huma.Error422UnprocessableEntity("cart is empty")
	case errors.Is(err, ordersvc.ErrNotFound):
		return huma.Error404NotFound("order not found")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func mapPaymentError(err error) error {
	switch {
	case errors.Is(err, paymentsvc.ErrGatewayUnavailable):
		return huma.Error502BadGateway("payment gateway unavailable")
	case errors.Is(err, paymentsvc.ErrRejected):
		return huma.Error422UnprocessableEntity("payment request rejected")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
