package cart

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kridana/kridana-api/internal/platform/auth"
	cartstore "github.com/kridana/kridana-api/internal/store/cart"
)

// Register registers cart endpoints. Every operation resolves the caller's
// store through the manager, so cart state is scoped per user.
func Register(api huma.API, manager *cartstore.Manager) {
	huma.Register(api, huma.Operation{
		OperationID: "get-cart",
		Method:      http.MethodGet,
		Path:        "/cart",
		Summary:     "Get the current cart",
		Tags:        []string{"Cart"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *CartGetInput) (*CartOutput, error) {
		store := storeFor(ctx, manager)
		return toOutput(store), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-cart-item",
		Method:      http.MethodPost,
		Path:        "/cart/items",
		Summary:     "Add a product to the cart",
		Description: "Adds one unit of the product. An existing line with the same product and size gains quantity instead of duplicating.",
		Tags:        []string{"Cart"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CartAddInput) (*CartOutput, error) {
		product := cartstore.Product{
			ID:            input.Body.ID,
			ProductID:     input.Body.ProductID,
			Name:          input.Body.Name,
			ProductName:   input.Body.ProductName,
			Title:         input.Body.Title,
			Price:         input.Body.Price,
			ProductPrice:  input.Body.ProductPrice,
			Image:         input.Body.Image,
			ImageURL:      input.Body.ImageURL,
			ProductImages: input.Body.ProductImages,
			SelectedSize:  input.Body.SelectedSize,
			BaseSize:      input.Body.BaseSize,
		}
		if _, ok := cartstore.Normalize(product, input.Body.Size); !ok {
			return nil, huma.Error422UnprocessableEntity("product identity is required")
		}

		store := storeFor(ctx, manager)
		store.AddItem(product, input.Body.Size)
		return toOutput(store), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-cart-item",
		Method:      http.MethodPatch,
		Path:        "/cart/items/{itemId}",
		Summary:     "Set a cart line's quantity",
		Description: "Sets the quantity of the matching line. A quantity of zero or less removes the line.",
		Tags:        []string{"Cart"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CartUpdateInput) (*CartOutput, error) {
		store := storeFor(ctx, manager)
		store.UpdateQuantity(input.ItemID, input.Body.Quantity, size(input.Body.Size))
		return toOutput(store), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-cart-item",
		Method:      http.MethodDelete,
		Path:        "/cart/items/{itemId}",
		Summary:     "Remove a cart line",
		Tags:        []string{"Cart"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CartRemoveInput) (*CartOutput, error) {
		store := storeFor(ctx, manager)
		store.RemoveItem(input.ItemID, size(input.Size))
		return toOutput(store), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "clear-cart",
		Method:        http.MethodDelete,
		Path:          "/cart",
		Summary:       "Empty the cart",
		Tags:          []string{"Cart"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *CartClearInput) (*struct{}, error) {
		storeFor(ctx, manager).Clear()
		return nil, nil
	})
}

func storeFor(ctx context.Context, manager *cartstore.Manager) *cartstore.Store {
	user := auth.UserFromContext(ctx)
	return manager.ForUser(ctx, user.UID)
}

func size(s string) string {
	if s == "" {
		return cartstore.SizeNotApplicable
	}
	return s
}

func toOutput(store *cartstore.Store) *CartOutput {
	lines := store.Lines()
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{
			ItemID:      l.ItemID,
			Name:        l.Name,
			UnitPrice:   l.UnitPrice,
			ImageRef:    l.ImageRef,
			SizeVariant: l.SizeVariant,
			Quantity:    l.Quantity,
		}
	}
	return &CartOutput{Body: Cart{
		Lines: out,
		Count: store.Count(),
		Total: store.Total(),
	}}
}
