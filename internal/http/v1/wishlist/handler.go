// Package wishlist exposes the local-only wishlist over HTTP.
package wishlist

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kridana/kridana-api/internal/platform/auth"
	cartstore "github.com/kridana/kridana-api/internal/store/cart"
	wishliststore "github.com/kridana/kridana-api/internal/store/wishlist"
)

// Entry represents one wishlist item in responses.
type Entry struct {
	ItemID    string  `json:"itemId"    doc:"Product identifier" example:"p1"`
	Name      string  `json:"name"      doc:"Product name"       example:"Shoe"`
	UnitPrice float64 `json:"unitPrice" doc:"Unit price"         example:"500"`
	ImageRef  string  `json:"imageRef"  doc:"Product image URL"  example:"https://cdn.example/x.jpg"`
}

// WishlistOutput wraps the wishlist for read and mutate responses.
type WishlistOutput struct {
	Body struct {
		Entries []Entry `json:"entries" doc:"Wishlist entries in insertion order"`
	}
}

// WishlistAddInput for POST /wishlist/items. Same loose product shape the
// cart accepts.
type WishlistAddInput struct {
	Body struct {
		ID            string   `json:"id,omitempty"            doc:"Product identifier"           example:"p1"`
		ProductID     string   `json:"productId,omitempty"     doc:"Alternate product identifier" example:"p1"`
		Name          string   `json:"name,omitempty"          doc:"Product name"                 example:"Shoe"`
		ProductName   string   `json:"productName,omitempty"   doc:"Alternate product name"       example:"Shoe"`
		Title         string   `json:"title,omitempty"         doc:"Alternate product title"      example:"Shoe"`
		Price         *float64 `json:"price,omitempty"         doc:"Unit price"                   example:"500"`
		ProductPrice  *float64 `json:"productPrice,omitempty"  doc:"Alternate unit price"         example:"500"`
		Image         string   `json:"image,omitempty"         doc:"Image URL"`
		ImageURL      string   `json:"imageUrl,omitempty"      doc:"Alternate image URL"`
		ProductImages []string `json:"productImages,omitempty" doc:"Image URL list"`
	}
}

// WishlistRemoveInput for DELETE /wishlist/items/{itemId}
type WishlistRemoveInput struct {
	ItemID string `path:"itemId" doc:"Product identifier" example:"p1"`
}

// Register registers wishlist endpoints.
func Register(api huma.API, manager *wishliststore.Manager) {
	huma.Register(api, huma.Operation{
		OperationID: "get-wishlist",
		Method:      http.MethodGet,
		Path:        "/wishlist",
		Summary:     "Get the wishlist",
		Tags:        []string{"Wishlist"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *struct{}) (*WishlistOutput, error) {
		return toOutput(storeFor(ctx, manager)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-wishlist-item",
		Method:      http.MethodPost,
		Path:        "/wishlist/items",
		Summary:     "Add a product to the wishlist",
		Description: "Adds the product if it is not already listed; adding the same product twice keeps a single entry.",
		Tags:        []string{"Wishlist"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *WishlistAddInput) (*WishlistOutput, error) {
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
		}
		if _, ok := cartstore.Normalize(product, ""); !ok {
			return nil, huma.Error422UnprocessableEntity("product identity is required")
		}

		store := storeFor(ctx, manager)
		store.Add(product)
		return toOutput(store), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-wishlist-item",
		Method:      http.MethodDelete,
		Path:        "/wishlist/items/{itemId}",
		Summary:     "Remove a wishlist entry",
		Tags:        []string{"Wishlist"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *WishlistRemoveInput) (*WishlistOutput, error) {
		store := storeFor(ctx, manager)
		store.Remove(input.ItemID)
		return toOutput(store), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "clear-wishlist",
		Method:        http.MethodDelete,
		Path:          "/wishlist",
		Summary:       "Empty the wishlist",
		Tags:          []string{"Wishlist"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		storeFor(ctx, manager).Clear()
		return nil, nil
	})
}

func storeFor(ctx context.Context, manager *wishliststore.Manager) *wishliststore.Store {
	user := auth.UserFromContext(ctx)
	return manager.ForUser(ctx, user.UID)
}

func toOutput(store *wishliststore.Store) *WishlistOutput {
	entries := store.Entries()
	out := &WishlistOutput{}
	out.Body.Entries = make([]Entry, len(entries))
	for i, e := range entries {
		out.Body.Entries[i] = Entry{
			ItemID:    e.ItemID,
			Name:      e.Name,
			UnitPrice: e.UnitPrice,
			ImageRef:  e.ImageRef,
		}
	}
	return out
}
