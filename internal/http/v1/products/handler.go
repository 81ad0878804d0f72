package products

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kridana/kridana-api/internal/platform/pagination"
	catalogsvc "github.com/kridana/kridana-api/internal/service/catalog"
)

const cursorType = "product"

// Register wires product routes into the provided API router. Listing is
// public; no auth requirement.
func Register(api huma.API, svc catalogsvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/products",
		Summary:     "List products with cursor-based pagination",
		Description: "Returns a paginated product list. Use the cursor from the Link header to navigate between pages.",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *ProductsListInput) (*ProductsListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != cursorType {
			return nil, huma.Error400BadRequest("cursor type mismatch")
		}

		listed, err := svc.ListProducts(ctx, input.Category)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		products := toHTTPProducts(listed)

		if cursor.Value != "" && findProductIndex(products, cursor.Value) == -1 {
			return nil, huma.Error400BadRequest("cursor references unknown product")
		}

		query := url.Values{}
		if input.Category != "" {
			query.Set("category", input.Category)
		}

		result := pagination.Paginate(
			products,
			cursor,
			input.DefaultLimit(),
			cursorType,
			func(p Product) string { return p.ID },
			prefix+"/products",
			query,
		)

		return &ProductsListOutput{
			Link: result.LinkHeader,
			Body: ListData{
				Products: result.Items,
				Total:    result.Total,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/products/{productId}",
		Summary:     "Get a product",
		Tags:        []string{"Products"},
	}, func(ctx context.Context, input *ProductGetInput) (*ProductGetOutput, error) {
		p, err := svc.GetProduct(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, catalogsvc.ErrNotFound) {
				return nil, huma.Error404NotFound("product not found")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &ProductGetOutput{Body: toHTTPProduct(*p)}, nil
	})
}

func toHTTPProducts(products []catalogsvc.Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = toHTTPProduct(p)
	}
	return out
}

func toHTTPProduct(p catalogsvc.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Images:      p.Images,
		Sizes:       p.Sizes,
		BaseSize:    p.BaseSize,
	}
}

func findProductIndex(products []Product, id string) int {
	return slices.IndexFunc(products, func(p Product) bool {
		return p.ID == id
	})
}
