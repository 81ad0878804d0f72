package products

import "github.com/kridana/kridana-api/internal/platform/pagination"

// ProductsListInput defines query parameters for listing products.
type ProductsListInput struct {
	pagination.Params
	Category string `query:"category" doc:"Filter by category" example:"footwear"`
}

// ProductGetInput for GET /products/{productId}
type ProductGetInput struct {
	ProductID string `path:"productId" doc:"Product identifier" example:"p1"`
}
