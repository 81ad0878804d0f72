package products

// ListData is the response body containing paginated products.
type ListData struct {
	Products []Product `json:"products" doc:"List of products"`
	Total    int       `json:"total"    doc:"Total count of products matching the filter" example:"30"`
}

// ProductsListOutput is the response wrapper with pagination Link header.
type ProductsListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ListData
}

// ProductGetOutput for GET /products/{productId}
type ProductGetOutput struct {
	Body Product
}
