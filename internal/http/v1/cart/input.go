package cart

// CartGetInput for GET /cart (no body needed)
type CartGetInput struct{}

// CartAddInput for POST /cart/items. The product payload is the loose
// catalog shape; the store normalizes identity, name, price and image.
type CartAddInput struct {
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
		SelectedSize  string   `json:"selectedSize,omitempty"  doc:"Preselected size"             example:"M"`
		BaseSize      string   `json:"baseSize,omitempty"      doc:"Default size"                 example:"M"`
		Size          string   `json:"size,omitempty"          doc:"Requested size variant"       example:"M"`
	}
}

// CartUpdateInput for PATCH /cart/items/{itemId}
type CartUpdateInput struct {
	ItemID string `path:"itemId" doc:"Product identifier" example:"p1"`
	Body   struct {
		Quantity int    `json:"quantity"       doc:"New quantity; zero or less removes the line" example:"2"`
		Size     string `json:"size,omitempty" doc:"Size variant"                                example:"M"`
	}
}

// CartRemoveInput for DELETE /cart/items/{itemId}
type CartRemoveInput struct {
	ItemID string `path:"itemId"         doc:"Product identifier" example:"p1"`
	Size   string `query:"size"          doc:"Size variant"       example:"M"`
}

// CartClearInput for DELETE /cart (no body needed)
type CartClearInput struct{}
