package cart

// Line represents one cart entry in responses.
type Line struct {
	ItemID      string  `json:"itemId"      doc:"Product identifier"        example:"p1"`
	Name        string  `json:"name"        doc:"Product name"              example:"Shoe"`
	UnitPrice   float64 `json:"unitPrice"   doc:"Unit price"                example:"500"`
	ImageRef    string  `json:"imageRef"    doc:"Product image URL"         example:"https://cdn.example/x.jpg"`
	SizeVariant string  `json:"sizeVariant" doc:"Size variant"              example:"M"`
	Quantity    int     `json:"quantity"    doc:"Quantity"                  example:"2"`
}

// Cart represents the full cart state in responses.
type Cart struct {
	Lines []Line  `json:"lines" doc:"Cart lines in insertion order"`
	Count int     `json:"count" doc:"Sum of quantities"   example:"3"`
	Total float64 `json:"total" doc:"Sum of line totals"  example:"1500"`
}
