package products

// Product represents a catalog product in responses.
type Product struct {
	ID          string   `json:"id"                    doc:"Unique identifier"      example:"p1"`
	Name        string   `json:"name"                  doc:"Product name"           example:"Shoe"`
	Description string   `json:"description,omitempty" doc:"Product description"`
	Category    string   `json:"category,omitempty"    doc:"Category"               example:"footwear"`
	Price       *float64 `json:"price,omitempty"       doc:"Unit price"             example:"500"`
	Images      []string `json:"images,omitempty"      doc:"Image URLs"`
	Sizes       []string `json:"sizes,omitempty"       doc:"Available size variants"`
	BaseSize    string   `json:"baseSize,omitempty"    doc:"Default size variant"   example:"M"`
}
