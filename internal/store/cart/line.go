package cart

// SizeNotApplicable is the size variant recorded for products without sizes.
const SizeNotApplicable = "N/A"

// Line is one cart entry. Two lines with the same ItemID but different
// SizeVariant are distinct entries; (ItemID, SizeVariant) is the identity key.
type Line struct {
	ItemID      string  `json:"itemId"      firestore:"itemId"`
	Name        string  `json:"name"        firestore:"name"`
	UnitPrice   float64 `json:"unitPrice"   firestore:"unitPrice"`
	ImageRef    string  `json:"imageRef"    firestore:"imageRef"`
	SizeVariant string  `json:"sizeVariant" firestore:"sizeVariant"`
	Quantity    int     `json:"quantity"    firestore:"quantity"`
}

// Key returns the identity key for deduplicating and merging lines.
func (l Line) Key() string {
	return l.ItemID + "__" + l.SizeVariant
}

// Product is the loose upstream product shape. Catalog documents have
// accumulated several field spellings for the same attribute, so the adapter
// below resolves each attribute through a fallback chain once, at the
// boundary, instead of scattering fallbacks through store logic.
type Product struct {
	ID            string   `json:"id,omitempty"`
	ProductID     string   `json:"productId,omitempty"`
	Name          string   `json:"name,omitempty"`
	ProductName   string   `json:"productName,omitempty"`
	Title         string   `json:"title,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	ProductPrice  *float64 `json:"productPrice,omitempty"`
	Image         string   `json:"image,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	ProductImages []string `json:"productImages,omitempty"`
	SelectedSize  string   `json:"selectedSize,omitempty"`
	BaseSize      string   `json:"baseSize,omitempty"`
}

// Normalize maps a Product and a requested size to a Line with quantity 1.
// Size resolution: explicit parameter, then the product's selected size,
// then its base size, then SizeNotApplicable. Returns false when the product
// carries no identity; callers treat that as a no-op, not an error.
func Normalize(p Product, size string) (Line, bool) {
	itemID := firstNonEmpty(p.ID, p.ProductID)
	if itemID == "" {
		return Line{}, false
	}

	price := 0.0
	switch {
	case p.Price != nil && *p.Price > 0:
		price = *p.Price
	case p.ProductPrice != nil && *p.ProductPrice > 0:
		price = *p.ProductPrice
	}

	image := firstNonEmpty(p.Image, p.ImageURL)
	if image == "" && len(p.ProductImages) > 0 {
		image = p.ProductImages[0]
	}

	return Line{
		ItemID:      itemID,
		Name:        firstNonEmpty(p.Name, p.ProductName, p.Title),
		UnitPrice:   price,
		ImageRef:    image,
		SizeVariant: firstNonEmpty(size, p.SelectedSize, p.BaseSize, SizeNotApplicable),
		Quantity:    1,
	}, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
