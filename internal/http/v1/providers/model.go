package providers

import catalogsvc "github.com/kridana/kridana-api/internal/service/catalog"

// Provider represents a directory profile in responses. DistanceKm is only
// present in nearby mode.
type Provider struct {
	ID         string   `json:"id"                   doc:"Unique identifier"  example:"t1"`
	Name       string   `json:"name"                 doc:"Display name"       example:"Arjun Cricket Academy"`
	Role       string   `json:"role"                 doc:"Directory role"     example:"trainer"`
	Sport      string   `json:"sport,omitempty"      doc:"Primary sport"      example:"cricket"`
	City       string   `json:"city,omitempty"       doc:"City"               example:"Bengaluru"`
	ImageRef   string   `json:"imageRef,omitempty"   doc:"Profile image URL"`
	Latitude   *float64 `json:"latitude,omitempty"   doc:"Latitude in degrees"`
	Longitude  *float64 `json:"longitude,omitempty"  doc:"Longitude in degrees"`
	Rating     *float64 `json:"rating,omitempty"     doc:"Average rating"     example:"4.5"`
	DistanceKm *float64 `json:"distanceKm,omitempty" doc:"Distance from the reference point in kilometres"`
}

func toHTTPProvider(p catalogsvc.Provider) Provider {
	return Provider{
		ID:        p.ID,
		Name:      p.Name,
		Role:      p.Role,
		Sport:     p.Sport,
		City:      p.City,
		ImageRef:  p.ImageRef,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Rating:    p.Rating,
	}
}
