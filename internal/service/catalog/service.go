// Package catalog exposes the product listing and the trainer/institute
// directory that listing pages rank by distance or rating.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"
)

// Service errors
var (
	ErrNotFound = errors.New("catalog entry not found")
)

// Provider roles stored on directory profiles.
const (
	RoleTrainer   = "trainer"
	RoleInstitute = "institute"
)

// Product is a catalog product. Sizes is empty for products without size
// variants; BaseSize is the default preselected variant when present.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       *float64
	Images      []string
	Sizes       []string
	BaseSize    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Provider is a directory profile for a trainer or institute. Latitude,
// Longitude and Rating are optional; ranking code decides how to treat
// their absence.
type Provider struct {
	ID        string
	Name      string
	Role      string
	Sport     string
	City      string
	ImageRef  string
	Latitude  *float64
	Longitude *float64
	Rating    *float64
}

// Point returns the provider's position, or false when either coordinate
// is missing.
func (p Provider) Point() (orb.Point, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return orb.Point{}, false
	}
	return orb.Point{*p.Longitude, *p.Latitude}, true
}

// RatingOrZero treats a missing rating as 0 for ranking purposes.
func (p Provider) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// Service defines catalog read operations. The catalog is maintained out of
// band; this surface is read-only.
type Service interface {
	ListProducts(ctx context.Context, category string) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	ListProviders(ctx context.Context, role string) ([]Provider, error)
	GetProvider(ctx context.Context, providerID string) (*Provider, error)
}
