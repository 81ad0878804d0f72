package catalog

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	productsCollection  = "products"
	providersCollection = "providers"
)

// firestoreProduct maps to the Firestore document structure.
type firestoreProduct struct {
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	Category    string    `firestore:"category"`
	Price       *float64  `firestore:"price"`
	Images      []string  `firestore:"images"`
	Sizes       []string  `firestore:"sizes"`
	BaseSize    string    `firestore:"base_size"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

// firestoreProvider maps to the Firestore document structure. Coordinates
// and rating stay pointers so an absent field is distinguishable from 0.
type firestoreProvider struct {
	Name      string   `firestore:"name"`
	Role      string   `firestore:"role"`
	Sport     string   `firestore:"sport"`
	City      string   `firestore:"city"`
	ImageRef  string   `firestore:"image_ref"`
	Latitude  *float64 `firestore:"latitude"`
	Longitude *float64 `firestore:"longitude"`
	Rating    *float64 `firestore:"rating"`
}

// FirestoreStore implements Service using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// ListProducts returns products in creation order, optionally restricted to
// one category.
func (s *FirestoreStore) ListProducts(ctx context.Context, category string) ([]Product, error) {
	q := s.client.Collection(productsCollection).Query
	if category != "" {
		q = q.Where("category", "==", category)
	}
	q = q.OrderBy("created_at", firestore.Asc)

	var products []Product
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fp firestoreProduct
		if err := doc.DataTo(&fp); err != nil {
			return nil, err
		}
		products = append(products, toProduct(doc.Ref.ID, fp))
	}
	return products, nil
}

// GetProduct retrieves a single product by ID.
func (s *FirestoreStore) GetProduct(ctx context.Context, productID string) (*Product, error) {
	doc, err := s.client.Collection(productsCollection).Doc(productID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fp firestoreProduct
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	p := toProduct(doc.Ref.ID, fp)
	return &p, nil
}

// ListProviders returns directory profiles, optionally restricted to one
// role. Document order is unspecified; callers rank.
func (s *FirestoreStore) ListProviders(ctx context.Context, role string) ([]Provider, error) {
	q := s.client.Collection(providersCollection).Query
	if role != "" {
		q = q.Where("role", "==", role)
	}

	var providers []Provider
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fp firestoreProvider
		if err := doc.DataTo(&fp); err != nil {
			return nil, err
		}
		providers = append(providers, toProvider(doc.Ref.ID, fp))
	}
	return providers, nil
}

// GetProvider retrieves a single directory profile by ID.
func (s *FirestoreStore) GetProvider(ctx context.Context, providerID string) (*Provider, error) {
	doc, err := s.client.Collection(providersCollection).Doc(providerID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fp firestoreProvider
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	p := toProvider(doc.Ref.ID, fp)
	return &p, nil
}

func toProduct(id string, fp firestoreProduct) Product {
	return Product{
		ID:          id,
		Name:        fp.Name,
		Description: fp.Description,
		Category:    fp.Category,
		Price:       fp.Price,
		Images:      fp.Images,
		Sizes:       fp.Sizes,
		BaseSize:    fp.BaseSize,
		CreatedAt:   fp.CreatedAt,
		UpdatedAt:   fp.UpdatedAt,
	}
}

func toProvider(id string, fp firestoreProvider) Provider {
	return Provider{
		ID:        id,
		Name:      fp.Name,
		Role:      fp.Role,
		Sport:     fp.Sport,
		City:      fp.City,
		ImageRef:  fp.ImageRef,
		Latitude:  fp.Latitude,
		Longitude: fp.Longitude,
		Rating:    fp.Rating,
	}
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
