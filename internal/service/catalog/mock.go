package catalog

import (
	"context"
	"slices"
	"sync"
)

// MockCatalogService implements Service for unit tests.
type MockCatalogService struct {
	mu        sync.RWMutex
	products  []Product
	providers []Provider

	ListProductsErr  error
	ListProvidersErr error
}

// NewMockCatalogService creates an empty mock service.
func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{}
}

// SeedProducts replaces the product fixture set.
func (m *MockCatalogService) SeedProducts(products ...Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = slices.Clone(products)
}

// SeedProviders replaces the provider fixture set.
func (m *MockCatalogService) SeedProviders(providers ...Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers = slices.Clone(providers)
}

func (m *MockCatalogService) ListProducts(_ context.Context, category string) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListProductsErr != nil {
		return nil, m.ListProductsErr
	}
	var out []Product
	for _, p := range m.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockCatalogService) GetProduct(_ context.Context, productID string) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == productID {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockCatalogService) ListProviders(_ context.Context, role string) ([]Provider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListProvidersErr != nil {
		return nil, m.ListProvidersErr
	}
	var out []Provider
	for _, p := range m.providers {
		if role == "" || p.Role == role {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockCatalogService) GetProvider(_ context.Context, providerID string) (*Provider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.providers {
		if p.ID == providerID {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// Compile-time interface check
var _ Service = (*MockCatalogService)(nil)
