package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	carthandler "github.com/kridana/kridana-api/internal/http/v1/cart"
	ordershandler "github.com/kridana/kridana-api/internal/http/v1/orders"
	productshandler "github.com/kridana/kridana-api/internal/http/v1/products"
	"github.com/kridana/kridana-api/internal/http/v1/profile"
	providershandler "github.com/kridana/kridana-api/internal/http/v1/providers"
	reelshandler "github.com/kridana/kridana-api/internal/http/v1/reels"
	wishlisthandler "github.com/kridana/kridana-api/internal/http/v1/wishlist"
	"github.com/kridana/kridana-api/internal/platform/auth"
	catalogsvc "github.com/kridana/kridana-api/internal/service/catalog"
	ordersvc "github.com/kridana/kridana-api/internal/service/order"
	paymentsvc "github.com/kridana/kridana-api/internal/service/payment"
	profilesvc "github.com/kridana/kridana-api/internal/service/profile"
	reelsvc "github.com/kridana/kridana-api/internal/service/reels"
	cartstore "github.com/kridana/kridana-api/internal/store/cart"
	wishliststore "github.com/kridana/kridana-api/internal/store/wishlist"
)

// Deps bundles everything the v1 surface needs.
type Deps struct {
	Verifier auth.Verifier

	Profiles profilesvc.Service
	Catalog  catalogsvc.Service
	Reels    reelsvc.Service
	Orders   ordersvc.Service
	Payments paymentsvc.Service

	Carts     *cartstore.Manager
	Wishlists *wishliststore.Manager
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, deps Deps) {
	prefix := apiPrefix(api)

	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, deps.Verifier))

	profile.Register(api, deps.Profiles)
	productshandler.Register(api, deps.Catalog, prefix)
	providershandler.Register(api, deps.Catalog)
	reelshandler.Register(api, deps.Reels)
	carthandler.Register(api, deps.Carts)
	wishlisthandler.Register(api, deps.Wishlists)
	ordershandler.Register(api, deps.Orders, deps.Payments, deps.Carts)
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
