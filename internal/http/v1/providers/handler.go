// Package providers exposes the trainer/institute directory with
// distance-based and rating-based ranking.
package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb"

	"github.com/kridana/kridana-api/internal/geo"
	catalogsvc "github.com/kridana/kridana-api/internal/service/catalog"
)

// Ranking modes.
const (
	sortNearby   = "nearby"
	sortTopRated = "top-rated"
)

// Register wires directory routes into the provided API router. The
// directory is public; no auth requirement.
func Register(api huma.API, svc catalogsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-providers",
		Method:      http.MethodGet,
		Path:        "/providers",
		Summary:     "List trainers and institutes, ranked",
		Description: "Ranks directory profiles by distance from a reference point or by rating. " +
			"Nearby mode requires lat and lon and excludes profiles without coordinates; " +
			"top-rated mode never excludes profiles and treats a missing rating as 0.",
		Tags: []string{"Providers"},
	}, func(ctx context.Context, input *ProvidersListInput) (*ProvidersListOutput, error) {
		all, err := svc.ListProviders(ctx, input.Role)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}

		out := &ProvidersListOutput{}
		switch input.Sort {
		case sortNearby:
			if input.Lat == nil || input.Lon == nil {
				return nil, huma.Error422UnprocessableEntity("nearby ranking requires lat and lon")
			}
			ref := orb.Point{*input.Lon, *input.Lat}
			ranked := geo.Nearby(all, catalogsvc.Provider.Point, ref, input.Limit)
			out.Body.Providers = make([]Provider, len(ranked))
			for i, r := range ranked {
				p := toHTTPProvider(r.Item)
				d := r.DistanceKm
				p.DistanceKm = &d
				out.Body.Providers[i] = p
			}
		default:
			ranked := geo.TopRated(all, catalogsvc.Provider.RatingOrZero, input.Limit)
			out.Body.Providers = make([]Provider, len(ranked))
			for i, p := range ranked {
				out.Body.Providers[i] = toHTTPProvider(p)
			}
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-provider",
		Method:      http.MethodGet,
		Path:        "/providers/{providerId}",
		Summary:     "Get a directory profile",
		Tags:        []string{"Providers"},
	}, func(ctx context.Context, input *ProviderGetInput) (*ProviderGetOutput, error) {
		p, err := svc.GetProvider(ctx, input.ProviderID)
		if err != nil {
			if errors.Is(err, catalogsvc.ErrNotFound) {
				return nil, huma.Error404NotFound("provider not found")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &ProviderGetOutput{Body: toHTTPProvider(*p)}, nil
	})
}
