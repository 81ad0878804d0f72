// Package geo provides stateless distance computation and the two ranking
// modes used by listing pages: nearest-first and top-rated.
package geo

import (
	"math"
	"slices"

	"github.com/paulmach/orb"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle (haversine) distance between two
// points in kilometers. Points are orb.Point{lon, lat}.
func DistanceKm(a, b orb.Point) float64 {
	lat1 := a.Lat() * math.Pi / 180
	lon1 := a.Lon() * math.Pi / 180
	lat2 := b.Lat() * math.Pi / 180
	lon2 := b.Lon() * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Ranked pairs an item with its computed distance from the reference point.
type Ranked[T any] struct {
	Item       T
	DistanceKm float64
}

// Nearby ranks items ascending by distance from ref. coords reports an
// item's position and whether both coordinates are known; items with an
// unknown position are excluded from the result, not sorted to the end.
// Ranking sees the full eligible set; limit truncates afterwards
// (limit <= 0 means no truncation).
func Nearby[T any](items []T, coords func(T) (orb.Point, bool), ref orb.Point, limit int) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		p, ok := coords(item)
		if !ok {
			continue
		}
		ranked = append(ranked, Ranked[T]{Item: item, DistanceKm: DistanceKm(ref, p)})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked[T]) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return 0
		}
	})

	return truncate(ranked, limit)
}

// TopRated ranks items descending by rating. A missing rating should be
// reported as 0 by the accessor; items are never excluded for missing
// coordinates. Ties keep their input order. limit truncates after ranking.
func TopRated[T any](items []T, rating func(T) float64, limit int) []T {
	ranked := slices.Clone(items)
	slices.SortStableFunc(ranked, func(a, b T) int {
		ra, rb := rating(a), rating(b)
		switch {
		case ra > rb:
			return -1
		case ra < rb:
			return 1
		default:
			return 0
		}
	})

	return truncate(ranked, limit)
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
