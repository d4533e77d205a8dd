package geo

import (
	"context"

	"delivery-routing/internal/domain"
)

// MaxWaypoints is the maximum number of intermediate stops a single
// directions request can carry, excluding the origin.
const MaxWaypoints = 11

// Route is the provider's answer for one directions request.
type Route struct {
	Polyline        string
	DistanceMeters  int
	DurationSeconds int
}

// Geocoder resolves a free-form address to a coordinate.
// An unresolvable address yields apperr.ErrNotFound.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinate, error)
}

// Directions fetches the driving route through the given waypoints.
// Implementations must reject requests above MaxWaypoints.
type Directions interface {
	GetRoute(ctx context.Context, origin domain.Coordinate, waypoints []domain.Coordinate) (Route, error)
}

// Provider bundles both geo capabilities of the external mapping service.
type Provider interface {
	Geocoder
	Directions
}
