package geo

import (
	"context"
	"fmt"

	"delivery-routing/internal/apperr"
	"delivery-routing/internal/domain"
	geoport "delivery-routing/internal/ports/geo"
)

// Unavailable is the provider used when no geo credentials are
// configured. Every call fails with apperr.ErrProvider so callers take
// their degraded paths instead of crashing.
type Unavailable struct{}

func (Unavailable) Geocode(context.Context, string) (domain.Coordinate, error) {
	return domain.Coordinate{}, fmt.Errorf("geocode: not configured: %w", apperr.ErrProvider)
}

func (Unavailable) GetRoute(context.Context, domain.Coordinate, []domain.Coordinate) (geoport.Route, error) {
	return geoport.Route{}, fmt.Errorf("directions: not configured: %w", apperr.ErrProvider)
}
