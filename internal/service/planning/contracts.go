package planning

import (
	"context"

	"delivery-routing/internal/domain"
)

// directionsRepository provides the tenant's configured directions.
type directionsRepository interface {
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.Direction, error)
}

// categoryRepository resolves vehicle categories for pricing.
type categoryRepository interface {
	Get(ctx context.Context, id int64) (*domain.Category, error)
}
