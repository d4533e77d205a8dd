//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"

	"delivery-routing/internal/domain"
	"delivery-routing/internal/ports/deliverytx"
)

// Repository abstracts the delivery storage entry points used by the
// business layer.
type Repository interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
	GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error)
}

// StatusFactory decides the initial status of a freshly created delivery.
type StatusFactory interface {
	Initial(policy *domain.ReleasePolicy, totals domain.DeliveryTotals) domain.DeliveryStatus
}
