package orders

import (
	"context"

	"delivery-routing/internal/domain"
	"delivery-routing/internal/ports/deliverytx"
)

// DeliveryPort is the slice of the delivery service the processor needs.
type DeliveryPort interface {
	Complete(ctx context.Context, id int64) (*domain.Delivery, error)
}

// TxRunner runs storage operations in a single transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
}
