package deliverytx

import (
	"context"
	"time"

	"delivery-routing/internal/domain"
)

// Repository abstracts the storage operations available inside a single
// delivery transaction. One-active-delivery-per-order is enforced here:
// orders are locked FOR UPDATE and claimed within the same transaction.
type Repository interface {
	OrdersForUpdate(ctx context.Context, ids []string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error

	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, id int64, status domain.DeliveryStatus, reason *string, completedAt *time.Time) error
	UpdateDeliveryTotals(ctx context.Context, id int64, freight, weight, value float64) error
	RemoveDeliveryOrder(ctx context.Context, deliveryID int64, orderID string) error
	ReleaseDeliveryOrders(ctx context.Context, deliveryID int64) error
	DeleteDelivery(ctx context.Context, id int64) error

	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListDirections(ctx context.Context, tenantID int64) ([]domain.Direction, error)
	GetReleasePolicy(ctx context.Context, tenantID int64) (*domain.ReleasePolicy, error)
}
