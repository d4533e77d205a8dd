package handlers

import (
	"context"

	"delivery-routing/internal/domain"
	"delivery-routing/internal/service/delivery"
	"delivery-routing/internal/service/planning"
	"delivery-routing/internal/service/regions"
	"delivery-routing/internal/service/routing"
)

type planningUsecase interface {
	AssignRegions(ctx context.Context, tenantID int64, orders []domain.Order) (regions.Assignment, error)
	BuildRoute(ctx context.Context, depotAddress string, orders []domain.Order) ([]routing.Stop, routing.Summary, error)
	EditRoute(ctx context.Context, depotAddress string, orders []domain.Order, edit routing.Edit) ([]routing.Stop, routing.Summary, error)
	PriceRoute(ctx context.Context, tenantID int64, orders []domain.Order, categoryID int64) (float64, error)
}

// NewPlanningUsecase wires a Planner into a planningUsecase.
func NewPlanningUsecase(p *planning.Planner) planningUsecase {
	return p
}

type deliveryUsecase interface {
	Create(ctx context.Context, p delivery.CreateParams) (*domain.Delivery, error)
	Get(ctx context.Context, id int64) (*domain.Delivery, error)
	Transition(ctx context.Context, id int64, action, reason string) (*domain.Delivery, error)
	RemoveOrder(ctx context.Context, deliveryID int64, orderID string) (*domain.Delivery, error)
	Delete(ctx context.Context, id int64) error
}

// NewDeliveryUsecase wires a delivery Service into a deliveryUsecase.
func NewDeliveryUsecase(svc *delivery.Service) deliveryUsecase {
	return svc
}
