package delivery

import (
	"context"
	"strings"
	"time"

	"delivery-routing/internal/apperr"
	"delivery-routing/internal/domain"
	"delivery-routing/internal/logx"
	"delivery-routing/internal/ports/deliverytx"
	"delivery-routing/internal/service/freight"
)

type counter interface {
	Inc()
}

// Service governs the delivery lifecycle: creation with the atomic
// order claim, the auto-release decision and all status transitions.
type Service struct {
	repo             Repository
	factory          StatusFactory
	operationTimeout time.Duration
	autoReleased     counter
	logger           logx.Logger
	now              func() time.Time
}

// NewService - creates a new delivery Service.
func NewService(r Repository, f StatusFactory, timeout time.Duration, autoReleased counter, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		factory:          f,
		operationTimeout: timeout,
		autoReleased:     autoReleased,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// CreateParams carries everything needed to create a delivery.
// OrderIDs arrive in stop order; their positions become the sorting.
type CreateParams struct {
	TenantID  int64
	DriverID  int64
	VehicleID int64
	OrderIDs  []string
}

func validateCreate(p CreateParams) error {
	if p.TenantID <= 0 || p.DriverID <= 0 || p.VehicleID <= 0 {
		return apperr.ErrInvalid
	}
	if len(p.OrderIDs) == 0 {
		return apperr.ErrInvalid
	}
	seen := make(map[string]struct{}, len(p.OrderIDs))
	for _, id := range p.OrderIDs {
		if strings.TrimSpace(id) == "" {
			return apperr.ErrInvalid
		}
		if _, ok := seen[id]; ok {
			return apperr.ErrInvalid
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Create claims the orders, prices the route and persists the delivery
// with its initial status. Two concurrent creates can never both claim
// the same order: the claim check and the insert share one transaction.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.Delivery, error) {
	if err := validateCreate(p); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result *domain.Delivery
	err := s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		orders, err := tx.OrdersForUpdate(ctx, p.OrderIDs)
		if err != nil {
			return err
		}
		if len(orders) != len(p.OrderIDs) {
			return apperr.ErrNotFound
		}
		for i := range orders {
			// A foreign tenant's order looks like an unknown id to the caller.
			if orders[i].TenantID != p.TenantID {
				return apperr.ErrNotFound
			}
			if !orders[i].Routable() {
				return apperr.ErrConflict
			}
		}

		vehicle, err := tx.GetVehicle(ctx, p.VehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return apperr.ErrNotFound
		}

		// A missing category degrades to zero base freight.
		category, err := tx.GetCategory(ctx, vehicle.CategoryID)
		if err != nil {
			return err
		}

		directions, err := tx.ListDirections(ctx, p.TenantID)
		if err != nil {
			return err
		}
		policy, err := tx.GetReleasePolicy(ctx, p.TenantID)
		if err != nil {
			return err
		}

		weight, value := freight.Totals(orders)
		fr := freight.Calculate(orders, category, directions)
		totals := domain.DeliveryTotals{
			Value:      value,
			Weight:     weight,
			Freight:    fr,
			OrderCount: len(orders),
		}

		d := &domain.Delivery{
			TenantID:     p.TenantID,
			DriverID:     p.DriverID,
			VehicleID:    vehicle.ID,
			FreightValue: fr,
			TotalWeight:  weight,
			TotalValue:   value,
			Status:       s.factory.Initial(policy, totals),
			CreatedAt:    s.now(),
		}
		d.Orders = make([]domain.DeliveryOrder, 0, len(orders))
		for i, o := range orders {
			d.Orders = append(d.Orders, domain.DeliveryOrder{Order: o, Sorting: i + 1})
		}

		if err := tx.InsertDelivery(ctx, d); err != nil {
			return err
		}
		for _, o := range orders {
			if err := tx.UpdateOrderStatus(ctx, o.ID, domain.OrderOnRoute); err != nil {
				return err
			}
		}

		result = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Status == domain.DeliveryStarted && s.autoReleased != nil {
		s.autoReleased.Inc()
	}
	s.logger.Info("delivery created",
		logx.String("event", "delivery_created"),
		logx.Int64("delivery_id", result.ID),
		logx.Int64("driver_id", result.DriverID),
		logx.Int("orders", len(result.Orders)),
		logx.Float64("freight", result.FreightValue),
		logx.String("status", string(result.Status)),
	)
	return result, nil
}

// Release moves an awaiting delivery to in-progress. The manual action
// always wins; thresholds are not re-checked.
func (s *Service) Release(ctx context.Context, id int64) (*domain.Delivery, error) {
	return s.transition(ctx, id, func(tx deliverytx.Repository, d *domain.Delivery) error {
		if !d.Status.CanTransition(domain.DeliveryStarted) {
			return apperr.ErrConflict
		}
		d.Status = domain.DeliveryStarted
		return tx.UpdateDeliveryStatus(ctx, d.ID, d.Status, nil, nil)
	})
}

// Reject moves an awaiting delivery to rejected and frees its orders
// for a new delivery. The reason is mandatory.
func (s *Service) Reject(ctx context.Context, id int64, reason string) (*domain.Delivery, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.ErrInvalid
	}
	return s.transition(ctx, id, func(tx deliverytx.Repository, d *domain.Delivery) error {
		if !d.Status.CanTransition(domain.DeliveryRejected) {
			return apperr.ErrConflict
		}
		d.Status = domain.DeliveryRejected
		d.RejectReason = &reason
		if err := tx.UpdateDeliveryStatus(ctx, d.ID, d.Status, &reason, nil); err != nil {
			return err
		}
		for i := range d.Orders {
			d.Orders[i].Order.Status = domain.OrderPending
			if err := tx.UpdateOrderStatus(ctx, d.Orders[i].Order.ID, domain.OrderPending); err != nil {
				return err
			}
		}
		// Without releasing the claims the freed orders could never be
		// picked up by a new delivery.
		return tx.ReleaseDeliveryOrders(ctx, d.ID)
	})
}

// Complete finishes an in-progress delivery once every order reached a
// terminal status, recording the completion timestamp.
func (s *Service) Complete(ctx context.Context, id int64) (*domain.Delivery, error) {
	return s.transition(ctx, id, func(tx deliverytx.Repository, d *domain.Delivery) error {
		if !d.Status.CanTransition(domain.DeliveryCompleted) {
			return apperr.ErrConflict
		}
		if !d.OrdersTerminal() {
			return apperr.ErrConflict
		}
		now := s.now()
		d.Status = domain.DeliveryCompleted
		d.CompletedAt = &now
		if err := tx.UpdateDeliveryStatus(ctx, d.ID, d.Status, nil, &now); err != nil {
			return err
		}
		// Orders that failed or need redelivery go back on the market.
		return tx.ReleaseDeliveryOrders(ctx, d.ID)
	})
}

// RemoveOrder drops one order from a non-terminal delivery and
// recomputes totals and freight from the remaining set. Removing the
// last remaining order is disallowed.
func (s *Service) RemoveOrder(ctx context.Context, deliveryID int64, orderID string) (*domain.Delivery, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, apperr.ErrInvalid
	}
	return s.transition(ctx, deliveryID, func(tx deliverytx.Repository, d *domain.Delivery) error {
		if d.Status.Terminal() {
			return apperr.ErrConflict
		}

		idx := -1
		for i := range d.Orders {
			if d.Orders[i].Order.ID == orderID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperr.ErrNotFound
		}
		if len(d.Orders) == 1 {
			return apperr.ErrConflict
		}

		if err := tx.RemoveDeliveryOrder(ctx, d.ID, orderID); err != nil {
			return err
		}
		if err := tx.UpdateOrderStatus(ctx, orderID, domain.OrderPending); err != nil {
			return err
		}
		d.Orders = append(d.Orders[:idx], d.Orders[idx+1:]...)
		d.Renumber()

		vehicle, err := tx.GetVehicle(ctx, d.VehicleID)
		if err != nil {
			return err
		}
		var category *domain.Category
		if vehicle != nil {
			if category, err = tx.GetCategory(ctx, vehicle.CategoryID); err != nil {
				return err
			}
		}
		directions, err := tx.ListDirections(ctx, d.TenantID)
		if err != nil {
			return err
		}

		remaining := make([]domain.Order, 0, len(d.Orders))
		for _, o := range d.Orders {
			remaining = append(remaining, o.Order)
		}
		d.TotalWeight, d.TotalValue = freight.Totals(remaining)
		d.FreightValue = freight.Calculate(remaining, category, directions)

		return tx.UpdateDeliveryTotals(ctx, d.ID, d.FreightValue, d.TotalWeight, d.TotalValue)
	})
}

// Delete removes a delivery that never started (awaiting release or
// rejected), freeing any still-claimed orders.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		d, err := tx.GetDeliveryForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		if d.Status != domain.DeliveryAwaitingRelease && d.Status != domain.DeliveryRejected {
			return apperr.ErrConflict
		}
		for _, o := range d.Orders {
			if o.Order.Status != domain.OrderOnRoute {
				continue
			}
			if err := tx.UpdateOrderStatus(ctx, o.Order.ID, domain.OrderPending); err != nil {
				return err
			}
		}
		return tx.DeleteDelivery(ctx, id)
	})
}

// Transition actions accepted by Transition.
const (
	ActionRelease  = "release"
	ActionReject   = "reject"
	ActionComplete = "complete"
)

// Transition dispatches a named lifecycle action.
func (s *Service) Transition(ctx context.Context, id int64, action, reason string) (*domain.Delivery, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case ActionRelease:
		return s.Release(ctx, id)
	case ActionReject:
		return s.Reject(ctx, id, reason)
	case ActionComplete:
		return s.Complete(ctx, id)
	default:
		return nil, apperr.ErrInvalid
	}
}

// Get retrieves a delivery with its ordered stops.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.repo.GetDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// transition loads the delivery under lock, applies fn and reports the
// mutated delivery.
func (s *Service) transition(ctx context.Context, id int64, fn func(tx deliverytx.Repository, d *domain.Delivery) error) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result *domain.Delivery
	err := s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		d, err := tx.GetDeliveryForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		if err := fn(tx, d); err != nil {
			return err
		}
		result = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("delivery transition",
		logx.String("event", "delivery_transition"),
		logx.Int64("delivery_id", result.ID),
		logx.String("status", string(result.Status)),
	)
	return result, nil
}
