package orders

import (
	"context"
	"errors"

	"delivery-routing/internal/apperr"
	"delivery-routing/internal/domain"
	"delivery-routing/internal/ports/deliverytx"
)

// Processor applies per-order status events to the delivery lifecycle.
// When the last order of an in-progress delivery turns terminal, the
// delivery itself is completed.
type Processor struct {
	delivery DeliveryPort
	repo     TxRunner
	factory  *actionFactory
}

// NewProcessor creates a new orders.Processor.
func NewProcessor(deliverySvc DeliveryPort, repo TxRunner) *Processor {
	p := &Processor{
		delivery: deliverySvc,
		repo:     repo,
	}
	p.factory = newActionFactory(p.onDelivered, p.onFailed, p.onRedelivery)
	return p
}

// Handle processes a single orders.Event. Unknown statuses are skipped.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onDelivered(ctx context.Context, e Event) error {
	return p.markTerminal(ctx, e, domain.OrderDelivered)
}

func (p *Processor) onFailed(ctx context.Context, e Event) error {
	return p.markTerminal(ctx, e, domain.OrderFailed)
}

func (p *Processor) onRedelivery(ctx context.Context, e Event) error {
	return p.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		return tx.UpdateOrderStatus(ctx, e.OrderID, domain.OrderRedelivery)
	})
}

func (p *Processor) markTerminal(ctx context.Context, e Event, status domain.OrderStatus) error {
	var done bool
	err := p.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		d, err := tx.GetDeliveryForUpdate(ctx, e.DeliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return nil
		}
		if err := tx.UpdateOrderStatus(ctx, e.OrderID, status); err != nil {
			return err
		}
		for i := range d.Orders {
			if d.Orders[i].Order.ID == e.OrderID {
				d.Orders[i].Order.Status = status
			}
		}
		done = d.Status == domain.DeliveryStarted && d.OrdersTerminal()
		return nil
	})
	if err != nil {
		return err
	}

	if !done {
		return nil
	}
	_, err = p.delivery.Complete(ctx, e.DeliveryID)
	// Another event may have completed the delivery in between.
	if errors.Is(err, apperr.ErrConflict) {
		return nil
	}
	return err
}
