package planning

import (
	"context"
	"errors"
	"strings"
	"time"

	"delivery-routing/internal/apperr"
	"delivery-routing/internal/domain"
	"delivery-routing/internal/logx"
	"delivery-routing/internal/ports/geo"
	"delivery-routing/internal/service/freight"
	"delivery-routing/internal/service/regions"
	"delivery-routing/internal/service/routing"
)

// Planner exposes the routing and pricing operations to the transport
// layer: region assignment, route building and route pricing.
type Planner struct {
	dirs             directionsRepository
	cats             categoryRepository
	optimizer        *routing.Optimizer
	geocoder         geo.Geocoder
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewPlanner creates a new Planner.
func NewPlanner(
	dirs directionsRepository,
	cats categoryRepository,
	optimizer *routing.Optimizer,
	geocoder geo.Geocoder,
	timeout time.Duration,
	logger logx.Logger,
) *Planner {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Planner{
		dirs:             dirs,
		cats:             cats,
		optimizer:        optimizer,
		geocoder:         geocoder,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (p *Planner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.operationTimeout)
}

// AssignRegions buckets the given orders into the tenant's directions.
func (p *Planner) AssignRegions(ctx context.Context, tenantID int64, orders []domain.Order) (regions.Assignment, error) {
	if tenantID <= 0 {
		return regions.Assignment{}, apperr.ErrInvalid
	}
	for i := range orders {
		if !domain.ValidatePostalCode(orders[i].PostalCode) {
			return regions.Assignment{}, apperr.ErrInvalid
		}
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	directions, err := p.dirs.ListByTenant(ctx, tenantID)
	if err != nil {
		return regions.Assignment{}, err
	}
	return regions.AssignOrdersToRegions(orders, directions), nil
}

// BuildRoute geocodes the depot address, runs the optimizer and returns
// the ordered stops with aggregate provider metrics. A depot that fails
// to geocode degrades to the input ordering.
func (p *Planner) BuildRoute(ctx context.Context, depotAddress string, orders []domain.Order) ([]routing.Stop, routing.Summary, error) {
	if strings.TrimSpace(depotAddress) == "" || len(orders) == 0 {
		return nil, routing.Summary{}, apperr.ErrInvalid
	}

	stops, err := stopsFromOrders(orders)
	if err != nil {
		return nil, routing.Summary{}, err
	}

	return p.optimizer.Optimize(ctx, p.depotOrigin(ctx, depotAddress), stops)
}

// EditRoute applies a manual override to an already computed sequence
// and fetches fresh provider metrics for the result. The heuristic is
// never re-run; the edited ordering is final.
func (p *Planner) EditRoute(ctx context.Context, depotAddress string, orders []domain.Order, edit routing.Edit) ([]routing.Stop, routing.Summary, error) {
	if strings.TrimSpace(depotAddress) == "" || len(orders) == 0 {
		return nil, routing.Summary{}, apperr.ErrInvalid
	}

	stops, err := stopsFromOrders(orders)
	if err != nil {
		return nil, routing.Summary{}, err
	}
	edited, err := routing.ApplyEdit(stops, edit)
	if err != nil {
		return nil, routing.Summary{}, err
	}

	return edited, p.optimizer.Measure(ctx, p.depotOrigin(ctx, depotAddress), edited), nil
}

func stopsFromOrders(orders []domain.Order) ([]routing.Stop, error) {
	stops := make([]routing.Stop, 0, len(orders))
	for _, o := range orders {
		if o.Coord == nil {
			// Ungeocoded orders cannot be placed; the caller retries
			// after the geocoding upload step finishes.
			return nil, apperr.ErrInvalid
		}
		stops = append(stops, routing.Stop{OrderID: o.ID, Coord: *o.Coord})
	}
	return stops, nil
}

// depotOrigin geocodes the depot address. A depot that does not
// geocode degrades downstream to the untouched ordering.
func (p *Planner) depotOrigin(ctx context.Context, depotAddress string) *domain.Coordinate {
	coord, err := p.geocoder.Geocode(ctx, depotAddress)
	switch {
	case err == nil:
		return &coord
	case errors.Is(err, apperr.ErrNotFound):
		p.logger.Warn("depot address did not geocode, keeping input order",
			logx.String("address", depotAddress),
		)
	default:
		p.logger.Warn("depot geocoding unavailable, keeping input order",
			logx.Any("err", err),
		)
	}
	return nil
}

// PriceRoute computes the freight value for the orders under the given
// vehicle category. Missing category or unmatched regions degrade to
// zero contribution rather than erroring.
func (p *Planner) PriceRoute(ctx context.Context, tenantID int64, orders []domain.Order, categoryID int64) (float64, error) {
	if tenantID <= 0 || len(orders) == 0 {
		return 0, apperr.ErrInvalid
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	category, err := p.cats.Get(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	directions, err := p.dirs.ListByTenant(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	return freight.Calculate(orders, category, directions), nil
}
