package domain

import "time"

// DeliveryOrder binds an order to a delivery at a stop position.
// Sorting values form a dense permutation of 1..N.
type DeliveryOrder struct {
	Order   Order
	Sorting int
}

// Delivery - an ordered batch of orders assigned to one driver and
// vehicle for a single trip.
type Delivery struct {
	ID           int64
	TenantID     int64
	DriverID     int64
	VehicleID    int64
	Orders       []DeliveryOrder
	FreightValue float64
	TotalWeight  float64
	TotalValue   float64
	Status       DeliveryStatus
	RejectReason *string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// OrdersTerminal reports whether every order reached a terminal status.
func (d *Delivery) OrdersTerminal() bool {
	if len(d.Orders) == 0 {
		return false
	}
	for _, o := range d.Orders {
		if !o.Order.Status.Terminal() {
			return false
		}
	}
	return true
}

// Renumber rewrites sorting indexes as a dense 1..N permutation
// following the current slice order.
func (d *Delivery) Renumber() {
	for i := range d.Orders {
		d.Orders[i].Sorting = i + 1
	}
}
