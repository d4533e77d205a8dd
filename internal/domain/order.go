package domain

import "regexp"

// Coordinate is a geocoded point (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lng float64
}

// Order represents an uploaded customer order.
// Orders are created externally and mutated only through delivery
// lifecycle transitions; they are never deleted.
type Order struct {
	ID         string
	TenantID   int64
	PostalCode string
	Coord      *Coordinate
	Weight     float64
	Value      float64
	Status     OrderStatus
}

// PostalCodeWidth is the fixed width of a numeric postal code.
const PostalCodeWidth = 8

// rePostalCode matches fixed-width numeric postal codes.
var rePostalCode = regexp.MustCompile(`^[0-9]{8}$`)

// ValidatePostalCode validates the fixed-width numeric postal code format.
func ValidatePostalCode(s string) bool {
	return rePostalCode.MatchString(s)
}

// Routable reports whether the order may be claimed by a new delivery.
func (o *Order) Routable() bool {
	switch o.Status {
	case OrderWithoutRoute, OrderPending, OrderRedelivery:
		return true
	default:
		return false
	}
}
