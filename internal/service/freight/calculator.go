package freight

import (
	"math"

	"delivery-routing/internal/domain"
	"delivery-routing/internal/service/regions"
)

// Calculate derives the freight value for a set of orders.
//
// The route is priced at the single highest surcharge among the regions
// its orders resolve to, not the sum; a route spanning multiple regions
// must not be penalized multiplicatively. Orders that resolve to no
// region contribute zero. The vehicle category's base value is added on
// top; a missing category degrades to zero base.
func Calculate(orders []domain.Order, category *domain.Category, directions []domain.Direction) float64 {
	var surcharge float64
	for _, o := range orders {
		d := regions.FindRegion(o.PostalCode, directions)
		if d == nil {
			continue
		}
		if d.Surcharge > surcharge {
			surcharge = d.Surcharge
		}
	}

	var base float64
	if category != nil {
		base = category.BaseFreight
	}
	return surcharge + base
}

// Totals sums weight and monetary value over the order set.
func Totals(orders []domain.Order) (weight, value float64) {
	for _, o := range orders {
		weight += o.Weight
		value += o.Value
	}
	return weight, value
}

// Round2 rounds a monetary value to two decimal places. Applied at
// presentation time only; internal accumulation keeps full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
