package domain

// ReleasePolicy holds tenant-configured thresholds for the auto-release
// decision. A nil threshold is not enforced.
type ReleasePolicy struct {
	TenantID          int64
	MinTotalValue     *float64
	MinTotalWeight    *float64
	MinOrderCount     *int
	MaxFreightPercent *float64
}

// DeliveryTotals carries the computed totals a policy is evaluated against.
type DeliveryTotals struct {
	Value      float64
	Weight     float64
	Freight    float64
	OrderCount int
}

// Satisfied reports whether every configured threshold holds for the
// given totals. A nil policy enforces nothing.
func (p *ReleasePolicy) Satisfied(t DeliveryTotals) bool {
	if p == nil {
		return true
	}
	if p.MinTotalValue != nil && t.Value < *p.MinTotalValue {
		return false
	}
	if p.MinTotalWeight != nil && t.Weight < *p.MinTotalWeight {
		return false
	}
	if p.MinOrderCount != nil && t.OrderCount < *p.MinOrderCount {
		return false
	}
	if p.MaxFreightPercent != nil {
		if t.Value <= 0 {
			return false
		}
		if t.Freight/t.Value*100 > *p.MaxFreightPercent {
			return false
		}
	}
	return true
}
