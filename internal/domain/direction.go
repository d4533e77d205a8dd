package domain

// Direction is a named geographic region defined by a postal-code
// interval and an associated delivery surcharge.
type Direction struct {
	ID         int64
	TenantID   int64
	Name       string
	RangeStart string
	RangeEnd   string
	Surcharge  float64
}

// Contains reports whether the postal code falls inside the direction
// range. Postal codes are fixed-width zero-padded numeric strings, so
// lexicographic comparison is equivalent to numeric comparison.
func (d *Direction) Contains(postalCode string) bool {
	if len(postalCode) != len(d.RangeStart) || len(postalCode) != len(d.RangeEnd) {
		return false
	}
	return d.RangeStart <= postalCode && postalCode <= d.RangeEnd
}
