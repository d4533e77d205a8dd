package regions

import "delivery-routing/internal/domain"

// FindRegion returns the first direction whose postal range contains the
// code, in list order. Ranges are allowed to overlap across directions;
// no narrowest-match rule is applied. Returns nil when nothing matches.
func FindRegion(postalCode string, directions []domain.Direction) *domain.Direction {
	if !domain.ValidatePostalCode(postalCode) {
		return nil
	}
	for i := range directions {
		if directions[i].Contains(postalCode) {
			return &directions[i]
		}
	}
	return nil
}

// Assignment groups orders into per-direction buckets. Orders whose
// postal code matches no direction land in Unmatched; that is a valid
// outcome, not an error.
type Assignment struct {
	ByDirection map[int64][]domain.Order
	Unmatched   []domain.Order
}

// AssignOrdersToRegions buckets every order by its resolved direction.
func AssignOrdersToRegions(orders []domain.Order, directions []domain.Direction) Assignment {
	out := Assignment{ByDirection: make(map[int64][]domain.Order)}
	for _, o := range orders {
		d := FindRegion(o.PostalCode, directions)
		if d == nil {
			out.Unmatched = append(out.Unmatched, o)
			continue
		}
		out.ByDirection[d.ID] = append(out.ByDirection[d.ID], o)
	}
	return out
}
