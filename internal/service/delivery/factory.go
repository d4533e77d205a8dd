package delivery

import "delivery-routing/internal/domain"

type thresholdFactory struct{}

// NewStatusFactory - creates the threshold-based StatusFactory.
func NewStatusFactory() StatusFactory {
	return thresholdFactory{}
}

// Initial returns the starting status for a new delivery. When every
// configured tenant threshold is satisfied the delivery is auto-released
// straight to in-progress; otherwise it waits for manual approval.
func (thresholdFactory) Initial(policy *domain.ReleasePolicy, totals domain.DeliveryTotals) domain.DeliveryStatus {
	if policy.Satisfied(totals) {
		return domain.DeliveryStarted
	}
	return domain.DeliveryAwaitingRelease
}
