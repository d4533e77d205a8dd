package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"delivery-routing/internal/domain"
	"delivery-routing/internal/service/delivery"
)

func TestStatusFactory_Initial(t *testing.T) {
	t.Parallel()

	f := delivery.NewStatusFactory()
	minValue := 500.0
	minCount := 3
	maxFreightPct := 10.0

	cases := []struct {
		name   string
		policy *domain.ReleasePolicy
		totals domain.DeliveryTotals
		want   domain.DeliveryStatus
	}{
		{
			name:   "nil policy releases",
			policy: nil,
			totals: domain.DeliveryTotals{Value: 1, OrderCount: 1},
			want:   domain.DeliveryStarted,
		},
		{
			name:   "empty policy releases",
			policy: &domain.ReleasePolicy{},
			totals: domain.DeliveryTotals{},
			want:   domain.DeliveryStarted,
		},
		{
			name:   "value below threshold awaits",
			policy: &domain.ReleasePolicy{MinTotalValue: &minValue},
			totals: domain.DeliveryTotals{Value: 499.99},
			want:   domain.DeliveryAwaitingRelease,
		},
		{
			name:   "value at threshold releases",
			policy: &domain.ReleasePolicy{MinTotalValue: &minValue},
			totals: domain.DeliveryTotals{Value: 500},
			want:   domain.DeliveryStarted,
		},
		{
			name:   "order count below threshold awaits",
			policy: &domain.ReleasePolicy{MinOrderCount: &minCount},
			totals: domain.DeliveryTotals{OrderCount: 2},
			want:   domain.DeliveryAwaitingRelease,
		},
		{
			name:   "freight share above cap awaits",
			policy: &domain.ReleasePolicy{MaxFreightPercent: &maxFreightPct},
			totals: domain.DeliveryTotals{Value: 100, Freight: 15},
			want:   domain.DeliveryAwaitingRelease,
		},
		{
			name:   "freight share at cap releases",
			policy: &domain.ReleasePolicy{MaxFreightPercent: &maxFreightPct},
			totals: domain.DeliveryTotals{Value: 100, Freight: 10},
			want:   domain.DeliveryStarted,
		},
		{
			name:   "freight cap with zero value awaits",
			policy: &domain.ReleasePolicy{MaxFreightPercent: &maxFreightPct},
			totals: domain.DeliveryTotals{Value: 0, Freight: 0},
			want:   domain.DeliveryAwaitingRelease,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, f.Initial(tc.policy, tc.totals))
		})
	}
}
