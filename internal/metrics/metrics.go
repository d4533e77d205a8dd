package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// registerCounter registers c with the default registry, reusing the
// already-registered collector when one exists under the same name.
func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return c
}

// NewGeoRetriesTotal returns a registered Prometheus counter for the number of retry attempts performed against the geo provider
func NewGeoRetriesTotal() prometheus.Counter {
	return registerCounter(prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geo_retries_total",
		Help: "Total number of retry attempts performed against the geo provider",
	}))
}

// NewGeoFailuresTotal returns a registered Prometheus counter for the number of geo provider calls that exhausted retries
func NewGeoFailuresTotal() prometheus.Counter {
	return registerCounter(prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geo_failures_total",
		Help: "Total number of geo provider calls that exhausted retries",
	}))
}

// NewDeliveriesAutoReleasedTotal returns a registered Prometheus counter for the number of deliveries auto-released at creation
func NewDeliveriesAutoReleasedTotal() prometheus.Counter {
	return registerCounter(prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deliveries_auto_released_total",
		Help: "Total number of deliveries auto-released at creation",
	}))
}
