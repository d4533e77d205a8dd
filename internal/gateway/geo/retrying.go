package geo

import (
	"context"
	"errors"
	"net"
	"time"

	"delivery-routing/internal/domain"
	"delivery-routing/internal/logx"
	geoport "delivery-routing/internal/ports/geo"
)

type counter interface {
	Inc()
}

// RetryConfig describes the RetryingProvider behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingProvider decorates a geo.Provider with bounded exponential
// backoff on transient failures. Provider queries are pure and safe to
// retry.
type RetryingProvider struct {
	next    geoport.Provider
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingProvider wraps next with retry behavior; returns nil when next is nil.
func NewRetryingProvider(next geoport.Provider, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingProvider {
	if next == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingProvider{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Geocode resolves an address, retrying transient provider failures.
func (g *RetryingProvider) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	var (
		coord   domain.Coordinate
		lastErr error
	)
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		var err error
		coord, err = g.next.Geocode(ctx, address)
		if err == nil {
			return coord, nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}
		if !g.pause(ctx, "Geocode", attempt, err) {
			break
		}
	}
	return domain.Coordinate{}, lastErr
}

// GetRoute fetches a directions route, retrying transient provider failures.
func (g *RetryingProvider) GetRoute(ctx context.Context, origin domain.Coordinate, waypoints []domain.Coordinate) (geoport.Route, error) {
	var (
		route   geoport.Route
		lastErr error
	)
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		var err error
		route, err = g.next.GetRoute(ctx, origin, waypoints)
		if err == nil {
			return route, nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}
		if !g.pause(ctx, "GetRoute", attempt, err) {
			break
		}
	}
	return geoport.Route{}, lastErr
}

func (g *RetryingProvider) pause(ctx context.Context, method string, attempt int, err error) bool {
	delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
	if g.retries != nil {
		g.retries.Inc()
	}
	g.logger.Warn("geo provider retry",
		logx.String("method", method),
		logx.Int("attempt", attempt),
		logx.Duration("delay", delay),
		logx.Any("err", err),
	)
	return sleepWithContext(ctx, delay)
}

// isRetryable treats rate limiting, server errors and network errors as
// transient.
func isRetryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// backoff computes the retry delay.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
