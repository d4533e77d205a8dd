package routing

import (
	"context"
	"time"

	"delivery-routing/internal/domain"
	"delivery-routing/internal/logx"
	"delivery-routing/internal/ports/geo"
)

// Stop is a single route stop to visit.
type Stop struct {
	OrderID string
	Coord   domain.Coordinate
}

// Summary aggregates provider metrics over all chunk requests of a route.
// Degraded is set when at least one chunk fetch failed and the metrics
// are therefore incomplete; the ordering itself is always complete.
type Summary struct {
	DistanceMeters  int
	DurationSeconds int
	Legs            int
	Degraded        bool
}

// Strategy selects the stop-ordering heuristic.
type Strategy string

// List of available ordering strategies
const (
	// StrategyTwoPass runs a global nearest-neighbor pass, chunks the
	// result by the provider waypoint limit, then re-runs the heuristic
	// inside each chunk seeded from the previous chunk's tail.
	StrategyTwoPass Strategy = "two_pass"
	// StrategySinglePass runs the global pass and chunks without the
	// per-chunk refinement.
	StrategySinglePass Strategy = "single_pass"
	// StrategyTwoOpt improves the global pass with 2-opt before chunking.
	StrategyTwoOpt Strategy = "two_opt"
)

// Valid checks if the Strategy is valid
func (s Strategy) Valid() bool {
	switch s {
	case StrategyTwoPass, StrategySinglePass, StrategyTwoOpt:
		return true
	}
	return false
}

type counter interface {
	Inc()
}

// Optimizer orders delivery stops with a chunked nearest-neighbor
// heuristic bounded by the provider's waypoint limit.
type Optimizer struct {
	directions   geo.Directions
	strategy     Strategy
	fetchTimeout time.Duration
	failures     counter
	logger       logx.Logger
}

// NewOptimizer creates an Optimizer. A zero timeout falls back to 10s
// and an unknown strategy falls back to the two-pass default.
func NewOptimizer(directions geo.Directions, strategy Strategy, fetchTimeout time.Duration, failures counter, logger logx.Logger) *Optimizer {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	if !strategy.Valid() {
		strategy = StrategyTwoPass
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Optimizer{
		directions:   directions,
		strategy:     strategy,
		fetchTimeout: fetchTimeout,
		failures:     failures,
		logger:       logger,
	}
}

// Optimize returns the stops reordered for an approximately minimal
// round trip from origin, plus aggregate provider metrics.
//
// A nil origin means the depot was never geocoded: optimization is
// skipped and the input ordering is returned unchanged (degraded mode).
// Provider failures never invalidate the computed ordering; they only
// leave the summary incomplete.
func (o *Optimizer) Optimize(ctx context.Context, origin *domain.Coordinate, stops []Stop) ([]Stop, Summary, error) {
	out := make([]Stop, len(stops))
	copy(out, stops)

	if len(out) == 0 {
		return out, Summary{}, nil
	}
	if origin == nil {
		o.logger.Warn("route optimization skipped: depot has no coordinate",
			logx.Int("stops", len(out)),
		)
		return out, Summary{Degraded: true}, nil
	}

	ordered := o.order(*origin, out)
	summary := o.fetchMetrics(ctx, *origin, ordered)
	return ordered, summary, nil
}

// Measure fetches provider metrics for an already ordered sequence
// without touching the ordering. Manual edits go through here so the
// operator's sequence survives verbatim.
func (o *Optimizer) Measure(ctx context.Context, origin *domain.Coordinate, stops []Stop) Summary {
	if len(stops) == 0 {
		return Summary{}
	}
	if origin == nil {
		return Summary{Degraded: true}
	}
	return o.fetchMetrics(ctx, *origin, stops)
}

// order applies the configured heuristic and returns the full sequence.
func (o *Optimizer) order(origin domain.Coordinate, stops []Stop) []Stop {
	global := nearestNeighbor(origin, stops)

	if o.strategy == StrategyTwoOpt {
		global = improveTwoOpt(origin, global)
	}

	chunks := chunkStops(global, geo.MaxWaypoints)

	if o.strategy == StrategyTwoPass {
		// Refine each chunk seeded from the previous chunk's last stop
		// (origin for the first chunk).
		from := origin
		for i, chunk := range chunks {
			chunks[i] = nearestNeighbor(from, chunk)
			from = chunks[i][len(chunks[i])-1].Coord
		}
	}

	ordered := make([]Stop, 0, len(stops))
	for _, chunk := range chunks {
		ordered = append(ordered, chunk...)
	}
	return ordered
}

// fetchMetrics requests provider distance/duration per chunk and
// aggregates. Each chunk fetch gets its own timeout; a failed chunk is
// logged and skipped without touching the ordering.
func (o *Optimizer) fetchMetrics(ctx context.Context, origin domain.Coordinate, ordered []Stop) Summary {
	var summary Summary
	if o.directions == nil {
		summary.Degraded = true
		return summary
	}

	from := origin
	for _, chunk := range chunkStops(ordered, geo.MaxWaypoints) {
		waypoints := make([]domain.Coordinate, 0, len(chunk))
		for _, s := range chunk {
			waypoints = append(waypoints, s.Coord)
		}

		fetchCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
		route, err := o.directions.GetRoute(fetchCtx, from, waypoints)
		cancel()
		if err != nil {
			if o.failures != nil {
				o.failures.Inc()
			}
			o.logger.Warn("directions fetch failed, keeping computed ordering",
				logx.Int("chunk_stops", len(chunk)),
				logx.Any("err", err),
			)
			summary.Degraded = true
			from = chunk[len(chunk)-1].Coord
			continue
		}

		summary.DistanceMeters += route.DistanceMeters
		summary.DurationSeconds += route.DurationSeconds
		summary.Legs++
		from = chunk[len(chunk)-1].Coord
	}
	return summary
}

// nearestNeighbor repeatedly picks the unvisited stop closest to the
// current position. Euclidean distance over raw lat/lng degrees is a
// known approximation; it only drives ordering choice, never a
// displayed metric. Equidistant candidates resolve to the earlier slice
// position, keeping the pass deterministic.
func nearestNeighbor(from domain.Coordinate, stops []Stop) []Stop {
	remaining := make([]Stop, len(stops))
	copy(remaining, stops)

	ordered := make([]Stop, 0, len(stops))
	pos := from
	for len(remaining) > 0 {
		best := 0
		bestDist := euclidean(pos, remaining[0].Coord)
		for i := 1; i < len(remaining); i++ {
			if d := euclidean(pos, remaining[i].Coord); d < bestDist {
				best = i
				bestDist = d
			}
		}
		next := remaining[best]
		ordered = append(ordered, next)
		pos = next.Coord
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}

// chunkStops partitions stops into consecutive chunks of at most size.
func chunkStops(stops []Stop, size int) [][]Stop {
	if len(stops) == 0 {
		return nil
	}
	chunks := make([][]Stop, 0, (len(stops)+size-1)/size)
	for start := 0; start < len(stops); start += size {
		end := start + size
		if end > len(stops) {
			end = len(stops)
		}
		chunks = append(chunks, stops[start:end])
	}
	return chunks
}
