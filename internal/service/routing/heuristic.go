package routing

import (
	"math"

	"delivery-routing/internal/domain"
)

func euclidean(a, b domain.Coordinate) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
}

// tourLength measures the open tour origin -> stops in order.
func tourLength(origin domain.Coordinate, stops []Stop) float64 {
	total := 0.0
	pos := origin
	for _, s := range stops {
		total += euclidean(pos, s.Coord)
		pos = s.Coord
	}
	return total
}

const twoOptMaxIterations = 25

// improveTwoOpt applies 2-opt segment reversals until no swap shortens
// the tour or the iteration cap is hit.
func improveTwoOpt(origin domain.Coordinate, stops []Stop) []Stop {
	best := make([]Stop, len(stops))
	copy(best, stops)
	bestLen := tourLength(origin, best)

	n := len(best)
	for it := 0; it < twoOptMaxIterations; it++ {
		improved := false
		for i := 0; i < n-1; i++ {
			for k := i + 1; k < n; k++ {
				cand := twoOptSwap(best, i, k)
				if l := tourLength(origin, cand); l+1e-9 < bestLen {
					best = cand
					bestLen = l
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return best
}

// twoOptSwap reverses the segment i..k.
func twoOptSwap(stops []Stop, i, k int) []Stop {
	out := make([]Stop, len(stops))
	copy(out, stops[:i])
	pos := i
	for j := k; j >= i; j-- {
		out[pos] = stops[j]
		pos++
	}
	copy(out[pos:], stops[k+1:])
	return out
}
