package routing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"delivery-routing/internal/domain"
)

func TestTwoOptSwap(t *testing.T) {
	t.Parallel()

	stops := []Stop{
		{OrderID: "a"}, {OrderID: "b"}, {OrderID: "c"}, {OrderID: "d"}, {OrderID: "e"},
	}

	got := twoOptSwap(stops, 1, 3)
	require.Equal(t, "a", got[0].OrderID)
	require.Equal(t, "d", got[1].OrderID)
	require.Equal(t, "c", got[2].OrderID)
	require.Equal(t, "b", got[3].OrderID)
	require.Equal(t, "e", got[4].OrderID)

	// input untouched
	require.Equal(t, "b", stops[1].OrderID)
}

func TestImproveTwoOpt_UncrossesPath(t *testing.T) {
	t.Parallel()

	origin := domain.Coordinate{}
	crossed := []Stop{
		{OrderID: "far", Coord: domain.Coordinate{Lat: 10}},
		{OrderID: "near", Coord: domain.Coordinate{Lat: 1}},
		{OrderID: "mid", Coord: domain.Coordinate{Lat: 5}},
	}

	improved := improveTwoOpt(origin, crossed)
	require.LessOrEqual(t, tourLength(origin, improved), tourLength(origin, crossed))
	require.Equal(t, "near", improved[0].OrderID)
	require.Equal(t, "mid", improved[1].OrderID)
	require.Equal(t, "far", improved[2].OrderID)
}

func TestTourLength(t *testing.T) {
	t.Parallel()

	origin := domain.Coordinate{}
	stops := []Stop{
		{Coord: domain.Coordinate{Lat: 3, Lng: 4}},
		{Coord: domain.Coordinate{Lat: 3, Lng: 8}},
	}
	require.InDelta(t, 9.0, tourLength(origin, stops), 1e-9)
	require.Zero(t, tourLength(origin, nil))
}
