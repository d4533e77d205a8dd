package routing

import "delivery-routing/internal/apperr"

// Manual overrides of an already computed sequence. None of these
// re-run the heuristic; the caller refreshes provider metrics afterwards.

// EditAction names a manual override of a computed sequence.
type EditAction string

// Supported edit actions.
const (
	EditMove    EditAction = "move"
	EditRemove  EditAction = "remove"
	EditReverse EditAction = "reverse"
)

// Edit is one manual override. From and To index into the current
// sequence; remove reads only From and reverse reads neither.
type Edit struct {
	Action EditAction
	From   int
	To     int
}

// ApplyEdit dispatches the edit over stops.
func ApplyEdit(stops []Stop, e Edit) ([]Stop, error) {
	switch e.Action {
	case EditMove:
		return MoveStop(stops, e.From, e.To)
	case EditRemove:
		return RemoveStop(stops, e.From)
	case EditReverse:
		return ReverseStops(stops), nil
	default:
		return nil, apperr.ErrInvalid
	}
}

// MoveStop moves the stop at from to position to, shifting the rest.
func MoveStop(stops []Stop, from, to int) ([]Stop, error) {
	if from < 0 || from >= len(stops) || to < 0 || to >= len(stops) {
		return nil, apperr.ErrInvalid
	}
	out := make([]Stop, 0, len(stops))
	out = append(out, stops[:from]...)
	out = append(out, stops[from+1:]...)

	moved := stops[from]
	out = append(out[:to], append([]Stop{moved}, out[to:]...)...)
	return out, nil
}

// RemoveStop drops the stop at index i.
func RemoveStop(stops []Stop, i int) ([]Stop, error) {
	if i < 0 || i >= len(stops) {
		return nil, apperr.ErrInvalid
	}
	out := make([]Stop, 0, len(stops)-1)
	out = append(out, stops[:i]...)
	out = append(out, stops[i+1:]...)
	return out, nil
}

// ReverseStops returns the sequence fully reversed.
func ReverseStops(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	for i, s := range stops {
		out[len(stops)-1-i] = s
	}
	return out
}
