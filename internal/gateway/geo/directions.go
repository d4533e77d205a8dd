package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"delivery-routing/internal/apperr"
	"delivery-routing/internal/domain"
	geoport "delivery-routing/internal/ports/geo"
)

type directionsRequest struct {
	// Coordinates are [lon, lat] pairs, origin first.
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// GetRoute fetches the driving route origin -> waypoints via
// /v2/directions/{profile}. Requests above the provider waypoint limit
// are rejected before leaving the process.
func (c *Client) GetRoute(ctx context.Context, origin domain.Coordinate, waypoints []domain.Coordinate) (geoport.Route, error) {
	if len(waypoints) == 0 {
		return geoport.Route{}, apperr.ErrInvalid
	}
	if len(waypoints) > geoport.MaxWaypoints {
		return geoport.Route{}, fmt.Errorf("directions: %d waypoints exceed limit %d: %w",
			len(waypoints), geoport.MaxWaypoints, apperr.ErrInvalid)
	}

	payload := directionsRequest{Coordinates: make([][]float64, 0, len(waypoints)+1)}
	payload.Coordinates = append(payload.Coordinates, []float64{origin.Lng, origin.Lat})
	for _, w := range waypoints {
		payload.Coordinates = append(payload.Coordinates, []float64{w.Lng, w.Lat})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return geoport.Route{}, fmt.Errorf("directions: marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/v2/directions/"+c.profile, bytes.NewReader(body))
	if err != nil {
		return geoport.Route{}, fmt.Errorf("directions: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return geoport.Route{}, fmt.Errorf("directions: %w: %w", apperr.ErrProvider, err)
	}
	defer resp.Body.Close()

	var parsed directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return geoport.Route{}, fmt.Errorf("directions: decode response: %w: %w", apperr.ErrProvider, err)
	}
	if len(parsed.Routes) == 0 {
		return geoport.Route{}, fmt.Errorf("directions: empty routes: %w", apperr.ErrProvider)
	}

	r := parsed.Routes[0]
	return geoport.Route{
		Polyline:        r.Geometry,
		DistanceMeters:  int(r.Summary.Distance),
		DurationSeconds: int(r.Summary.Duration),
	}, nil
}
