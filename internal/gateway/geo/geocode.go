package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"delivery-routing/internal/apperr"
	"delivery-routing/internal/domain"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			// ORS returns [lon, lat].
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves an address via /geocode/search. An address the
// provider cannot resolve yields apperr.ErrNotFound.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	norm := normalize(address)
	if norm == "" {
		return domain.Coordinate{}, apperr.ErrInvalid
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/geocode/search", nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	q := req.URL.Query()
	q.Set("text", norm)
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w: %w", norm, apperr.ErrProvider, err)
	}
	defer resp.Body.Close()

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: decode response: %w", norm, err)
	}
	if len(parsed.Features) == 0 || len(parsed.Features[0].Geometry.Coordinates) < 2 {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w", norm, apperr.ErrNotFound)
	}

	coords := parsed.Features[0].Geometry.Coordinates
	return domain.Coordinate{Lat: coords[1], Lng: coords[0]}, nil
}
