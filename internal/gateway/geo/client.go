package geo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"delivery-routing/internal/config"
)

// Client talks to an OpenRouteService-compatible mapping API for
// geocoding and directions.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
	profile string
}

// NewClient creates a geo Client from config.
func NewClient(cfg config.Geo) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("geo api key is empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	profile := cfg.Profile
	if profile == "" {
		profile = "driving-car"
	}
	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		profile: profile,
	}, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("geo provider status %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// normalize collapses whitespace and lowercases, so equivalent
// addresses share one cache key and one provider query shape.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
