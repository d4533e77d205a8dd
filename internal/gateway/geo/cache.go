package geo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"delivery-routing/internal/domain"
	"delivery-routing/internal/logx"
	geoport "delivery-routing/internal/ports/geo"
)

const geocodeKeyPrefix = "geocode:"

// CachedGeocoder is a redis cache-aside decorator over a Geocoder.
// Cache failures are logged and fall through to the inner geocoder;
// not-found answers are not cached.
type CachedGeocoder struct {
	next   geoport.Geocoder
	rdb    *redis.Client
	ttl    time.Duration
	logger logx.Logger
}

// NewCachedGeocoder wraps next with a redis geocode cache.
func NewCachedGeocoder(next geoport.Geocoder, rdb *redis.Client, ttl time.Duration, logger logx.Logger) *CachedGeocoder {
	if next == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &CachedGeocoder{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

type cachedCoordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocode resolves an address, serving repeated lookups from redis.
func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	key := geocodeKeyPrefix + normalize(address)

	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var cached cachedCoordinate
			if err := json.Unmarshal(raw, &cached); err == nil {
				return domain.Coordinate{Lat: cached.Lat, Lng: cached.Lng}, nil
			}
			c.logger.Warn("geocode cache entry corrupt, refetching", logx.String("key", key))
		case errors.Is(err, redis.Nil):
			// miss
		default:
			c.logger.Warn("geocode cache read failed", logx.Any("err", err))
		}
	}

	coord, err := c.next.Geocode(ctx, address)
	if err != nil {
		return domain.Coordinate{}, err
	}

	if c.rdb != nil {
		raw, err := json.Marshal(cachedCoordinate{Lat: coord.Lat, Lng: coord.Lng})
		if err == nil {
			if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				c.logger.Warn("geocode cache write failed", logx.Any("err", err))
			}
		}
	}
	return coord, nil
}
