package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/domain"
	"github.com/plantdoc/backend/internal/metrics"
	"github.com/plantdoc/backend/pkg/utils"
)

// CachedWeather serves weather snapshots from Redis before calling the
// wrapped adapter. Cache errors never fail the lookup.
type CachedWeather struct {
	next   domain.Adapter
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedWeather wraps next with a Redis cache
func NewCachedWeather(next domain.Adapter, rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedWeather {
	return &CachedWeather{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "weather-cache").Logger(),
	}
}

// Name returns the wrapped provider identifier
func (c *CachedWeather) Name() domain.ProviderName {
	return c.next.Name()
}

// Analyze returns a cached snapshot for geo or fetches and stores a fresh one
func (c *CachedWeather) Analyze(ctx context.Context, img domain.ImageInput, geo *domain.GeoCoordinates) domain.Outcome {
	if geo == nil {
		return c.next.Analyze(ctx, img, geo)
	}
	key := weatherCacheKey(geo)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var snapshot domain.WeatherSnapshot
		if uerr := sonic.Unmarshal(raw, &snapshot); uerr == nil {
			metrics.WeatherCache.WithLabelValues("hit").Inc()
			return domain.Succeeded(c.Name(), snapshot)
		}
		c.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn().Err(err).Str("key", key).Msg("weather cache read failed")
	}
	metrics.WeatherCache.WithLabelValues("miss").Inc()

	outcome := c.next.Analyze(ctx, img, geo)
	if !outcome.OK() {
		return outcome
	}
	if snapshot, ok := outcome.Payload.(domain.WeatherSnapshot); ok {
		if encoded, merr := sonic.Marshal(snapshot); merr == nil {
			if serr := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); serr != nil {
				c.logger.Warn().Err(serr).Str("key", key).Msg("weather cache write failed")
			}
		}
	}
	return outcome
}

// weatherCacheKey buckets coordinates to roughly 1 km
func weatherCacheKey(geo *domain.GeoCoordinates) string {
	return fmt.Sprintf("weather:%.2f:%.2f", utils.RoundTo(geo.Latitude, 2), utils.RoundTo(geo.Longitude, 2))
}
