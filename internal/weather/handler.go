package weather

import (
	"context"
	"fmt"
	"time"

	"ecofeast-backend/internal/cache"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (Report, error)
}

// Service serves reports from the cache and falls back to the upstream API.
type Service struct {
	fetcher    Fetcher
	cache      cache.Cache
	ttl        time.Duration
	defaultLat float64
	defaultLon float64
	log        *zap.Logger
}

func NewService(fetcher Fetcher, c cache.Cache, ttl time.Duration, defaultLat, defaultLon float64, log *zap.Logger) *Service {
	return &Service{
		fetcher:    fetcher,
		cache:      c,
		ttl:        ttl,
		defaultLat: defaultLat,
		defaultLon: defaultLon,
		log:        log,
	}
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("weather:%.4f:%.4f", lat, lon)
}

// Report never fails because of the cache; cache errors are only logged.
func (s *Service) Report(ctx context.Context, lat, lon float64) (Report, error) {
	key := cacheKey(lat, lon)

	var cached Report
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.log.Warn("weather cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	rep, err := s.fetcher.Fetch(ctx, lat, lon)
	if err != nil {
		return Report{}, err
	}

	if err := s.cache.SetJSON(ctx, key, rep, s.ttl); err != nil {
		s.log.Warn("weather cache write failed", zap.String("key", key), zap.Error(err))
	}
	return rep, nil
}

// GET /api/weather?lat=28.6139&lon=77.2090
func WeatherHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", s.defaultLat)
		lon := c.QueryFloat("lon", s.defaultLon)
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return fiber.NewError(fiber.StatusBadRequest, "lat must be within [-90,90] and lon within [-180,180]")
		}

		rep, err := s.Report(c.UserContext(), lat, lon)
		if err != nil {
			s.log.Error("weather fetch failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
		}
		return c.JSON(rep)
	}
}
