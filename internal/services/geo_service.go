package services

import (
	"context"
	"strings"
	"time"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
	"go.uber.org/zap"

	"halifax-hub/internal/cache"
	"halifax-hub/internal/models"
)

// Geocoder resolves a street address to coordinates. A nil result with
// a nil error means no match; pin creation treats that as "keep the
// manual coordinates" and moves on.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

const geoCachePrefix = "geo:addr:"

// GeoService looks addresses up on Nominatim and caches hits, since
// community maps geocode the same handful of places over and over.
type GeoService struct {
	geocoder geo.Geocoder
	cache    cache.Cache
	ttl      time.Duration
	logger   *zap.Logger
}

func NewGeoService(c cache.Cache, ttl time.Duration, logger *zap.Logger) *GeoService {
	return &GeoService{
		geocoder: openstreetmap.Geocoder(),
		cache:    c,
		ttl:      ttl,
		logger:   logger,
	}
}

// Geocode resolves address, consulting the cache first. Lookup
// failures are logged and reported as no match so a flaky upstream
// never blocks adding a pin.
func (s *GeoService) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}

	key := geoCachePrefix + strings.ToLower(address)
	var cached models.Coordinates
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if err != cache.ErrNotFound {
		s.logger.Warn("geocode cache read failed", zap.Error(err))
	}

	location, err := s.geocoder.Geocode(address)
	if err != nil {
		s.logger.Warn("geocoding lookup failed",
			zap.String("address", address),
			zap.Error(err))
		return nil, nil
	}
	if location == nil {
		return nil, nil
	}

	coords := models.Coordinates{Lat: location.Lat, Lon: location.Lng}
	if err := s.cache.Set(ctx, key, coords, s.ttl); err != nil {
		s.logger.Warn("geocode cache write failed", zap.Error(err))
	}
	return &coords, nil
}

// NoopGeocoder never matches. It backs GEOCODING_ENABLED=false and
// keeps the pin flow fully offline.
type NoopGeocoder struct{}

func (NoopGeocoder) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	return nil, nil
}
