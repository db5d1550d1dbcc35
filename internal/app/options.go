package service

import (
	"time"

	"github.com/naijacare/proximity/internal/adapters/repository"
	"github.com/naijacare/proximity/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatasetPath sets the facility CSV path loaded at Start.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.datasetPath = path
		}
	}
}

// WithCountry sets the fixed country qualifier used for geocoding.
func WithCountry(country string) Option {
	return func(s *Service) {
		s.country = country
	}
}

// WithGeocoderEndpoint sets the geocoding provider base URL and user agent.
func WithGeocoderEndpoint(baseURL, userAgent string) Option {
	return func(s *Service) {
		s.geocoderBaseURL = baseURL
		s.geocoderUserAgent = userAgent
	}
}

// WithGeocoderTimeout bounds a single geocoding call.
func WithGeocoderTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.geocoderTimeout = d
		}
	}
}

// WithRoutingEndpoint sets the routing provider base URL.
func WithRoutingEndpoint(baseURL string) Option {
	return func(s *Service) {
		s.routingBaseURL = baseURL
	}
}

// WithRoutingTimeout bounds a single routing call.
func WithRoutingTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.routingTimeout = d
		}
	}
}

// WithRoutingAPIKey sets the process-wide fallback routing credential.
func WithRoutingAPIKey(key string) Option {
	return func(s *Service) {
		s.routingAPIKey = key
	}
}

// WithResultCounts sets the default and maximum per-query result counts.
func WithResultCounts(def, max int) Option {
	return func(s *Service) {
		if def > 0 {
			s.defaultResultCount = def
		}
		if max >= s.defaultResultCount {
			s.maxResultCount = max
		}
	}
}

// WithRefineConcurrency bounds simultaneous routing calls per query.
func WithRefineConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.refineConcurrency = n
		}
	}
}

// WithSanityDistance sets the distance above which a resolved address is
// flagged as probably outside the declared region.
func WithSanityDistance(km float64) Option {
	return func(s *Service) {
		if km > 0 {
			s.sanityDistanceKm = km
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a pre-built facility store, skipping the dataset load.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.facilities = store
		}
	}
}

// WithGeocoder injects a custom geocoder implementation.
func WithGeocoder(g Geocoder) Option {
	return func(s *Service) {
		if g != nil {
			s.geocoder = g
		}
	}
}

// WithRefiner injects a custom route refiner implementation.
func WithRefiner(r Refiner) Option {
	return func(s *Service) {
		if r != nil {
			s.refiner = r
		}
	}
}
