// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// DatasetPath points at the facility CSV read once at startup.
	DatasetPath string `koanf:"dataset_path"`

	// Country is the fixed qualifier appended to geocoding queries so
	// identically named places elsewhere do not win.
	Country string `koanf:"country"`

	// GeocoderBaseURL and GeocoderUserAgent configure the geocoding
	// provider endpoint.
	GeocoderBaseURL   string `koanf:"geocoder_base_url"`
	GeocoderUserAgent string `koanf:"geocoder_user_agent"`

	// GeocoderTimeoutMS bounds a single geocoding call.
	GeocoderTimeoutMS int `koanf:"geocoder_timeout_ms"`

	// RoutingBaseURL configures the routing provider endpoint.
	RoutingBaseURL string `koanf:"routing_base_url"`

	// RoutingTimeoutMS bounds a single routing call.
	RoutingTimeoutMS int `koanf:"routing_timeout_ms"`

	// RoutingAPIKey is an optional process-wide routing credential used
	// when a query does not carry its own.
	RoutingAPIKey string `koanf:"routing_api_key"`

	// DefaultResultCount is used when a query does not set a count.
	DefaultResultCount int `koanf:"default_result_count"`

	// MaxResultCount caps the per-query result count.
	MaxResultCount int `koanf:"max_result_count"`

	// RefineConcurrency bounds simultaneous routing calls per query.
	RefineConcurrency int `koanf:"refine_concurrency"`

	// SanityDistanceKm triggers a warning when the nearest candidate is
	// further away than this, hinting the address resolved outside the
	// declared region.
	SanityDistanceKm float64 `koanf:"sanity_distance_km"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8090",
		DatasetPath:        "nigeria_health_facilities.csv",
		Country:            "Nigeria",
		GeocoderBaseURL:    "https://nominatim.openstreetmap.org",
		GeocoderUserAgent:  "naijacare-proximity/1.0",
		GeocoderTimeoutMS:  5_000,
		RoutingBaseURL:     "https://api.openrouteservice.org",
		RoutingTimeoutMS:   8_000,
		DefaultResultCount: 5,
		MaxResultCount:     20,
		RefineConcurrency:  5,
		SanityDistanceKm:   250,
	}
}
