// Package geocode resolves free-text addresses to coordinates through a
// Nominatim-compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/naijacare/proximity/internal/domain/model"
	"github.com/naijacare/proximity/pkg/logger"
	"github.com/naijacare/proximity/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "naijacare-proximity/1.0"
	defaultCountry   = "Nigeria"
	defaultTimeout   = 5 * time.Second
)

// place mirrors one entry of a Nominatim search response. Coordinates come
// back as strings.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client is an HTTP geocoding client. A single attempt is made per Resolve
// call: callers retry by re-issuing with a refined address, not by leaning
// on the client.
type Client struct {
	baseURL   string
	userAgent string
	country   string
	http      *http.Client
	logger    logger.Logger
}

// NewClient creates a geocoding client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		country:   defaultCountry,
		http:      &http.Client{Timeout: defaultTimeout},
		logger:    logger.Get().Named("geocode"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve converts an address plus region hint into a coordinate. The query
// sent to the provider is "address, region, country" so identically named
// places elsewhere do not shadow the intended one. Provider errors, timeouts
// and zero-result responses all surface as ErrProvider/ErrNoMatch.
func (c *Client) Resolve(ctx context.Context, addressText, regionHint string) (model.GeoPoint, error) {
	q := strings.TrimSpace(addressText)
	if regionHint = strings.TrimSpace(regionHint); regionHint != "" {
		q += ", " + regionHint
	}
	if c.country != "" {
		q += ", " + c.country
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return model.GeoPoint{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	metrics.RecordGeocodeRequest()
	t0 := time.Now()

	resp, err := c.http.Do(req)
	// Observed for failed calls too, so timeout tuning sees them.
	metrics.RecordGeocodeDuration(float64(time.Since(t0).Milliseconds()))
	if err != nil {
		metrics.RecordGeocodeFailure()
		c.logger.Warn(ctx, "geocode request failed", logger.String("query", q), logger.Error(err))
		return model.GeoPoint{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordGeocodeFailure()
		c.logger.Warn(ctx, "geocode provider status", logger.String("query", q), logger.Int("status", resp.StatusCode))
		return model.GeoPoint{}, fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		metrics.RecordGeocodeFailure()
		return model.GeoPoint{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	if len(places) == 0 {
		metrics.RecordGeocodeFailure()
		return model.GeoPoint{}, fmt.Errorf("%w: %q", ErrNoMatch, q)
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		metrics.RecordGeocodeFailure()
		return model.GeoPoint{}, fmt.Errorf("%w: malformed coordinates for %q", ErrProvider, q)
	}

	p := model.GeoPoint{Latitude: lat, Longitude: lon}
	if !p.Valid() {
		metrics.RecordGeocodeFailure()
		return model.GeoPoint{}, fmt.Errorf("%w: out-of-range coordinates for %q", ErrProvider, q)
	}

	c.logger.Debug(ctx, "address resolved",
		logger.String("query", q),
		logger.Float64("lat", p.Latitude),
		logger.Float64("lon", p.Longitude),
	)
	return p, nil
}
