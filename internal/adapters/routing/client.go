// Package routing fetches road travel estimates from an
// OpenRouteService-compatible directions endpoint.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/naijacare/proximity/internal/domain/model"
	"github.com/naijacare/proximity/pkg/logger"
	"github.com/naijacare/proximity/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL = "https://api.openrouteservice.org"
	defaultTimeout = 8 * time.Second

	drivingProfile   = "driving-car"
	secondsPerMinute = 60
	metersPerKm      = 1000
)

// directionsRequest is the POST body for the directions endpoint. The
// provider expects lon,lat pairs.
type directionsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

// directionsResponse mirrors the GeoJSON shape of a directions response,
// down to the single summary the refiner needs.
type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Client is an HTTP routing client. Enrich is strictly best-effort: no
// retries, no caching, one call per candidate.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// NewClient creates a routing client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger.Get().Named("routing"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enrich requests the shortest drive-time path from origin to target and
// returns the travel summary converted to minutes and kilometers. A missing
// credential returns (nil, nil): refinement is opt-in and its absence is not
// an error. Every provider failure returns a non-nil error the caller is
// expected to absorb.
func (c *Client) Enrich(ctx context.Context, origin, target model.GeoPoint, credential string) (*model.DriveEstimate, error) {
	if credential == "" {
		return nil, nil
	}

	body, err := json.Marshal(directionsRequest{
		Coordinates: [][2]float64{
			{origin.Longitude, origin.Latitude},
			{target.Longitude, target.Latitude},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	u := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, drivingProfile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	req.Header.Set("Authorization", credential)
	req.Header.Set("Content-Type", "application/json")

	metrics.RecordRoutingRequest()
	t0 := time.Now()

	resp, err := c.http.Do(req)
	// Observed for failed calls too, so timeout tuning sees them.
	metrics.RecordRoutingDuration(float64(time.Since(t0).Milliseconds()))
	if err != nil {
		metrics.RecordRoutingFailure()
		c.logger.Debug(ctx, "routing request failed", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordRoutingFailure()
		c.logger.Debug(ctx, "routing provider status", logger.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		metrics.RecordRoutingFailure()
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	if len(dr.Features) == 0 {
		metrics.RecordRoutingFailure()
		return nil, ErrNoRoute
	}

	summary := dr.Features[0].Properties.Summary
	return &model.DriveEstimate{
		Minutes:    summary.Duration / secondsPerMinute,
		DistanceKm: summary.Distance / metersPerKm,
	}, nil
}
