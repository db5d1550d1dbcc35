// Package service provides the proximity resolution engine that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/naijacare/proximity/internal/adapters/geocode"
	"github.com/naijacare/proximity/internal/adapters/repository"
	"github.com/naijacare/proximity/internal/adapters/routing"
	"github.com/naijacare/proximity/internal/domain/model"
	"github.com/naijacare/proximity/internal/domain/ranking"
	"github.com/naijacare/proximity/pkg/logger"
	"github.com/naijacare/proximity/pkg/metrics"
)

// Geocoder resolves free-text addresses to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, addressText, regionHint string) (model.GeoPoint, error)
}

// Refiner fetches road travel estimates between two points.
type Refiner interface {
	Enrich(ctx context.Context, origin, target model.GeoPoint, credential string) (*model.DriveEstimate, error)
}

// Service is the proximity resolution engine. A query runs as one linear
// pipeline: geocode, scoped lookup, rank, best-effort refine. The engine
// holds no per-query state, so concurrent Resolve calls are independent.
type Service struct {
	mu sync.RWMutex

	// Core components
	facilities repository.Store
	geocoder   Geocoder
	refiner    Refiner

	// Configuration
	datasetPath        string
	country            string
	geocoderBaseURL    string
	geocoderUserAgent  string
	geocoderTimeout    time.Duration
	routingBaseURL     string
	routingTimeout     time.Duration
	routingAPIKey      string
	defaultResultCount int
	maxResultCount     int
	refineConcurrency  int
	sanityDistanceKm   float64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		datasetPath:        "nigeria_health_facilities.csv",
		country:            "Nigeria",
		geocoderTimeout:    5 * time.Second,
		routingTimeout:     8 * time.Second,
		defaultResultCount: 5,
		maxResultCount:     20,
		refineConcurrency:  5,
		sanityDistanceKm:   250,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the facility dataset and builds the provider clients that were
// not injected. The store is read-only from here on.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("engine")
	}

	if s.facilities == nil {
		store, err := repository.Load(ctx, s.datasetPath)
		if err != nil {
			return err
		}
		s.facilities = store
	}
	if s.geocoder == nil {
		s.geocoder = geocode.NewClient(
			geocode.WithBaseURL(s.geocoderBaseURL),
			geocode.WithUserAgent(s.geocoderUserAgent),
			geocode.WithCountry(s.country),
			geocode.WithTimeout(s.geocoderTimeout),
		)
	}
	if s.refiner == nil {
		s.refiner = routing.NewClient(
			routing.WithBaseURL(s.routingBaseURL),
			routing.WithTimeout(s.routingTimeout),
		)
	}

	s.started = true
	s.logger.Info(ctx, "proximity engine started",
		logger.Int("facilities", s.facilities.Count(ctx)),
		logger.Int("regions", len(s.facilities.Regions(ctx))),
		logger.Int("defaultResultCount", s.defaultResultCount),
		logger.Int("refineConcurrency", s.refineConcurrency),
	)
	return nil
}

// Stop marks the service stopped. The store needs no teardown; it is plain
// memory released with the process.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "proximity engine stopped")
}

// Resolve runs one proximity query: address to coordinate, scoped candidate
// lookup, distance ranking, and optional best-effort drive-time refinement.
// The two hard-fail points surface as ErrLocationNotFound and
// ErrNoCandidates; refinement failures never fail the query.
func (s *Service) Resolve(ctx context.Context, q model.ProximityQuery) (model.Resolution, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return model.Resolution{}, ErrNotStarted
	}

	if strings.TrimSpace(q.AddressText) == "" || strings.TrimSpace(q.Region) == "" {
		metrics.RecordQueryFailed("invalid_query")
		return model.Resolution{}, fmt.Errorf("%w: address and region are required", ErrInvalidQuery)
	}

	count := q.ResultCount
	switch {
	case count == 0:
		count = s.defaultResultCount
	case count < 0:
		metrics.RecordQueryFailed("invalid_query")
		return model.Resolution{}, fmt.Errorf("%w: %w", ErrInvalidQuery, ranking.ErrInvalidCount)
	case count > s.maxResultCount:
		count = s.maxResultCount
	}

	queryID := uuid.NewString()

	origin, err := s.geocoder.Resolve(ctx, q.AddressText, q.Region)
	if err != nil {
		metrics.RecordQueryFailed("location_not_found")
		s.logger.Info(ctx, "address not resolved",
			logger.String("queryID", queryID),
			logger.String("region", q.Region),
			logger.Error(err),
		)
		return model.Resolution{}, fmt.Errorf("%w: %w", ErrLocationNotFound, err)
	}

	candidates, err := s.facilities.ScopedLookup(ctx, q.Region)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyRegion) {
			metrics.RecordQueryFailed("no_candidates")
			return model.Resolution{}, fmt.Errorf("%w: %w", ErrNoCandidates, err)
		}
		metrics.RecordQueryFailed("internal")
		return model.Resolution{}, err
	}

	ranked, err := ranking.Rank(origin, candidates, count)
	if err != nil {
		metrics.RecordQueryFailed("invalid_query")
		return model.Resolution{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	// The resolved point is not validated against region boundaries; a
	// suspiciously distant nearest candidate is the tell that the address
	// matched somewhere else in the country.
	if len(ranked) > 0 && ranked[0].StraightLineKm > s.sanityDistanceKm {
		s.logger.Warn(ctx, "nearest candidate unusually far from resolved address",
			logger.String("queryID", queryID),
			logger.String("region", q.Region),
			logger.Float64("nearestKm", ranked[0].StraightLineKm),
		)
	}

	if cred := s.credential(q); q.RefinementEnabled && cred != "" {
		s.refineAll(ctx, queryID, origin, ranked, cred)
	}

	metrics.RecordQueryResolved()
	s.logger.Info(ctx, "query resolved",
		logger.String("queryID", queryID),
		logger.String("region", q.Region),
		logger.Int("results", len(ranked)),
	)
	return model.Resolution{QueryID: queryID, Origin: origin, Candidates: ranked}, nil
}

// Regions lists the regions known to the facility store.
func (s *Service) Regions(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil
	}
	return s.facilities.Regions(ctx)
}

// credential picks the query credential, falling back to the process-wide
// routing key.
func (s *Service) credential(q model.ProximityQuery) string {
	if q.RefinementCredential != "" {
		return q.RefinementCredential
	}
	return s.routingAPIKey
}

// refineAll enriches ranked candidates in place with bounded parallelism.
// Rank order is already fixed; each goroutine writes only its own index, so
// completion order cannot reorder results, and a failed candidate simply
// keeps its straight-line distance.
func (s *Service) refineAll(ctx context.Context, queryID string, origin model.GeoPoint, ranked []model.RankedCandidate, credential string) {
	limit := s.refineConcurrency
	if len(ranked) < limit {
		limit = len(ranked)
	}
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i := range ranked {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			est, err := s.refiner.Enrich(ctx, origin, ranked[i].Facility.Point(), credential)
			if err != nil {
				s.logger.Debug(ctx, "refinement skipped",
					logger.String("queryID", queryID),
					logger.String("facility", ranked[i].Facility.Name),
					logger.Error(err),
				)
				return
			}
			if est == nil {
				return
			}
			ranked[i].DriveTimeMinutes = &est.Minutes
			ranked[i].DriveDistanceKm = &est.DistanceKm
			metrics.RecordRefinementApplied()
		}(i)
	}
	wg.Wait()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":            s.started,
		"defaultResultCount": s.defaultResultCount,
		"maxResultCount":     s.maxResultCount,
		"refineConcurrency":  s.refineConcurrency,
	}
	if s.started {
		ctx := context.Background()
		stats["facilities"] = s.facilities.Count(ctx)
		stats["regions"] = len(s.facilities.Regions(ctx))
	}
	return stats
}
