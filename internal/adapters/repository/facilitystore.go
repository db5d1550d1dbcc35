package repository

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/naijacare/proximity/internal/domain/model"
	"github.com/naijacare/proximity/pkg/logger"
	"github.com/naijacare/proximity/pkg/metrics"
)

// facilityRow mirrors one line of the facility dataset. Latitude and
// longitude stay as raw strings so blank or malformed cells can be
// detected and dropped at load time instead of silently parsing as zero.
type facilityRow struct {
	Name      string `csv:"facility_name"`
	Level     string `csv:"facility_level"`
	Ownership string `csv:"ownership"`
	Ward      string `csv:"ward"`
	LGA       string `csv:"lga"`
	State     string `csv:"state"`
	Latitude  string `csv:"latitude"`
	Longitude string `csv:"longitude"`
}

// coordinate parses a raw cell into a coordinate value. Blank and
// unparseable cells report false.
func coordinate(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FacilityStore is the in-memory Store implementation. The table is indexed
// by state at construction time and is read-only afterwards, so it is safe
// to share across concurrent queries without locking.
type FacilityStore struct {
	byState map[string][]model.Facility
	regions []string
	total   int
	logger  logger.Logger
}

// NewFacilityStore builds a store from already-validated facilities,
// preserving their input order within each state.
func NewFacilityStore(facilities []model.Facility, opts ...Option) *FacilityStore {
	s := &FacilityStore{
		byState: make(map[string][]model.Facility),
		logger:  logger.Get().Named("facilitystore"),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, f := range facilities {
		s.byState[f.State] = append(s.byState[f.State], f)
		s.total++
	}
	s.regions = make([]string, 0, len(s.byState))
	for state := range s.byState {
		s.regions = append(s.regions, state)
	}
	sort.Strings(s.regions)

	metrics.UpdateFacilitiesLoaded(s.total)
	metrics.UpdateRegionCount(len(s.regions))
	return s
}

// Load reads the facility dataset from a CSV file at path and builds the
// store. Rows with missing or out-of-range coordinates never reach the
// engine; they are counted and logged, not failed on.
func Load(ctx context.Context, path string, opts ...Option) (*FacilityStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}
	defer f.Close()

	var rows []facilityRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}

	facilities := make([]model.Facility, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		lat, latOK := coordinate(r.Latitude)
		lon, lonOK := coordinate(r.Longitude)
		if !latOK || !lonOK {
			dropped++
			continue
		}
		p := model.GeoPoint{Latitude: lat, Longitude: lon}
		if !p.Valid() {
			dropped++
			continue
		}
		facilities = append(facilities, model.Facility{
			Name:      r.Name,
			Level:     r.Level,
			Ownership: r.Ownership,
			Ward:      r.Ward,
			LGA:       r.LGA,
			State:     r.State,
			Latitude:  lat,
			Longitude: lon,
		})
	}

	s := NewFacilityStore(facilities, opts...)
	s.logger.Info(ctx, "facility dataset loaded",
		logger.String("path", path),
		logger.Int("facilities", s.total),
		logger.Int("regions", len(s.regions)),
		logger.Int("dropped", dropped),
	)
	return s, nil
}

// ScopedLookup returns the facilities of one region in dataset order.
func (s *FacilityStore) ScopedLookup(_ context.Context, region string) ([]model.Facility, error) {
	candidates, ok := s.byState[region]
	if !ok || len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyRegion, region)
	}
	// Hand out a copy so a query can never alias the shared table.
	out := make([]model.Facility, len(candidates))
	copy(out, candidates)
	return out, nil
}

// Regions returns the distinct state names in the dataset, sorted.
func (s *FacilityStore) Regions(_ context.Context) []string {
	out := make([]string, len(s.regions))
	copy(out, s.regions)
	return out
}

// Count returns the number of facilities tracked by the store.
func (s *FacilityStore) Count(_ context.Context) int {
	return s.total
}
