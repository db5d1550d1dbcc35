// Package ranking orders facilities by geodesic distance from an origin.
package ranking

import (
	"sort"

	"github.com/jftuga/geodist"

	"github.com/naijacare/proximity/internal/domain/model"
)

// Rank computes the straight-line distance from origin to every candidate and
// returns the closest count of them, ascending by distance. Candidates at
// equal distance keep their relative input order, so identical inputs always
// produce identical output.
//
// An empty candidate slice yields an empty result; count <= 0 is rejected
// with ErrInvalidCount.
func Rank(origin model.GeoPoint, candidates []model.Facility, count int) ([]model.RankedCandidate, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	ranked := make([]model.RankedCandidate, 0, len(candidates))
	for _, f := range candidates {
		ranked = append(ranked, model.RankedCandidate{
			Facility:       f,
			StraightLineKm: DistanceKm(origin, f.Point()),
		})
	}

	// Stable sort keeps input order for equal distances.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].StraightLineKm < ranked[j].StraightLineKm
	})

	if count < len(ranked) {
		ranked = ranked[:count]
	}
	return ranked, nil
}

// DistanceKm returns the geodesic distance between two points in kilometers.
// It uses the Vincenty formula on the WGS84 ellipsoid; for the rare
// antipodal point pairs where Vincenty fails to converge it falls back to
// the spherical haversine distance.
func DistanceKm(a, b model.GeoPoint) float64 {
	from := geodist.Coord{Lat: a.Latitude, Lon: a.Longitude}
	to := geodist.Coord{Lat: b.Latitude, Lon: b.Longitude}

	_, km, err := geodist.VincentyDistance(from, to)
	if err != nil {
		_, km = geodist.HaversineDistance(from, to)
	}
	return km
}
