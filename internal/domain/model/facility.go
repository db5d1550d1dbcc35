// Package model contains domain models passed between layers.
package model

import "fmt"

// Ownership categories as they appear in the facility dataset.
const (
	OwnershipPublic  = "Public"
	OwnershipPrivate = "Private"
)

// Facility is a single health facility row. Instances are loaded once at
// startup and never mutated afterwards.
type Facility struct {
	Name      string // facility_name
	Level     string // facility_level, e.g. "Primary Health Centre"
	Ownership string // Public, Private or other dataset values
	Ward      string
	LGA       string
	State     string
	Latitude  float64
	Longitude float64
}

// Point returns the facility position as a GeoPoint.
func (f Facility) Point() GeoPoint {
	return GeoPoint{Latitude: f.Latitude, Longitude: f.Longitude}
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies within Earth coordinate ranges.
func (p GeoPoint) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// DriveEstimate is the road-network travel summary returned by a routing
// provider, already converted to minutes and kilometers.
type DriveEstimate struct {
	Minutes    float64
	DistanceKm float64
}

// RankedCandidate pairs a facility with its computed distances for one query.
// StraightLineKm is always set once ranking has happened; the drive fields are
// set only when refinement succeeded for this candidate.
type RankedCandidate struct {
	Facility         Facility
	StraightLineKm   float64
	DriveTimeMinutes *float64
	DriveDistanceKm  *float64
}

// Refined reports whether road travel data was attached to this candidate.
func (c RankedCandidate) Refined() bool {
	return c.DriveTimeMinutes != nil && c.DriveDistanceKm != nil
}

// NavigationURL builds a Google Maps directions deep link to the facility.
func (c RankedCandidate) NavigationURL() string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%f,%f",
		c.Facility.Latitude, c.Facility.Longitude)
}

// Resolution is the outcome of one proximity query: where the address
// resolved to and the ordered nearest candidates.
type Resolution struct {
	QueryID    string
	Origin     GeoPoint
	Candidates []RankedCandidate
}

// ProximityQuery describes one nearest-facility request.
type ProximityQuery struct {
	AddressText          string // free-text address, e.g. "Bodija Market, Ibadan"
	Region               string // canonical state name bounding the search
	ResultCount          int    // 0 means the configured default
	RefinementEnabled    bool
	RefinementCredential string // routing provider key; empty disables refinement
}
