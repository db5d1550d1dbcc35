// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	engine "github.com/naijacare/proximity/internal/app"
	"github.com/naijacare/proximity/internal/domain/model"
)

// nearestRequest is the POST /nearest body.
type nearestRequest struct {
	Address string `json:"address"`
	Region  string `json:"region"`
	Count   int    `json:"count,omitempty"`
	Refine  bool   `json:"refine,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
}

func (r nearestRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Address) == "":
		return errors.New("missing address")
	case strings.TrimSpace(r.Region) == "":
		return errors.New("missing region")
	case r.Count < 0:
		return errors.New("count must not be negative")
	}
	return nil
}

// nearestCandidate is one result row of the response.
type nearestCandidate struct {
	Name             string   `json:"name"`
	Level            string   `json:"level"`
	Ownership        string   `json:"ownership"`
	Ward             string   `json:"ward"`
	LGA              string   `json:"lga"`
	State            string   `json:"state"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	StraightLineKm   float64  `json:"straight_line_km"`
	DriveTimeMinutes *float64 `json:"drive_time_minutes,omitempty"`
	DriveDistanceKm  *float64 `json:"drive_distance_km,omitempty"`
	NavigationURL    string   `json:"navigation_url"`
}

type nearestResponse struct {
	QueryID string             `json:"query_id"`
	Origin  model.GeoPoint     `json:"origin"`
	Results []nearestCandidate `json:"results"`
}

// NearestHandler handles nearest-facility requests.
type NearestHandler struct {
	deps Dependencies
}

// NewNearestHandler creates a new nearest handler.
func NewNearestHandler(deps Dependencies) *NearestHandler {
	return &NearestHandler{deps: deps}
}

// HandleNearest handles POST /nearest requests.
func (h *NearestHandler) HandleNearest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req nearestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	res, err := h.deps.Resolve(r.Context(), model.ProximityQuery{
		AddressText:          req.Address,
		Region:               req.Region,
		ResultCount:          req.Count,
		RefinementEnabled:    req.Refine,
		RefinementCredential: req.APIKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrLocationNotFound):
			writeError(w, http.StatusNotFound, "location_not_found", err)
		case errors.Is(err, engine.ErrNoCandidates):
			writeError(w, http.StatusNotFound, "no_candidates", err)
		case errors.Is(err, engine.ErrInvalidQuery):
			writeError(w, http.StatusBadRequest, "bad_request", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	results := make([]nearestCandidate, len(res.Candidates))
	for i, c := range res.Candidates {
		results[i] = nearestCandidate{
			Name:             c.Facility.Name,
			Level:            c.Facility.Level,
			Ownership:        c.Facility.Ownership,
			Ward:             c.Facility.Ward,
			LGA:              c.Facility.LGA,
			State:            c.Facility.State,
			Latitude:         c.Facility.Latitude,
			Longitude:        c.Facility.Longitude,
			StraightLineKm:   c.StraightLineKm,
			DriveTimeMinutes: c.DriveTimeMinutes,
			DriveDistanceKm:  c.DriveDistanceKm,
			NavigationURL:    c.NavigationURL(),
		}
	}
	writeJSON(w, http.StatusOK, nearestResponse{
		QueryID: res.QueryID,
		Origin:  res.Origin,
		Results: results,
	})
}
