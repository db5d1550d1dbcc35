// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// regionsResponse lists the regions clients can scope a query to.
type regionsResponse struct {
	Regions []string `json:"regions"`
}

// RegionsHandler handles region listing requests.
type RegionsHandler struct {
	deps Dependencies
}

// NewRegionsHandler creates a new regions handler.
func NewRegionsHandler(deps Dependencies) *RegionsHandler {
	return &RegionsHandler{deps: deps}
}

// HandleRegions handles GET /regions requests.
func (h *RegionsHandler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, regionsResponse{Regions: h.deps.Regions(r.Context())})
}
