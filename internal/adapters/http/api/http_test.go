package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/naijacare/proximity/internal/adapters/http/api"
	engine "github.com/naijacare/proximity/internal/app"
	"github.com/naijacare/proximity/internal/domain/model"
	"github.com/naijacare/proximity/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// fakeEngine implements api.Dependencies and api.StatsProvider.
type fakeEngine struct {
	resolution model.Resolution
	err        error
	lastQuery  model.ProximityQuery
}

func (f *fakeEngine) Resolve(_ context.Context, q model.ProximityQuery) (model.Resolution, error) {
	f.lastQuery = q
	if f.err != nil {
		return model.Resolution{}, f.err
	}
	return f.resolution, nil
}

func (f *fakeEngine) Regions(context.Context) []string {
	return []string{"Lagos", "Oyo"}
}

func (f *fakeEngine) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "facilities": 3}
}

func newTestServer(eng *fakeEngine) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(eng, eng).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func f64(v float64) *float64 { return &v }

func TestHandleNearest(t *testing.T) {
	Convey("Given an engine with a ranked resolution", t, func() {
		eng := &fakeEngine{
			resolution: model.Resolution{
				QueryID: "q-1",
				Origin:  model.GeoPoint{Latitude: 7.39, Longitude: 3.89},
				Candidates: []model.RankedCandidate{
					{
						Facility:         model.Facility{Name: "A", State: "Oyo", Latitude: 7.40, Longitude: 3.90},
						StraightLineKm:   1.6,
						DriveTimeMinutes: f64(12),
						DriveDistanceKm:  f64(6),
					},
					{
						Facility:       model.Facility{Name: "B", State: "Oyo", Latitude: 7.38, Longitude: 3.85},
						StraightLineKm: 4.5,
					},
				},
			},
		}
		srv := newTestServer(eng)
		defer srv.Close()

		Convey("When posting a valid nearest query", func() {
			resp, err := http.Post(srv.URL+"/nearest", "application/json",
				strings.NewReader(`{"address":"Bodija Market","region":"Oyo","count":2,"refine":true,"api_key":"k"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the engine receives the query verbatim", func() {
				So(eng.lastQuery.AddressText, ShouldEqual, "Bodija Market")
				So(eng.lastQuery.Region, ShouldEqual, "Oyo")
				So(eng.lastQuery.ResultCount, ShouldEqual, 2)
				So(eng.lastQuery.RefinementEnabled, ShouldBeTrue)
				So(eng.lastQuery.RefinementCredential, ShouldEqual, "k")
			})

			Convey("And the response mirrors the resolution", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var body struct {
					QueryID string         `json:"query_id"`
					Origin  model.GeoPoint `json:"origin"`
					Results []struct {
						Name             string   `json:"name"`
						StraightLineKm   float64  `json:"straight_line_km"`
						DriveTimeMinutes *float64 `json:"drive_time_minutes"`
						NavigationURL    string   `json:"navigation_url"`
					} `json:"results"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.QueryID, ShouldEqual, "q-1")
				So(body.Results, ShouldHaveLength, 2)
				So(body.Results[0].Name, ShouldEqual, "A")
				So(*body.Results[0].DriveTimeMinutes, ShouldAlmostEqual, 12.0)
				So(body.Results[1].DriveTimeMinutes, ShouldBeNil)
				So(body.Results[0].NavigationURL, ShouldContainSubstring, "google.com/maps/dir")
			})
		})

		Convey("When posting a body with no address", func() {
			resp, err := http.Post(srv.URL+"/nearest", "application/json",
				strings.NewReader(`{"region":"Oyo"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it is rejected with 400", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting malformed JSON", func() {
			resp, err := http.Post(srv.URL+"/nearest", "application/json",
				strings.NewReader(`{not json`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using GET instead of POST", func() {
			resp, err := http.Get(srv.URL + "/nearest")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given engine failures", t, func() {
		cases := []struct {
			err  error
			code int
			tag  string
		}{
			{engine.ErrLocationNotFound, http.StatusNotFound, "location_not_found"},
			{engine.ErrNoCandidates, http.StatusNotFound, "no_candidates"},
			{engine.ErrInvalidQuery, http.StatusBadRequest, "bad_request"},
		}

		for _, c := range cases {
			eng := &fakeEngine{err: c.err}
			srv := newTestServer(eng)

			Convey("When the engine fails with "+c.err.Error(), func() {
				resp, err := http.Post(srv.URL+"/nearest", "application/json",
					strings.NewReader(`{"address":"somewhere","region":"Oyo"}`))
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				defer srv.Close()

				Convey("Then the status and code reflect the failure", func() {
					So(resp.StatusCode, ShouldEqual, c.code)

					var body struct {
						Code string `json:"code"`
					}
					So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
					So(body.Code, ShouldEqual, c.tag)
				})
			})
		}
	})
}

func TestHandleRegions(t *testing.T) {
	Convey("Given a registered server", t, func() {
		srv := newTestServer(&fakeEngine{})
		defer srv.Close()

		Convey("When fetching regions", func() {
			resp, err := http.Get(srv.URL + "/regions")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the region list comes back sorted", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var body struct {
					Regions []string `json:"regions"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.Regions, ShouldResemble, []string{"Lagos", "Oyo"})
			})
		})
	})
}

func TestHandleStats(t *testing.T) {
	Convey("Given a registered server", t, func() {
		srv := newTestServer(&fakeEngine{})
		defer srv.Close()

		Convey("When fetching stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the stats map is returned as JSON", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body["started"], ShouldEqual, true)
			})
		})
	})
}
