package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/naijacare/proximity/internal/adapters/geocode"
	"github.com/naijacare/proximity/pkg/logger"
	"github.com/naijacare/proximity/pkg/metrics"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func latencySamples(name string) uint64 {
	families, err := metrics.GetRegistry().Gather()
	So(err, ShouldBeNil)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func TestClientResolve(t *testing.T) {
	ctx := context.Background()

	Convey("Given a provider that matches the address", t, func() {
		var gotQuery, gotAgent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			gotAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"lat":"7.3964","lon":"3.9167","display_name":"Bodija Market, Ibadan"}]`))
		}))
		defer srv.Close()

		client := geocode.NewClient(
			geocode.WithBaseURL(srv.URL),
			geocode.WithUserAgent("proximity-test/1.0"),
		)

		Convey("When resolving an address with a region hint", func() {
			p, err := client.Resolve(ctx, "Bodija Market, Ibadan", "Oyo")

			Convey("Then the coordinate is parsed from the first match", func() {
				So(err, ShouldBeNil)
				So(p.Latitude, ShouldAlmostEqual, 7.3964, 0.0001)
				So(p.Longitude, ShouldAlmostEqual, 3.9167, 0.0001)
			})

			Convey("And the query carries the region and country qualifiers", func() {
				So(gotQuery, ShouldEqual, "Bodija Market, Ibadan, Oyo, Nigeria")
				So(gotAgent, ShouldEqual, "proximity-test/1.0")
			})
		})
	})

	Convey("Given a provider that matches nothing", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		client := geocode.NewClient(geocode.WithBaseURL(srv.URL))

		Convey("When resolving a nonsense address", func() {
			_, err := client.Resolve(ctx, "Xyzabc123", "Oyo")

			Convey("Then it fails with ErrNoMatch", func() {
				So(err, ShouldWrap, geocode.ErrNoMatch)
			})
		})
	})

	Convey("Given a provider returning a server error", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := geocode.NewClient(geocode.WithBaseURL(srv.URL))

		Convey("When resolving", func() {
			before := latencySamples("naijacare_proximity_geocode_latency_milliseconds")
			_, err := client.Resolve(ctx, "Bodija Market", "Oyo")

			Convey("Then it fails with ErrProvider", func() {
				So(err, ShouldWrap, geocode.ErrProvider)
			})

			Convey("And the latency histogram observes the failed call", func() {
				So(latencySamples("naijacare_proximity_geocode_latency_milliseconds"), ShouldEqual, before+1)
			})
		})
	})

	Convey("Given a provider returning malformed coordinates", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"3.9"}]`))
		}))
		defer srv.Close()

		client := geocode.NewClient(geocode.WithBaseURL(srv.URL))

		Convey("When resolving", func() {
			_, err := client.Resolve(ctx, "Bodija Market", "Oyo")

			Convey("Then it fails with ErrProvider", func() {
				So(err, ShouldWrap, geocode.ErrProvider)
			})
		})
	})

	Convey("Given an unreachable provider", t, func() {
		client := geocode.NewClient(geocode.WithBaseURL("http://127.0.0.1:1"))

		Convey("When resolving", func() {
			_, err := client.Resolve(ctx, "Bodija Market", "Oyo")

			Convey("Then it fails with ErrProvider", func() {
				So(err, ShouldWrap, geocode.ErrProvider)
			})
		})
	})
}
