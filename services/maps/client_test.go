package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voyago/models"
)

const directionsBody = `{
	"status": "OK",
	"routes": [{
		"overview_polyline": {"points": "abc123"},
		"legs": [
			{"distance": {"value": 120000}, "duration": {"value": 9000}},
			{"distance": {"value": 30000}, "duration": {"value": 1800}}
		]
	}]
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultClientConfig("test-key")
	cfg.BaseURL = server.URL
	cfg.InitialInterval = time.Millisecond
	cfg.MaxInterval = 5 * time.Millisecond
	return NewClient(cfg, zap.NewNop()), server
}

func TestDirectionsSumsLegs(t *testing.T) {
	var gotQuery atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Write([]byte(directionsBody))
	}))

	estimate, err := client.Directions(context.Background(),
		models.GeoPoint{Lat: 6.9271, Lng: 79.8612},
		models.GeoPoint{Lat: 6.0329, Lng: 80.2168})
	require.NoError(t, err)

	assert.InDelta(t, 150, estimate.DistanceKm, 1e-9)
	assert.InDelta(t, 3, estimate.DurationHours, 1e-9)
	assert.Equal(t, "abc123", estimate.Polyline)

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "test-key", query.Get("key"), "API key is appended by the client")
	assert.Equal(t, "lk", query.Get("region"))
	assert.NotEmpty(t, query.Get("origin"))
	assert.NotEmpty(t, query.Get("destination"))
}

func TestDirectionsNoRoute(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	}))

	_, err := client.Directions(context.Background(), models.GeoPoint{}, models.GeoPoint{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZERO_RESULTS")
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(directionsBody))
	}))

	estimate, err := client.Directions(context.Background(), models.GeoPoint{}, models.GeoPoint{})
	require.NoError(t, err)
	assert.InDelta(t, 150, estimate.DistanceKm, 1e-9)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.Directions(context.Background(), models.GeoPoint{}, models.GeoPoint{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx responses must not be retried")
}

func TestGetJSONGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Directions(context.Background(), models.GeoPoint{}, models.GeoPoint{})
	require.Error(t, err)
	// initial attempt plus MaxRetries retries
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestSearchPlacesAcceptsZeroResults(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))

	places, err := client.SearchPlaces(context.Background(), "nowhere in particular")
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestGeocodeReturnsFirstMatch(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Galle Fort, Galle, Sri Lanka",
				"geometry": {"location": {"lat": 6.0257, "lng": 80.2168}}
			}]
		}`))
	}))

	point, err := client.Geocode(context.Background(), "Galle Fort")
	require.NoError(t, err)
	assert.InDelta(t, 6.0257, point.Lat, 1e-9)
	assert.InDelta(t, 80.2168, point.Lng, 1e-9)
}
