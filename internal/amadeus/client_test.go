package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfare/skyfare/internal/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeToken(w http.ResponseWriter) {
	json.NewEncoder(w).Encode(map[string]any{
		"access_token": "test-token",
		"expires_in":   1799,
	})
}

func testClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:      baseURL,
		ClientID:     "id",
		ClientSecret: "secret",
		RetryDelays:  []time.Duration{time.Millisecond},
	})
}

func TestTokenIsCached(t *testing.T) {
	var tokenCalls int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/security/oauth2/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostFormValue("grant_type"))
		atomic.AddInt32(&tokenCalls, 1)
		writeToken(w)
	})

	c := testClient(srv.URL)

	first, err := c.Token(context.Background())
	require.NoError(t, err)
	second, err := c.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test-token", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestTokenMissingCredentials(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost:1"})

	_, err := c.Token(context.Background())

	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestSearchOffers(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/security/oauth2/token":
			writeToken(w)
		case "/v2/shopping/flight-offers":
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			q := r.URL.Query()
			assert.Equal(t, "JED", q.Get("originLocationCode"))
			assert.Equal(t, "RUH", q.Get("destinationLocationCode"))
			assert.Equal(t, "2024-01-20", q.Get("departureDate"))
			assert.Equal(t, "2", q.Get("adults"))
			assert.Equal(t, "SAR", q.Get("currencyCode"))
			assert.Equal(t, "20", q.Get("max"))
			assert.Equal(t, "ECONOMY", q.Get("travelClass"))
			assert.Empty(t, q.Get("returnDate"))
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{{"id": "offer-1"}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	c := testClient(srv.URL)

	offers, err := c.SearchOffers(context.Background(), models.SearchParams{
		Origin:        "JED",
		Destination:   "RUH",
		DepartureDate: "2024-01-20",
		Passengers:    2,
		Class:         "economy",
	})

	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "offer-1", offers[0].ID)
}

func TestSearchOffersRetriesOnServerError(t *testing.T) {
	var offerCalls int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			writeToken(w)
			return
		}
		if atomic.AddInt32(&offerCalls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"id": "offer-1"}}})
	})

	c := NewClient(Config{
		BaseURL:      srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		MaxRetries:   2,
		RetryDelays:  []time.Duration{time.Millisecond},
	})

	offers, err := c.SearchOffers(context.Background(), models.SearchParams{Passengers: 1})

	require.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&offerCalls))
}

func TestSearchOffersExhaustsRetries(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			writeToken(w)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := NewClient(Config{
		BaseURL:      srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		MaxRetries:   1,
		RetryDelays:  []time.Duration{time.Millisecond},
	})

	_, err := c.SearchOffers(context.Background(), models.SearchParams{Passengers: 1})

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestSearchOffersNoRetryOnMissingCredentials(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost:1", MaxRetries: 3})

	start := time.Now()
	_, err := c.SearchOffers(context.Background(), models.SearchParams{Passengers: 1})

	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestPriceMetrics(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			writeToken(w)
			return
		}
		require.Equal(t, "/v1/analytics/itinerary-price-metrics", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "JED", q.Get("originIataCode"))
		assert.Equal(t, "RUH", q.Get("destinationIataCode"))
		assert.Equal(t, "true", q.Get("oneWay"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"amount": "420.00"}},
		})
	})

	c := testClient(srv.URL)

	data, err := c.PriceMetrics(context.Background(), models.SearchParams{
		Origin:        "JED",
		Destination:   "RUH",
		DepartureDate: "2024-01-20",
	})

	require.NoError(t, err)
	assert.JSONEq(t, `[{"amount":"420.00"}]`, string(data))
}

func TestSearchLocations(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			writeToken(w)
			return
		}
		require.Equal(t, "/v1/reference-data/locations", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "AIRPORT", q.Get("subType"))
		assert.Equal(t, "muscat", q.Get("keyword"))
		assert.Equal(t, "10", q.Get("page[limit]"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{
				"iataCode": "MCT",
				"name":     "MUSCAT INTERNATIONAL",
				"address":  map[string]string{"cityName": "MUSCAT", "countryName": "OMAN"},
			}},
		})
	})

	c := testClient(srv.URL)

	locations, err := c.SearchLocations(context.Background(), "muscat", 10)

	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "MCT", locations[0].IataCode)
	assert.Equal(t, "MUSCAT", locations[0].Address.CityName)
}

func TestNormalizeTravelClass(t *testing.T) {
	tests := map[string]string{
		"economy":  "ECONOMY",
		"business": "BUSINESS",
		"first":    "FIRST",
		"premium":  "PREMIUM_ECONOMY",
		"":         "ECONOMY",
		"luxury":   "ECONOMY",
	}

	for in, want := range tests {
		assert.Equal(t, want, normalizeTravelClass(in), "input %q", in)
	}
}
