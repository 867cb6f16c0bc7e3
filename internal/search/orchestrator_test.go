package search

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfare/skyfare/internal/amadeus"
	"github.com/skyfare/skyfare/internal/models"
)

// fakeProvider serves canned offers or errors, optionally blocking until
// released so tests can interleave searches.
type fakeProvider struct {
	mu        sync.Mutex
	offers    []amadeus.Offer
	searchErr error
	metrics   json.RawMessage
	metricErr error
	block     chan struct{}
	calls     int
}

func (p *fakeProvider) SearchOffers(ctx context.Context, params models.SearchParams) ([]amadeus.Offer, error) {
	p.mu.Lock()
	p.calls++
	block := p.block
	offers := p.offers
	err := p.searchErr
	p.mu.Unlock()

	if block != nil {
		<-block
	}
	return offers, err
}

func (p *fakeProvider) PriceMetrics(ctx context.Context, params models.SearchParams) (json.RawMessage, error) {
	return p.metrics, p.metricErr
}

func liveOffer(id string) amadeus.Offer {
	return amadeus.Offer{
		ID:                    id,
		NumberOfBookableSeats: 5,
		Price:                 amadeus.Price{Total: "455.00", Currency: "SAR"},
		Itineraries: []amadeus.Itinerary{{
			Duration: "PT1H45M",
			Segments: []amadeus.Segment{{
				CarrierCode: "SV",
				Number:      "1024",
				Departure:   amadeus.Endpoint{IataCode: "JED", At: "2024-01-20T08:00:00"},
				Arrival:     amadeus.Endpoint{IataCode: "RUH", At: "2024-01-20T09:45:00"},
			}},
		}},
	}
}

func testParams() models.SearchParams {
	return models.SearchParams{
		Origin:        "JED",
		Destination:   "RUH",
		DepartureDate: "2024-01-20",
		Passengers:    1,
		TripType:      models.TripOneWay,
		Class:         "economy",
	}
}

func TestExecuteSearchSuccess(t *testing.T) {
	provider := &fakeProvider{
		offers:  []amadeus.Offer{liveOffer("offer-1"), liveOffer("offer-2")},
		metrics: json.RawMessage(`[{"amount":"420.00"}]`),
	}
	orch := NewOrchestrator(provider)

	result := orch.ExecuteSearch(context.Background(), testParams())

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.False(t, result.UsingFallback)
	assert.False(t, result.Superseded)

	snap := orch.Snapshot()
	assert.Equal(t, models.StatusSuccess, snap.Status)
	require.Len(t, snap.Flights, 2)
	assert.Equal(t, snap.Flights, snap.Filtered)
	assert.JSONEq(t, `[{"amount":"420.00"}]`, string(snap.Analytics))
}

func TestExecuteSearchFailureServesFallback(t *testing.T) {
	provider := &fakeProvider{searchErr: errors.New("connection refused")}
	orch := NewOrchestrator(provider, WithRand(rand.New(rand.NewSource(1))))

	result := orch.ExecuteSearch(context.Background(), testParams())

	assert.Equal(t, models.StatusError, result.Status)
	assert.True(t, result.UsingFallback)

	snap := orch.Snapshot()
	require.Len(t, snap.Flights, FallbackCount)
	for _, f := range snap.Flights {
		assert.Equal(t, "JED", f.Origin)
		assert.Equal(t, "RUH", f.Destination)
		assert.GreaterOrEqual(t, f.Price, 0)
		assert.NotEmpty(t, f.Airline)
	}
	assert.Nil(t, snap.Analytics)
}

func TestExecuteSearchEmptyResultServesFallback(t *testing.T) {
	provider := &fakeProvider{offers: nil}
	orch := NewOrchestrator(provider)

	result := orch.ExecuteSearch(context.Background(), testParams())

	// The provider answered; the cycle is a success, but the view still
	// needs renderable content.
	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.True(t, result.UsingFallback)
	assert.Len(t, orch.Flights(), FallbackCount)
}

func TestExecuteSearchAnalyticsFailureIsSwallowed(t *testing.T) {
	provider := &fakeProvider{
		offers:    []amadeus.Offer{liveOffer("offer-1")},
		metricErr: errors.New("quota exceeded"),
	}
	orch := NewOrchestrator(provider)

	result := orch.ExecuteSearch(context.Background(), testParams())

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Nil(t, orch.Snapshot().Analytics)
}

func TestExecuteSearchLastWriteWins(t *testing.T) {
	block := make(chan struct{})
	slow := &fakeProvider{
		offers: []amadeus.Offer{liveOffer("stale")},
		block:  block,
	}
	orch := NewOrchestrator(slow)

	done := make(chan Result)
	go func() {
		done <- orch.ExecuteSearch(context.Background(), testParams())
	}()

	// Wait until the first search is in flight, then let a second one
	// start and finish with different results.
	for {
		slow.mu.Lock()
		started := slow.calls == 1
		if started {
			slow.block = nil
			slow.offers = []amadeus.Offer{liveOffer("fresh")}
		}
		slow.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	fresh := testParams()
	fresh.Destination = "DXB"
	second := orch.ExecuteSearch(context.Background(), fresh)
	require.Equal(t, models.StatusSuccess, second.Status)

	close(block)
	first := <-done

	assert.True(t, first.Superseded)
	snap := orch.Snapshot()
	require.NotEmpty(t, snap.Flights)
	for _, f := range snap.Flights {
		assert.NotEqual(t, "stale", f.ID)
	}
}

func TestAdoptCached(t *testing.T) {
	orch := NewOrchestrator(&fakeProvider{})
	cached := []models.FlightOffer{
		{ID: "cached-1", Price: 400, Duration: "2h 00m"},
	}

	result := orch.AdoptCached(testParams(), cached)

	assert.Equal(t, models.StatusSuccess, result.Status)
	snap := orch.Snapshot()
	assert.Equal(t, cached, snap.Flights)
	assert.False(t, snap.UsingFallback)
}

func TestSetCriteriaRederivesFiltered(t *testing.T) {
	orch := NewOrchestrator(&fakeProvider{})
	orch.AdoptCached(testParams(), []models.FlightOffer{
		{ID: "a", Price: 300, Duration: "1h 30m", Stops: 0},
		{ID: "b", Price: 900, Duration: "2h 00m", Stops: 1},
	})

	criteria := models.DefaultCriteria()
	criteria.PriceRange = [2]int{0, 500}
	orch.SetCriteria(criteria)

	snap := orch.Snapshot()
	require.Len(t, snap.Filtered, 1)
	assert.Equal(t, "a", snap.Filtered[0].ID)
	// The raw collection is untouched.
	assert.Len(t, snap.Flights, 2)

	orch.ResetCriteria()
	assert.Len(t, orch.Snapshot().Filtered, 2)
}

func TestCriteriaPersistAcrossSearches(t *testing.T) {
	provider := &fakeProvider{offers: []amadeus.Offer{liveOffer("offer-1")}}
	orch := NewOrchestrator(provider)

	criteria := models.DefaultCriteria()
	criteria.Airlines = []string{"Flynas"}
	orch.SetCriteria(criteria)

	orch.ExecuteSearch(context.Background(), testParams())

	snap := orch.Snapshot()
	assert.Equal(t, []string{"Flynas"}, snap.Criteria.Airlines)
	// The Saudia offer does not pass the persisted airline filter.
	assert.Len(t, snap.Flights, 1)
	assert.Empty(t, snap.Filtered)
}

func TestSetCriteriaNormalizesInvertedRange(t *testing.T) {
	orch := NewOrchestrator(&fakeProvider{})

	criteria := models.DefaultCriteria()
	criteria.PriceRange = [2]int{900, 100}
	orch.SetCriteria(criteria)

	assert.Equal(t, [2]int{0, models.MaxPrice}, orch.Snapshot().Criteria.PriceRange)
}

func TestReplaceFlightsNotifiesListener(t *testing.T) {
	orch := NewOrchestrator(&fakeProvider{})

	var mu sync.Mutex
	var notifications []bool
	orch.SetCollectionListener(func(hasFlights bool) {
		mu.Lock()
		notifications = append(notifications, hasFlights)
		mu.Unlock()
	})

	orch.ReplaceFlights([]models.FlightOffer{{ID: "a"}})
	orch.ReplaceFlights(nil)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, notifications)
}

func TestSnapshotReturnsCopies(t *testing.T) {
	orch := NewOrchestrator(&fakeProvider{})
	orch.AdoptCached(testParams(), []models.FlightOffer{{ID: "a", Price: 100}})

	snap := orch.Snapshot()
	snap.Flights[0].Price = 999

	assert.Equal(t, 100, orch.Flights()[0].Price)
}
