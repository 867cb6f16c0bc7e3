// Package search drives the search cycle: invoke the remote provider,
// normalize results, fetch best-effort price analytics, fall back to
// synthesized data on failure, and keep the three state slices (raw list,
// filter criteria, filtered list) coherent.
package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skyfare/skyfare/internal/amadeus"
	"github.com/skyfare/skyfare/internal/filter"
	"github.com/skyfare/skyfare/internal/models"
	"github.com/skyfare/skyfare/internal/normalize"
	"github.com/skyfare/skyfare/pkg/currency"
)

// Provider is the remote flight-offers dependency.
type Provider interface {
	SearchOffers(ctx context.Context, params models.SearchParams) ([]amadeus.Offer, error)
	PriceMetrics(ctx context.Context, params models.SearchParams) (json.RawMessage, error)
}

// Result reports the outcome of one search cycle.
type Result struct {
	SearchID      string
	Status        models.Status
	UsingFallback bool
	// Superseded is set when a newer search committed first; this cycle's
	// results were discarded (last-write-wins).
	Superseded bool
}

// Snapshot is a point-in-time copy of the view state.
type Snapshot struct {
	Status        models.Status
	UsingFallback bool
	Params        *models.SearchParams
	Flights       []models.FlightOffer
	Filtered      []models.FlightOffer
	Criteria      models.FilterCriteria
	Analytics     json.RawMessage
}

// Orchestrator owns the view state. All mutations replace whole values and
// the filtered list is rederived on every raw-list or criteria change, never
// patched in place.
type Orchestrator struct {
	provider Provider
	logger   *slog.Logger

	mu            sync.Mutex
	rng           *rand.Rand
	status        models.Status
	usingFallback bool
	params        *models.SearchParams
	flights       []models.FlightOffer
	filtered      []models.FlightOffer
	criteria      models.FilterCriteria
	analytics     json.RawMessage
	latest        string
	listener      func(hasFlights bool)
}

type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithRand injects the random source used for fallback prices, for
// deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(o *Orchestrator) { o.rng = rng }
}

func NewOrchestrator(provider Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		logger:   slog.Default(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		status:   models.StatusReady,
		criteria: models.DefaultCriteria(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SetCollectionListener registers the hook invoked after every commit with
// whether a flight collection is present. The price refresher ties its
// lifecycle to this.
func (o *Orchestrator) SetCollectionListener(fn func(hasFlights bool)) {
	o.mu.Lock()
	o.listener = fn
	o.mu.Unlock()
}

// ExecuteSearch runs one full search cycle for params. A newer call
// supersedes an in-flight one: only the most recently started search may
// commit its results.
func (o *Orchestrator) ExecuteSearch(ctx context.Context, params models.SearchParams) Result {
	searchID := uuid.NewString()

	o.mu.Lock()
	o.status = models.StatusLoading
	snapshot := params
	o.params = &snapshot
	o.latest = searchID
	o.mu.Unlock()

	offers, searchErr := o.provider.SearchOffers(ctx, params)

	// Analytics is best-effort: its failure maps to an empty series and
	// never surfaces through the search's own error channel.
	var analytics json.RawMessage
	if searchErr == nil {
		series, err := o.provider.PriceMetrics(ctx, params)
		if err != nil {
			o.logger.Warn("price analytics unavailable", "error", err)
		} else {
			analytics = series
		}
	}

	o.mu.Lock()
	if o.latest != searchID {
		status := o.status
		o.mu.Unlock()
		return Result{SearchID: searchID, Status: status, Superseded: true}
	}

	result := Result{SearchID: searchID, Status: models.StatusSuccess}
	switch {
	case searchErr != nil:
		o.logger.Error("flight search failed, serving fallback data", "error", searchErr)
		o.flights = GenerateFallback(params, o.rng)
		o.analytics = nil
		result.Status = models.StatusError
		result.UsingFallback = true
	default:
		flights := normalize.Offers(offers, params)
		if len(flights) == 0 {
			// The provider answered but had nothing for this route; the
			// view must still have renderable content.
			flights = GenerateFallback(params, o.rng)
			result.UsingFallback = true
		}
		o.flights = flights
		o.analytics = analytics
	}

	o.status = result.Status
	o.usingFallback = result.UsingFallback
	o.rederive()
	listener, hasFlights := o.listener, len(o.flights) > 0
	o.mu.Unlock()

	if listener != nil {
		listener(hasFlights)
	}
	return result
}

// AdoptCached commits a previously cached raw collection for params without
// touching the network, as if a search had just succeeded.
func (o *Orchestrator) AdoptCached(params models.SearchParams, flights []models.FlightOffer) Result {
	searchID := uuid.NewString()

	o.mu.Lock()
	snapshot := params
	o.params = &snapshot
	o.latest = searchID
	o.flights = flights
	o.analytics = nil
	o.status = models.StatusSuccess
	o.usingFallback = false
	o.rederive()
	listener, hasFlights := o.listener, len(o.flights) > 0
	o.mu.Unlock()

	if listener != nil {
		listener(hasFlights)
	}
	return Result{SearchID: searchID, Status: models.StatusSuccess}
}

// SetCriteria replaces the filter criteria and rederives the filtered list.
// Criteria persist across searches until reset or edited.
func (o *Orchestrator) SetCriteria(criteria models.FilterCriteria) {
	criteria.Normalize()

	o.mu.Lock()
	o.criteria = criteria
	o.rederive()
	o.mu.Unlock()
}

// ResetCriteria restores the defaults.
func (o *Orchestrator) ResetCriteria() {
	o.SetCriteria(models.DefaultCriteria())
}

// UpdatePrices applies fn to every flight's price inside the same critical
// section searches commit under, so a price refresh can never overwrite a
// collection that committed after the refresh read it. Returns the collection
// size. Ids, order and status are untouched.
func (o *Orchestrator) UpdatePrices(fn func(price int) int) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := range o.flights {
		price := fn(o.flights[i].Price)
		o.flights[i].Price = price
		o.flights[i].PriceFormatted = currency.FormatSAR(float64(price))
	}
	o.rederive()
	return len(o.flights)
}

// ReplaceFlights swaps in a new raw collection wholesale, keeping status
// unchanged.
func (o *Orchestrator) ReplaceFlights(flights []models.FlightOffer) {
	o.mu.Lock()
	o.flights = flights
	o.rederive()
	listener, hasFlights := o.listener, len(o.flights) > 0
	o.mu.Unlock()

	if listener != nil {
		listener(hasFlights)
	}
}

// Flights returns a copy of the raw collection.
func (o *Orchestrator) Flights() []models.FlightOffer {
	o.mu.Lock()
	defer o.mu.Unlock()
	return copyFlights(o.flights)
}

// Snapshot returns a copy of the whole view state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{
		Status:        o.status,
		UsingFallback: o.usingFallback,
		Params:        o.params,
		Flights:       copyFlights(o.flights),
		Filtered:      copyFlights(o.filtered),
		Criteria:      o.criteria,
		Analytics:     o.analytics,
	}
}

// rederive recomputes the filtered list from the raw list and criteria.
// Callers hold o.mu.
func (o *Orchestrator) rederive() {
	o.filtered = filter.Apply(o.flights, o.criteria)
}

func copyFlights(flights []models.FlightOffer) []models.FlightOffer {
	out := make([]models.FlightOffer, len(flights))
	copy(out, flights)
	return out
}
