package search

import (
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"
)

// DefaultRefreshInterval is how often displayed prices drift when live
// refresh is active.
const DefaultRefreshInterval = time.Minute

// Each tick multiplies prices by a factor in [0.98, 1.02).
const (
	priceDriftMin  = 0.98
	priceDriftSpan = 0.04
)

// Refresher simulates live market movement: while a flight collection is
// present it perturbs every price on a fixed interval, keeping ids and order
// intact. Its lifecycle is tied to the orchestrator's collection listener, so
// the timer stops as soon as the collection empties and never leaks across
// repeated activation.
type Refresher struct {
	orch     *Orchestrator
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	rng  *rand.Rand
	stop chan struct{}
}

func NewRefresher(orch *Orchestrator, interval time.Duration, rng *rand.Rand, logger *slog.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Refresher{
		orch:     orch,
		interval: interval,
		logger:   logger,
		rng:      rng,
	}
	orch.SetCollectionListener(r.Sync)
	return r
}

// Sync starts or stops the refresher to match whether flights are present.
func (r *Refresher) Sync(hasFlights bool) {
	if hasFlights {
		r.Start()
	} else {
		r.Stop()
	}
}

// Start begins the periodic refresh. Calling it while running is a no-op.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop != nil {
		return
	}
	r.stop = make(chan struct{})
	go r.run(r.stop)
}

// Stop tears the timer down. Safe to call when not running.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop == nil {
		return
	}
	close(r.stop)
	r.stop = nil
}

// Running reports whether the refresh loop is active.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

func (r *Refresher) run(stop chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick applies one round of price drift. The drift happens inside the
// orchestrator's commit lock, so a search landing mid-tick can never be
// overwritten with drifted copies of its predecessor. Exported for
// deterministic tests; the loop calls it on every interval.
func (r *Refresher) Tick() {
	n := r.orch.UpdatePrices(r.drift)
	if n > 0 {
		r.logger.Debug("refreshed prices", "flights", n)
	}
}

func (r *Refresher) drift(price int) int {
	r.mu.Lock()
	factor := priceDriftMin + r.rng.Float64()*priceDriftSpan
	r.mu.Unlock()
	return int(math.Floor(float64(price) * factor))
}
