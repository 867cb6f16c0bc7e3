package airports

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDebounce is the settle time before a suggestion lookup actually
// fires.
const DefaultDebounce = 300 * time.Millisecond

// LocationSearcher is the remote airport-lookup dependency.
type LocationSearcher interface {
	SearchAirports(ctx context.Context, keyword string, limit int) ([]Airport, error)
}

// Suggester serves airport suggestions with per-field debouncing: a new
// keystroke for the same field cancels the pending lookup and reschedules.
// Responses for superseded requests are discarded by sequence comparison, so
// a slow lookup can never overwrite a newer one.
type Suggester struct {
	remote LocationSearcher
	delay  time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	seq     map[string]uint64
	pending map[string]chan struct{}
}

func NewSuggester(remote LocationSearcher, delay time.Duration, logger *slog.Logger) *Suggester {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggester{
		remote:  remote,
		delay:   delay,
		logger:  logger,
		seq:     make(map[string]uint64),
		pending: make(map[string]chan struct{}),
	}
}

// Suggest blocks for the debounce window, then looks up keyword. It returns
// ok=false when a newer request for the same field superseded this one or the
// context was cancelled. Keywords shorter than two characters skip the lookup
// and return popular airports immediately.
func (s *Suggester) Suggest(ctx context.Context, field, keyword string) ([]Airport, bool) {
	if len(keyword) < 2 {
		return Popular(), true
	}

	my, cancel := s.register(field)

	select {
	case <-time.After(s.delay):
	case <-cancel:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}

	results := s.search(ctx, keyword)

	s.mu.Lock()
	latest := s.seq[field] == my
	if latest {
		delete(s.pending, field)
	}
	s.mu.Unlock()

	if !latest {
		return nil, false
	}
	return results, true
}

// register bumps the field's sequence and cancels any pending request for the
// same field before scheduling this one.
func (s *Suggester) register(field string) (uint64, chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq[field]++
	if prev, ok := s.pending[field]; ok {
		close(prev)
	}
	cancel := make(chan struct{})
	s.pending[field] = cancel
	return s.seq[field], cancel
}

// search merges remote results with the local catalog, falling back to the
// catalog alone when the lookup fails.
func (s *Suggester) search(ctx context.Context, keyword string) []Airport {
	if s.remote == nil {
		return SearchLocal(keyword)
	}

	remote, err := s.remote.SearchAirports(ctx, keyword, MaxSuggestions)
	if err != nil {
		s.logger.Warn("airport lookup failed, using local catalog",
			"keyword", keyword, "error", err)
		return SearchLocal(keyword)
	}

	return searchIn(Merge(remote), keyword)
}
