package tracker

import (
	"context"
	"sync"

	"github.com/guttosm/stockpulse/internal/domain/models"
)

// SeriesSource fetches and transforms the chart of one symbol.
type SeriesSource interface {
	Series(ctx context.Context, symbol string) (models.Series, error)
}

// Snapshot is a consistent read of a Session.
type Snapshot struct {
	Symbol string
	State  State
}

// Session holds the state of one tracker page: the typed symbol and the
// view state. It is safe for concurrent use.
//
// Every Submit is tagged with a generation number. Starting a new Submit
// cancels the one in flight, and an outcome is applied only while its
// generation is still the newest, so a late response never overwrites a
// later one.
type Session struct {
	src SeriesSource

	mu     sync.Mutex
	symbol string
	state  State
	gen    uint64
	cancel context.CancelFunc
}

// NewSession returns an Idle session with the given starting symbol.
func NewSession(src SeriesSource, symbol string) *Session {
	return &Session{
		src:    src,
		symbol: models.NormalizeSymbol(symbol),
		state:  Idle{},
	}
}

// SetSymbol replaces the stored symbol with the upper-cased input and returns it.
func (s *Session) SetSymbol(input string) string {
	sym := models.NormalizeSymbol(input)
	s.mu.Lock()
	s.symbol = sym
	s.mu.Unlock()
	return sym
}

// Snapshot returns the current symbol and state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Symbol: s.symbol, State: s.state}
}

// Submit fetches the current symbol and applies the outcome. It returns the
// session snapshot after the outcome was applied or discarded.
func (s *Session) Submit(ctx context.Context) Snapshot {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	sym := s.symbol
	if s.cancel != nil {
		s.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	series, err := s.src.Series(fctx, sym)

	s.mu.Lock()
	defer s.mu.Unlock()
	cancel()
	if gen != s.gen {
		return Snapshot{Symbol: s.symbol, State: s.state}
	}
	s.cancel = nil
	s.state = Next(s.state, Outcome{Symbol: sym, Series: series, Err: err})
	return Snapshot{Symbol: s.symbol, State: s.state}
}

// Close cancels any fetch in flight.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}
