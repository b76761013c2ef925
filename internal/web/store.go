package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/guttosm/stockpulse/internal/logger"
	"github.com/guttosm/stockpulse/internal/tracker"
)

type view struct {
	sess     *tracker.Session
	lastSeen time.Time
}

// ViewStore keeps the Session of every open tracker page. Each page load
// creates a new view, so a reload always starts from a fresh state.
type ViewStore struct {
	src           tracker.SeriesSource
	defaultSymbol string
	ttl           time.Duration
	now           func() time.Time

	mu    sync.Mutex
	views map[string]*view
}

// NewViewStore builds an empty store. Views idle for longer than ttl are
// removed by Sweep.
func NewViewStore(src tracker.SeriesSource, defaultSymbol string, ttl time.Duration) *ViewStore {
	return &ViewStore{
		src:           src,
		defaultSymbol: defaultSymbol,
		ttl:           ttl,
		now:           time.Now,
		views:         make(map[string]*view),
	}
}

// Create opens a new Idle view and returns its id.
func (s *ViewStore) Create() (string, *tracker.Session) {
	id := uuid.NewString()
	sess := tracker.NewSession(s.src, s.defaultSymbol)

	s.mu.Lock()
	s.views[id] = &view{sess: sess, lastSeen: s.now()}
	s.mu.Unlock()
	return id, sess
}

// Get returns the session of id and marks it as seen.
func (s *ViewStore) Get(id string) (*tracker.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[id]
	if !ok {
		return nil, false
	}
	v.lastSeen = s.now()
	return v.sess, true
}

// Len reports the number of open views.
func (s *ViewStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Sweep removes views idle for longer than the ttl, cancelling their fetches.
// It returns how many were removed.
func (s *ViewStore) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*tracker.Session
	for id, v := range s.views {
		if v.lastSeen.Before(cutoff) {
			expired = append(expired, v.sess)
			delete(s.views, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
	}
	return len(expired)
}

// StartSweeper runs Sweep on the cron spec (e.g. "@every 1m") until the
// returned stop function is called. stop waits for a running sweep to finish.
func (s *ViewStore) StartSweeper(spec string) (stop func(), err error) {
	lg := logger.Component("views")
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if n := s.Sweep(); n > 0 {
			lg.Info().Int("expired", n).Int("open", s.Len()).Msg("views swept")
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule view sweep %q: %w", spec, err)
	}
	c.Start()
	return func() { <-c.Stop().Done() }, nil
}
