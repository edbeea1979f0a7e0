// Package session keeps one registry per client session. Sessions expire
// after a period of inactivity and their registries are discarded with them.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/internal/registry"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

const (
	DefaultTTL             = 30 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Session owns the registry of one client. Requests for the same session
// must hold the session lock while they touch the registry.
type Session struct {
	ID        string
	Hospital  *registry.Hospital
	CreatedAt time.Time

	mu sync.Mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	HospitalName    string
}

// Store is a go-cache backed session table with sliding expiry.
type Store struct {
	cache        *gocache.Cache
	hospitalName string
	metrics      *metrics.Metrics
}

func NewStore(cfg Config, m *metrics.Metrics) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	s := &Store{
		cache:        gocache.New(cfg.TTL, cfg.CleanupInterval),
		hospitalName: cfg.HospitalName,
		metrics:      m,
	}
	s.cache.OnEvicted(func(id string, _ interface{}) {
		s.metrics.ActiveSessions.Dec()
		log.Debug().Str("session_id", id).Msg("session discarded")
	})
	return s
}

// Acquire returns the live session for id, refreshing its expiry. Unknown,
// expired or malformed ids get a brand new session under a fresh id; the
// second return value reports whether that happened.
func (s *Store) Acquire(id string) (*Session, bool) {
	if sess, ok := s.Get(id); ok {
		s.cache.SetDefault(sess.ID, sess)
		return sess, false
	}

	// drop any expired entry the janitor has not swept yet
	if id != "" {
		s.cache.Delete(id)
	}

	sess := &Session{
		ID:        uuid.New().String(),
		Hospital:  registry.NewHospital(s.hospitalName),
		CreatedAt: time.Now(),
	}
	s.cache.SetDefault(sess.ID, sess)
	s.metrics.SessionsTotal.Inc()
	s.metrics.ActiveSessions.Inc()

	log.Debug().Str("session_id", sess.ID).Msg("session created")
	return sess, true
}

// Get looks up a live session without creating one.
func (s *Store) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	v, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	return v.(*Session), true
}

// End discards the session and its registry. Ending an unknown session is a no-op.
func (s *Store) End(id string) bool {
	if _, found := s.Get(id); !found {
		return false
	}
	s.cache.Delete(id)
	return true
}

// Count returns the number of stored sessions, including expired ones not
// yet swept.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
