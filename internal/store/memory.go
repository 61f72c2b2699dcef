package store

import (
	"context"
	"sync"
	"time"

	"forgeauth/internal/domain"
	"forgeauth/internal/metrics"
)

// MemorySessionStore holds session records for the life of the process.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.PublicIdentity]domain.SessionRecord

	now     func() time.Time
	metrics *metrics.SessionMetrics
}

// MemoryOption configures a MemorySessionStore.
type MemoryOption func(*MemorySessionStore)

// WithMemoryClock replaces time.Now for sweeps.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemorySessionStore) { s.now = now }
}

// WithMemoryMetrics reports the store size.
func WithMemoryMetrics(m *metrics.SessionMetrics) MemoryOption {
	return func(s *MemorySessionStore) { s.metrics = m }
}

// NewMemorySessionStore returns an empty store.
func NewMemorySessionStore(opts ...MemoryOption) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[domain.PublicIdentity]domain.SessionRecord),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores rec, replacing any record for the same identity.
func (s *MemorySessionStore) Put(_ context.Context, rec domain.SessionRecord) error {
	s.mu.Lock()
	s.sessions[rec.Identity] = rec
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetStoredSessions(n)
	return nil
}

// Get returns the record for identity, expired or not.
func (s *MemorySessionStore) Get(_ context.Context, identity domain.PublicIdentity) (domain.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[identity]
	if !ok {
		return domain.SessionRecord{}, domain.ErrNotFound
	}
	return rec, nil
}

// Delete removes the record for identity. Deleting a missing record is not
// an error.
func (s *MemorySessionStore) Delete(_ context.Context, identity domain.PublicIdentity) error {
	s.mu.Lock()
	delete(s.sessions, identity)
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetStoredSessions(n)
	return nil
}

// Len returns the number of stored records.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts records that expired before now and returns how many were
// removed. It does not change what Get returns for live records.
func (s *MemorySessionStore) Sweep(now time.Time) int {
	s.mu.Lock()
	removed := 0
	for id, rec := range s.sessions {
		if !rec.IsValid(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetStoredSessions(n)
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (s *MemorySessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}

// Compile-time assertion that MemorySessionStore implements domain.SessionStore.
var _ domain.SessionStore = (*MemorySessionStore)(nil)
