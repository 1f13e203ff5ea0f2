package Cache

import (
	"sync"
	"time"

	"Vigil/Reports"
)

// Entry is one account's cached dashboard view.
type Entry struct {
	Report      Reports.DailyReport
	RefreshedAt time.Time
}

// Store holds eventually-stale dashboard snapshots keyed by account id,
// owners and branches alike. Readers tolerate a brief staleness window;
// writers invalidate after every evidence or zone mutation and the cron
// refresher rebuilds on a fixed interval.
type Store struct {
	mu      sync.RWMutex
	entries map[uint]Entry
}

func NewStore() *Store {
	return &Store{entries: make(map[uint]Entry)}
}

// Views is the process-wide dashboard cache.
var Views = NewStore()

func (s *Store) Get(accountID uint) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[accountID]
	return entry, ok
}

func (s *Store) Set(accountID uint, report Reports.DailyReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[accountID] = Entry{Report: report, RefreshedAt: time.Now().UTC()}
}

// Invalidate marks an account's view stale by dropping it; the next read
// falls through to a fresh build.
func (s *Store) Invalidate(accountID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, accountID)
}

// Fresh reports whether a cached entry is younger than maxAge.
func (s *Store) Fresh(accountID uint, maxAge time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[accountID]
	return ok && time.Since(entry.RefreshedAt) < maxAge
}

// Accounts lists the accounts with cached views, for the periodic refresher.
func (s *Store) Accounts() []uint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]uint, 0, len(s.entries))
	for id := range s.entries {
		accounts = append(accounts, id)
	}
	return accounts
}
