package server

import (
	"sync/atomic"
	"time"

	"git.home.luguber.info/inful/docsidebar/internal/sidebar"
)

// Snapshot is one generated sidebar and when it was produced.
type Snapshot struct {
	Map         sidebar.Map
	GeneratedAt time.Time
}

// Store holds the latest Snapshot. Readers never see a partially written map.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns an empty Store.
func NewStore() *Store { return &Store{} }

// Set publishes m as the current sidebar.
func (s *Store) Set(m sidebar.Map, at time.Time) {
	s.current.Store(&Snapshot{Map: m, GeneratedAt: at})
}

// Get returns the current snapshot, if one was published.
func (s *Store) Get() (Snapshot, bool) {
	snap := s.current.Load()
	if snap == nil {
		return Snapshot{}, false
	}
	return *snap, true
}
