// Package memstore keeps meeting records in memory for the life of the
// process. Records are append only and ordered by insertion.
package memstore

import (
	"sync"

	"github.com/ujjwalpandey922/meeting-schedular/pkg/models"
)

type Store struct {
	mu       sync.Mutex
	meetings []models.Meeting
}

func New() *Store {
	return &Store{}
}

// Append inserts the meeting at the end of the collection. It always
// succeeds, validation is the caller's responsibility.
func (s *Store) Append(meeting models.Meeting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meetings = append(s.meetings, meeting)
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []models.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Meeting, len(s.meetings))
	copy(result, s.meetings)
	return result
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.meetings)
}

// SessionStores holds one Store per owner so every session sees only its own
// meetings.
type SessionStores struct {
	mu      sync.Mutex
	byOwner map[string]*Store
}

func NewSessionStores() *SessionStores {
	return &SessionStores{
		byOwner: make(map[string]*Store),
	}
}

// For returns the owner's store, creating it on first use.
func (s *SessionStores) For(owner string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, ok := s.byOwner[owner]
	if !ok {
		store = New()
		s.byOwner[owner] = store
	}
	return store
}

func (s *SessionStores) Owners() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	owners := make([]string, 0, len(s.byOwner))
	for owner := range s.byOwner {
		owners = append(owners, owner)
	}
	return owners
}
