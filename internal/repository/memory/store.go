// Package memory keeps every repository in process memory. One mutex guards
// all tables, so each repository call is atomic the same way a single SQL
// statement is.
package memory

import (
	"sort"
	"sync"
	"time"

	"tourtrack/internal/domain"
)

// Store holds the users, trips and current positions.
type Store struct {
	mu        sync.RWMutex
	users     map[int64]*domain.User
	trips     map[int64]*domain.Trip
	locations map[int64]*domain.LocationRecord

	nextTripID     int64
	nextLocationID int64

	now func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[int64]*domain.User),
		trips:     make(map[int64]*domain.Trip),
		locations: make(map[int64]*domain.LocationRecord),
		now:       time.Now,
	}
}

// SetClock replaces the time source used for updated_at and created_at.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddUser registers an account, standing in for the identity service's table.
func (s *Store) AddUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[u.ID] = &u
}

// CountLocations returns the number of stored position records.
func (s *Store) CountLocations() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.locations)
}

// Locations returns the location repository view of the store.
func (s *Store) Locations() *LocationRepository {
	return &LocationRepository{s: s}
}

// Trips returns the trip repository view of the store.
func (s *Store) Trips() *TripRepository {
	return &TripRepository{s: s}
}

// ActiveTrips returns the active trip read view of the store.
func (s *Store) ActiveTrips() *ActiveTripRepository {
	return &ActiveTripRepository{s: s}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func sortActiveRows(rows []*domain.ActiveTripRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].TripID > rows[j].TripID
	})
}
