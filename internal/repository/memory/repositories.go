package memory

import (
	"context"

	"tourtrack/internal/domain"
	"tourtrack/internal/repository"
)

// LocationRepository is an in-memory repository.LocationRepository.
type LocationRepository struct {
	s *Store
}

// Upsert creates or replaces the current position of rec.UserID.
func (r *LocationRepository) Upsert(ctx context.Context, rec *domain.LocationRecord) (*domain.LocationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[rec.UserID]; !ok {
		return nil, repository.ErrInvalidReference
	}
	if rec.TripID != nil {
		if _, ok := r.s.trips[*rec.TripID]; !ok {
			return nil, repository.ErrInvalidReference
		}
	}

	now := r.s.now()
	stored, ok := r.s.locations[rec.UserID]
	if !ok {
		r.s.nextLocationID++
		stored = &domain.LocationRecord{ID: r.s.nextLocationID, UserID: rec.UserID}
		r.s.locations[rec.UserID] = stored
	}

	stored.Latitude = rec.Latitude
	stored.Longitude = rec.Longitude
	stored.IsGuideRole = rec.IsGuideRole
	stored.TripID = copyID(rec.TripID)
	if now.After(stored.UpdatedAt) {
		stored.UpdatedAt = now
	}

	return copyLocation(stored), nil
}

// GetByUserID retrieves the current position of a user.
// Returns nil if the user has no record.
func (r *LocationRepository) GetByUserID(ctx context.Context, userID int64) (*domain.LocationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.locations[userID]
	if !ok {
		return nil, nil
	}
	return copyLocation(rec), nil
}

// TripRepository is an in-memory repository.TripRepository.
type TripRepository struct {
	s *Store
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[trip.TouristID]; !ok {
		return repository.ErrInvalidReference
	}
	if _, ok := r.s.users[trip.GuideID]; !ok {
		return repository.ErrInvalidReference
	}

	r.s.nextTripID++
	trip.ID = r.s.nextTripID
	trip.CreatedAt = r.s.now()

	stored := *trip
	r.s.trips[trip.ID] = &stored
	return nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	trip, ok := r.s.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *trip
	return &clone, nil
}

// UpdateStatus sets the trip status while its current status is one of from.
func (r *TripRepository) UpdateStatus(ctx context.Context, id int64, status domain.TripStatus, from []domain.TripStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	trip, ok := r.s.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, allowed := range from {
		if trip.Status == allowed {
			trip.Status = status
			return nil
		}
	}
	return repository.ErrPreconditionFailed
}

// ActiveTripRepository is an in-memory repository.ActiveTripRepository.
type ActiveTripRepository struct {
	s *Store
}

// ListActiveByGuide returns the guide's active trips, newest date first.
func (r *ActiveTripRepository) ListActiveByGuide(ctx context.Context, guideID int64) ([]*domain.ActiveTripRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*domain.ActiveTripRow, 0)
	for _, trip := range r.s.trips {
		if trip.GuideID != guideID || trip.Status != domain.TripStatusActive {
			continue
		}
		tourist, ok := r.s.users[trip.TouristID]
		if !ok {
			continue
		}

		row := &domain.ActiveTripRow{
			TripID:      trip.ID,
			TouristID:   trip.TouristID,
			TouristName: tourist.Name,
			TouristsNum: trip.TouristsNum,
			Date:        trip.Date,
		}
		if loc, ok := r.s.locations[trip.TouristID]; ok {
			lat, lng, ts := loc.Latitude, loc.Longitude, loc.UpdatedAt
			row.Latitude = &lat
			row.Longitude = &lng
			row.LocationUpdatedAt = &ts
		}
		rows = append(rows, row)
	}

	sortActiveRows(rows)
	return rows, nil
}

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	s *Store
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func copyLocation(rec *domain.LocationRecord) *domain.LocationRecord {
	c := *rec
	c.TripID = copyID(rec.TripID)
	return &c
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// Ensure the in-memory repositories implement the repository interfaces.
var (
	_ repository.LocationRepository   = (*LocationRepository)(nil)
	_ repository.TripRepository       = (*TripRepository)(nil)
	_ repository.ActiveTripRepository = (*ActiveTripRepository)(nil)
	_ repository.UserRepository       = (*UserRepository)(nil)
)
