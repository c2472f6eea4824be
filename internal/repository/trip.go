package repository

import (
	"context"

	"tourtrack/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip and assigns trip.ID and trip.CreatedAt.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)

	// UpdateStatus sets the status of a trip only while its current status is
	// one of from. Returns ErrNotFound if the trip does not exist and
	// ErrPreconditionFailed if it exists in another status.
	UpdateStatus(ctx context.Context, id int64, status domain.TripStatus, from []domain.TripStatus) error
}
