package repository

import (
	"context"

	"tourtrack/internal/domain"
)

// LocationRepository defines the persistence operations for current positions.
type LocationRepository interface {
	// Upsert creates or replaces the record for rec.UserID in one atomic
	// operation and returns the stored row.
	Upsert(ctx context.Context, rec *domain.LocationRecord) (*domain.LocationRecord, error)

	// GetByUserID retrieves the current record for a user.
	// Returns nil if the user never reported a position.
	GetByUserID(ctx context.Context, userID int64) (*domain.LocationRecord, error)
}
