package repository

import (
	"context"

	"tourtrack/internal/domain"
)

// ActiveTripRepository reads the live join of active trips and tourist positions.
type ActiveTripRepository interface {
	// ListActiveByGuide returns the guide's active trips, newest date first.
	ListActiveByGuide(ctx context.Context, guideID int64) ([]*domain.ActiveTripRow, error)
}
