package service

import (
	"context"

	"tourtrack/internal/domain"
	"tourtrack/internal/repository"
)

// ActiveTripService serves the live view a guide sees for trips in progress.
// It owns no state.
type ActiveTripService struct {
	activeTripRepo  repository.ActiveTripRepository
	locationService *LocationService
}

// NewActiveTripService creates a new ActiveTripService.
func NewActiveTripService(activeTripRepo repository.ActiveTripRepository, locationService *LocationService) *ActiveTripService {
	return &ActiveTripService{
		activeTripRepo:  activeTripRepo,
		locationService: locationService,
	}
}

// ListActiveTrips returns the caller's own active trips joined with each
// tourist's latest position, newest trip date first.
func (s *ActiveTripService) ListActiveTrips(ctx context.Context, caller *domain.Identity, guideID int64) ([]*domain.ActiveTripRow, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}

	if guideID <= 0 {
		return nil, ErrInvalidUserID
	}

	if caller.ID != guideID {
		return nil, ErrForbidden
	}

	rows, err := s.activeTripRepo.ListActiveByGuide(ctx, guideID)
	if err != nil {
		return nil, storageError("list active trips", err)
	}
	return rows, nil
}

// GetTouristLocation returns one tourist's current position for a guide.
// Returns nil if the tourist never reported one.
func (s *ActiveTripService) GetTouristLocation(ctx context.Context, caller *domain.Identity, touristID int64) (*domain.LocationRecord, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}

	if !caller.IsGuide() && caller.ID != touristID {
		return nil, ErrForbidden
	}

	return s.locationService.GetLocation(ctx, caller, touristID)
}
