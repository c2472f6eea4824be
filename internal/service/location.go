package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"tourtrack/internal/domain"
	"tourtrack/internal/metrics"
	"tourtrack/internal/repository"
)

// LocationService keeps one current position per user.
type LocationService struct {
	locationRepo repository.LocationRepository
	tripRepo     repository.TripRepository
	log          logrus.FieldLogger
}

// NewLocationService creates a new LocationService. tripRepo is used to check
// the trip an update is tied to.
func NewLocationService(
	locationRepo repository.LocationRepository,
	tripRepo repository.TripRepository,
	log logrus.FieldLogger,
) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
		tripRepo:     tripRepo,
		log:          log,
	}
}

// UpdateLocationRequest contains the parameters for reporting a position.
// The record written is always the caller's own.
type UpdateLocationRequest struct {
	Caller      *domain.Identity
	Latitude    *float64
	Longitude   *float64
	IsTourGuide *bool  // Defaults to the caller's role when nil
	TripID      *int64 // Optional active trip of the caller the update belongs to
}

// UpdateLocation validates the position and upserts the caller's record.
func (s *LocationService) UpdateLocation(ctx context.Context, req UpdateLocationRequest) (*domain.LocationRecord, error) {
	if req.Caller == nil {
		return nil, ErrNotAuthenticated
	}

	if req.Caller.ID <= 0 {
		return nil, ErrInvalidUserID
	}

	if req.Latitude == nil || req.Longitude == nil {
		metrics.LocationUpdatesTotal.WithLabelValues("rejected").Inc()
		return nil, ErrMissingCoordinates
	}

	if !domain.ValidLatitude(*req.Latitude) || !domain.ValidLongitude(*req.Longitude) {
		metrics.LocationUpdatesTotal.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidLocation
	}

	if req.TripID != nil && *req.TripID <= 0 {
		metrics.LocationUpdatesTotal.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidTripID
	}

	if req.TripID != nil {
		if err := s.checkTrip(ctx, req.Caller, *req.TripID); err != nil {
			metrics.LocationUpdatesTotal.WithLabelValues("rejected").Inc()
			return nil, err
		}
	}

	isGuide := req.Caller.IsGuide()
	if req.IsTourGuide != nil {
		isGuide = *req.IsTourGuide
	}

	rec, err := s.locationRepo.Upsert(ctx, &domain.LocationRecord{
		UserID:      req.Caller.ID,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		IsGuideRole: isGuide,
		TripID:      req.TripID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			metrics.LocationUpdatesTotal.WithLabelValues("rejected").Inc()
			// Without a trip the only reference left is the caller's account.
			if req.TripID == nil {
				return nil, ErrInvalidUserID
			}
			return nil, ErrUnknownTrip
		}
		metrics.LocationUpdatesTotal.WithLabelValues("failed").Inc()
		s.log.WithError(err).WithField("user_id", req.Caller.ID).Warn("location upsert failed")
		return nil, storageError("upsert location", err)
	}

	metrics.LocationUpdatesTotal.WithLabelValues("stored").Inc()
	s.log.WithFields(logrus.Fields{
		"user_id":    rec.UserID,
		"updated_at": rec.UpdatedAt,
	}).Debug("location stored")

	return rec, nil
}

// checkTrip verifies that tripID is an active trip the caller takes part in.
func (s *LocationService) checkTrip(ctx context.Context, caller *domain.Identity, tripID int64) error {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownTrip
		}
		return storageError("get trip", err)
	}

	if !trip.HasParticipant(caller.ID) {
		return ErrForbidden
	}

	if trip.Status != domain.TripStatusActive {
		return ErrTripNotActive
	}
	return nil
}

// GetLocation returns the current position of userID.
// Returns nil if the user never reported one.
func (s *LocationService) GetLocation(ctx context.Context, caller *domain.Identity, userID int64) (*domain.LocationRecord, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}

	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	rec, err := s.locationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storageError("get location", err)
	}
	return rec, nil
}
