package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"tourtrack/internal/domain"
	"tourtrack/internal/metrics"
	"tourtrack/internal/repository"
)

// TripService handles trip creation and status changes.
type TripService struct {
	tripRepo          repository.TripRepository
	userRepo          repository.UserRepository
	strictTransitions bool
	log               logrus.FieldLogger
}

// NewTripService creates a new TripService. With strictTransitions off any
// defined status may overwrite any other.
func NewTripService(
	tripRepo repository.TripRepository,
	userRepo repository.UserRepository,
	strictTransitions bool,
	log logrus.FieldLogger,
) *TripService {
	return &TripService{
		tripRepo:          tripRepo,
		userRepo:          userRepo,
		strictTransitions: strictTransitions,
		log:               log,
	}
}

// CreateTripRequest contains the parameters for booking a trip.
type CreateTripRequest struct {
	Caller      *domain.Identity
	TouristID   int64
	GuideID     int64
	TouristsNum int
	Date        string
}

// CreateTrip books a trip. Trips start ACTIVE: bookings are not vetted here.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.Caller == nil {
		return nil, ErrNotAuthenticated
	}

	if req.TouristID <= 0 || req.GuideID <= 0 || req.TouristID == req.GuideID {
		return nil, ErrInvalidParticipants
	}

	if req.TouristsNum <= 0 {
		return nil, ErrInvalidTouristsNum
	}

	date, err := time.Parse(domain.TripDateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidTripDate
	}

	if req.Caller.ID != req.TouristID && req.Caller.ID != req.GuideID {
		return nil, ErrForbidden
	}

	guide, err := s.userRepo.GetByID(ctx, req.GuideID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidParticipants
		}
		return nil, storageError("get guide", err)
	}

	if guide.Role != domain.RoleGuide {
		return nil, ErrGuideRoleRequired
	}

	trip := &domain.Trip{
		TouristID:   req.TouristID,
		GuideID:     req.GuideID,
		TouristsNum: req.TouristsNum,
		Date:        date,
		Status:      domain.TripStatusActive,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrInvalidParticipants
		}
		s.log.WithError(err).Warn("trip create failed")
		return nil, storageError("create trip", err)
	}

	s.log.WithFields(logrus.Fields{
		"trip_id":    trip.ID,
		"tourist_id": trip.TouristID,
		"guide_id":   trip.GuideID,
	}).Info("trip created")

	return trip, nil
}

// GetTrip retrieves a trip the caller takes part in.
func (s *TripService) GetTrip(ctx context.Context, caller *domain.Identity, tripID int64) (*domain.Trip, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}

	if tripID <= 0 {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, storageError("get trip", err)
	}

	if !trip.HasParticipant(caller.ID) {
		return nil, ErrForbidden
	}

	return trip, nil
}

// UpdateTripStatusRequest contains the parameters for changing a trip status.
type UpdateTripStatusRequest struct {
	Caller *domain.Identity
	TripID int64
	Status *int
}

// UpdateTripStatus moves a trip to a new status. The write is conditional on
// the status the transition starts from, so a concurrent change cannot be
// overwritten.
func (s *TripService) UpdateTripStatus(ctx context.Context, req UpdateTripStatusRequest) error {
	if req.Caller == nil {
		return ErrNotAuthenticated
	}

	if req.TripID <= 0 {
		return ErrInvalidTripID
	}

	if req.Status == nil || !domain.TripStatus(*req.Status).Valid() {
		return ErrInvalidTripStatus
	}
	next := domain.TripStatus(*req.Status)

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return storageError("get trip", err)
	}

	if !trip.HasParticipant(req.Caller.ID) {
		return ErrForbidden
	}

	from := domain.AllTripStatuses
	if s.strictTransitions {
		if !trip.Status.CanTransitionTo(next) {
			return ErrInvalidTransition
		}
		from = next.AllowedPredecessors()
	}

	if err := s.tripRepo.UpdateStatus(ctx, req.TripID, next, from); err != nil {
		switch {
		case errors.Is(err, repository.ErrPreconditionFailed):
			return ErrInvalidTransition
		case errors.Is(err, repository.ErrNotFound):
			return err
		default:
			s.log.WithError(err).WithField("trip_id", req.TripID).Warn("trip status update failed")
			return storageError("update trip status", err)
		}
	}

	metrics.TripStatusChangesTotal.WithLabelValues(next.String()).Inc()
	s.log.WithFields(logrus.Fields{
		"trip_id": req.TripID,
		"from":    trip.Status.String(),
		"to":      next.String(),
	}).Info("trip status changed")

	return nil
}
