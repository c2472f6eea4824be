package service

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation runs without a verified caller.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the caller may not act on the requested resource.
	ErrForbidden = errors.New("forbidden")

	// ErrMissingCoordinates is returned when latitude or longitude is absent.
	ErrMissingCoordinates = errors.New("latitude and longitude are required")

	// ErrInvalidLocation is returned when location coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidUserID is returned when a user ID is not positive.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidTripID is returned when a trip ID is not positive.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrUnknownTrip is returned when a position update references a trip that does not exist.
	ErrUnknownTrip = errors.New("referenced trip does not exist")

	// ErrTripNotActive is returned when a position update references a trip that is not in progress.
	ErrTripNotActive = errors.New("referenced trip is not active")

	// ErrInvalidTouristsNum is returned when the party size is not positive.
	ErrInvalidTouristsNum = errors.New("tourists_num must be a positive integer")

	// ErrInvalidTripDate is returned when the trip date is not a calendar date.
	ErrInvalidTripDate = errors.New("date must be a calendar date (YYYY-MM-DD)")

	// ErrInvalidParticipants is returned when tourist and guide are missing, equal or unknown.
	ErrInvalidParticipants = errors.New("tourist and guide must be two existing users")

	// ErrGuideRoleRequired is returned when guide_id does not belong to a tour guide.
	ErrGuideRoleRequired = errors.New("guide_id does not belong to a tour guide")

	// ErrInvalidTripStatus is returned when the status is not a defined code.
	ErrInvalidTripStatus = errors.New("invalid trip status")

	// ErrInvalidTransition is returned when a trip cannot move to the requested status.
	ErrInvalidTransition = errors.New("invalid trip status transition")
)

// StorageError wraps a failure of the durable store. Its message is meant for
// logs only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
