package domain

import "time"

// TripStatus is the integer status code stored on an order row.
type TripStatus int

const (
	TripStatusRequested TripStatus = 0
	TripStatusActive    TripStatus = 1
	TripStatusCompleted TripStatus = 2
	TripStatusCancelled TripStatus = 3
)

// TripDateLayout is the wire and storage layout of a trip date.
const TripDateLayout = "2006-01-02"

// AllTripStatuses lists every defined status in code order.
var AllTripStatuses = []TripStatus{
	TripStatusRequested,
	TripStatusActive,
	TripStatusCompleted,
	TripStatusCancelled,
}

// Valid reports whether s is one of the defined status codes.
func (s TripStatus) Valid() bool {
	return s >= TripStatusRequested && s <= TripStatusCancelled
}

// Terminal reports whether no further transition is allowed out of s.
func (s TripStatus) Terminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

func (s TripStatus) String() string {
	switch s {
	case TripStatusRequested:
		return "REQUESTED"
	case TripStatusActive:
		return "ACTIVE"
	case TripStatusCompleted:
		return "COMPLETED"
	case TripStatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// AllowedPredecessors returns the statuses a trip may hold immediately before
// moving to s. Re-applying the current status is accepted so that retried
// requests stay harmless.
func (s TripStatus) AllowedPredecessors() []TripStatus {
	switch s {
	case TripStatusRequested:
		return []TripStatus{TripStatusRequested}
	case TripStatusActive:
		return []TripStatus{TripStatusRequested, TripStatusActive}
	case TripStatusCompleted:
		return []TripStatus{TripStatusActive, TripStatusCompleted}
	case TripStatusCancelled:
		return []TripStatus{TripStatusRequested, TripStatusActive, TripStatusCancelled}
	default:
		return nil
	}
}

// CanTransitionTo reports whether a trip in status s may move to next.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, from := range next.AllowedPredecessors() {
		if from == s {
			return true
		}
	}
	return false
}

// Trip is a booking linking one tourist and one guide for a scheduled date.
type Trip struct {
	ID          int64
	TouristID   int64
	GuideID     int64
	TouristsNum int
	Date        time.Time
	Status      TripStatus
	CreatedAt   time.Time
}

// HasParticipant reports whether userID is the tourist or the guide of the trip.
func (t *Trip) HasParticipant(userID int64) bool {
	return t.TouristID == userID || t.GuideID == userID
}

// ActiveTripRow is an active trip joined with its tourist and the tourist's
// latest position. Position fields are nil when the tourist never reported one.
type ActiveTripRow struct {
	TripID            int64
	TouristID         int64
	TouristName       string
	TouristsNum       int
	Date              time.Time
	Latitude          *float64
	Longitude         *float64
	LocationUpdatedAt *time.Time
}
