package domain

import (
	"math"
	"time"
)

// LocationRecord is the single current position kept for a user.
type LocationRecord struct {
	ID          int64
	UserID      int64
	Latitude    float64
	Longitude   float64
	IsGuideRole bool
	TripID      *int64 // Set when the update belongs to an in-progress trip
	UpdatedAt   time.Time
}

// ValidLatitude reports whether lat is a finite latitude in [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lng is a finite longitude in [-180, 180].
func ValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180 && lng <= 180
}
