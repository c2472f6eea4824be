package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmcloughlin/geohash"

	"tourtrack/internal/domain"
	"tourtrack/internal/middleware"
	"tourtrack/internal/service"
)

// geohashPrecision gives cells of roughly 150m for client-side clustering.
const geohashPrecision = 7

// LocationHandler handles HTTP requests for user positions.
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// UpdateLocationRequest is the HTTP request body for a position update.
type UpdateLocationRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	IsTourGuide *bool    `json:"isTourGuide"`
	TripID      *int64   `json:"tripId"`
}

// LocationResponse is the HTTP representation of a LocationRecord.
type LocationResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Geohash     string  `json:"geohash"`
	IsTourGuide bool    `json:"is_tour_guide"`
	TripID      *int64  `json:"trip_id"`
	UpdatedAt   string  `json:"updated_at"`
}

func newLocationResponse(rec *domain.LocationRecord) LocationResponse {
	return LocationResponse{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Latitude:    rec.Latitude,
		Longitude:   rec.Longitude,
		Geohash:     geohash.EncodeWithPrecision(rec.Latitude, rec.Longitude, geohashPrecision),
		IsTourGuide: rec.IsGuideRole,
		TripID:      rec.TripID,
		UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
	}
}

// UpdateLocation handles POST /api/update-location
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.locationService.UpdateLocation(c.Request.Context(), service.UpdateLocationRequest{
		Caller:      middleware.IdentityFrom(c),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsTourGuide: req.IsTourGuide,
		TripID:      req.TripID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, "Location updated successfully", newLocationResponse(rec))
}

// GetLocation handles GET /api/get-location/:userId
func (h *LocationHandler) GetLocation(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		respondError(c, service.ErrInvalidUserID)
		return
	}

	rec, err := h.locationService.GetLocation(c.Request.Context(), middleware.IdentityFrom(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if rec == nil {
		respondFail(c, http.StatusNotFound, "No location found for this user")
		return
	}

	respondJSON(c, http.StatusOK, "", newLocationResponse(rec))
}
