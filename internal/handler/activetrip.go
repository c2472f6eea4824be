package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourtrack/internal/domain"
	"tourtrack/internal/middleware"
	"tourtrack/internal/service"
)

// ActiveTripHandler serves the guide's live view.
type ActiveTripHandler struct {
	activeTripService *service.ActiveTripService
}

// NewActiveTripHandler creates a new ActiveTripHandler.
func NewActiveTripHandler(activeTripService *service.ActiveTripService) *ActiveTripHandler {
	return &ActiveTripHandler{activeTripService: activeTripService}
}

// ActiveTripResponse is one active trip with the tourist's latest position.
// Position fields are null when the tourist never reported one.
type ActiveTripResponse struct {
	TripID            int64    `json:"trip_id"`
	TouristID         int64    `json:"tourist_id"`
	TouristName       string   `json:"tourist_name"`
	TouristsNum       int      `json:"tourists_num"`
	Date              string   `json:"date"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	LocationUpdatedAt *string  `json:"location_updated_at"`
}

func newActiveTripResponse(row *domain.ActiveTripRow) ActiveTripResponse {
	resp := ActiveTripResponse{
		TripID:      row.TripID,
		TouristID:   row.TouristID,
		TouristName: row.TouristName,
		TouristsNum: row.TouristsNum,
		Date:        row.Date.Format(domain.TripDateLayout),
		Latitude:    row.Latitude,
		Longitude:   row.Longitude,
	}
	if row.LocationUpdatedAt != nil {
		ts := row.LocationUpdatedAt.Format(time.RFC3339)
		resp.LocationUpdatedAt = &ts
	}
	return resp
}

// ListActiveTrips handles GET /api/active-trips/:guideId
func (h *ActiveTripHandler) ListActiveTrips(c *gin.Context) {
	guideID, ok := paramID(c, "guideId")
	if !ok {
		respondError(c, service.ErrInvalidUserID)
		return
	}

	rows, err := h.activeTripService.ListActiveTrips(c.Request.Context(), middleware.IdentityFrom(c), guideID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ActiveTripResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, newActiveTripResponse(row))
	}

	respondJSON(c, http.StatusOK, "", response)
}

// GetTouristLocation handles GET /api/tourist-location/:touristId
func (h *ActiveTripHandler) GetTouristLocation(c *gin.Context) {
	touristID, ok := paramID(c, "touristId")
	if !ok {
		respondError(c, service.ErrInvalidUserID)
		return
	}

	rec, err := h.activeTripService.GetTouristLocation(c.Request.Context(), middleware.IdentityFrom(c), touristID)
	if err != nil {
		respondError(c, err)
		return
	}

	if rec == nil {
		respondFail(c, http.StatusNotFound, "No location found for this tourist")
		return
	}

	respondJSON(c, http.StatusOK, "", newLocationResponse(rec))
}
