package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourtrack/internal/domain"
	"tourtrack/internal/middleware"
	"tourtrack/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for booking a trip.
type CreateTripRequest struct {
	TouristID   int64  `json:"tourist_id" binding:"required"`
	GuideID     int64  `json:"guide_id" binding:"required"`
	TouristsNum int    `json:"tourists_num"`
	Date        string `json:"date" binding:"required"`
}

// UpdateTripStatusRequest is the HTTP request body for a status change.
type UpdateTripStatusRequest struct {
	Status *int `json:"status" binding:"required"`
}

// TripResponse is the HTTP representation of a Trip.
type TripResponse struct {
	ID          int64  `json:"id"`
	TouristID   int64  `json:"tourist_id"`
	GuideID     int64  `json:"guide_id"`
	TouristsNum int    `json:"tourists_num"`
	Date        string `json:"date"`
	Status      int    `json:"status"`
	StatusName  string `json:"status_name"`
	CreatedAt   string `json:"created_at"`
}

func newTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		ID:          trip.ID,
		TouristID:   trip.TouristID,
		GuideID:     trip.GuideID,
		TouristsNum: trip.TouristsNum,
		Date:        trip.Date.Format(domain.TripDateLayout),
		Status:      int(trip.Status),
		StatusName:  trip.Status.String(),
		CreatedAt:   trip.CreatedAt.Format(time.RFC3339),
	}
}

// CreateTrip handles POST /api/create-trip
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "tourist_id, guide_id, tourists_num and date are required")
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		Caller:      middleware.IdentityFrom(c),
		TouristID:   req.TouristID,
		GuideID:     req.GuideID,
		TouristsNum: req.TouristsNum,
		Date:        req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, "Trip created successfully", newTripResponse(trip))
}

// GetTrip handles GET /api/trips/:tripId
func (h *TripHandler) GetTrip(c *gin.Context) {
	tripID, ok := paramID(c, "tripId")
	if !ok {
		respondError(c, service.ErrInvalidTripID)
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), middleware.IdentityFrom(c), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, "", newTripResponse(trip))
}

// UpdateTripStatus handles PUT /api/update-trip-status/:tripId
func (h *TripHandler) UpdateTripStatus(c *gin.Context) {
	tripID, ok := paramID(c, "tripId")
	if !ok {
		respondError(c, service.ErrInvalidTripID)
		return
	}

	var req UpdateTripStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvalidTripStatus)
		return
	}

	err := h.tripService.UpdateTripStatus(c.Request.Context(), service.UpdateTripStatusRequest{
		Caller: middleware.IdentityFrom(c),
		TripID: tripID,
		Status: req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, "Trip status updated successfully", nil)
}
