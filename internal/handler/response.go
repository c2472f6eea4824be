package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourtrack/internal/repository"
	"tourtrack/internal/service"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Storage failures are reported with a generic message; the cause is kept on
// the gin context for the request logger.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := mapErrorToHTTPStatus(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(code, Envelope{Success: false, Message: message})
}

// respondFail sends a failure envelope with a fixed message.
func respondFail(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Success: false, Message: message})
}

// respondJSON sends a success envelope with the given status code.
func respondJSON(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Envelope{Success: true, Message: message, Data: data})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var storageErr *service.StorageError

	switch {
	// Storage failures first: a wrapped driver error must never match below.
	case errors.As(err, &storageErr):
		return http.StatusInternalServerError

	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrMissingCoordinates),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrUnknownTrip),
		errors.Is(err, service.ErrTripNotActive),
		errors.Is(err, service.ErrInvalidTouristsNum),
		errors.Is(err, service.ErrInvalidTripDate),
		errors.Is(err, service.ErrInvalidParticipants),
		errors.Is(err, service.ErrGuideRoleRequired),
		errors.Is(err, service.ErrInvalidTripStatus):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
