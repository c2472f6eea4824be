package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"tourtrack/internal/auth"
	"tourtrack/internal/handler"
	"tourtrack/internal/middleware"
	"tourtrack/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	LocationHandler   *handler.LocationHandler
	TripHandler       *handler.TripHandler
	ActiveTripHandler *handler.ActiveTripHandler
	HealthHandler     *handler.HealthHandler
	IdentityGate      auth.IdentityGate
	ResponseCache     redis.ResponseCacheInterface // nil disables idempotent replay
	RateLimiter       redis.RateLimiterInterface   // nil disables rate limiting
	LocationRateLimit int
	AllowedOrigins    []string
	NewRelicApp       *newrelic.Application
	Logger            logrus.FieldLogger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		deps.Logger.WithField("panic", recovered).Error("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, handler.Envelope{
			Success: false,
			Message: "internal server error",
		})
	}))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.Envelope{Success: false, Message: "route not found"})
	})

	// Health check and metrics.
	router.GET("/health", deps.HealthHandler.Live)
	router.GET("/health/ready", deps.HealthHandler.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(deps.IdentityGate))
	api.Use(middleware.IdempotencyMiddleware(deps.ResponseCache, deps.Logger))
	{
		// Location routes.
		api.POST("/update-location",
			middleware.RateLimitMiddleware(deps.RateLimiter, deps.LocationRateLimit, deps.Logger),
			deps.LocationHandler.UpdateLocation,
		)
		api.GET("/get-location/:userId", deps.LocationHandler.GetLocation)

		// Trip routes.
		api.POST("/create-trip", deps.TripHandler.CreateTrip)
		api.GET("/trips/:tripId", deps.TripHandler.GetTrip)
		api.PUT("/update-trip-status/:tripId", deps.TripHandler.UpdateTripStatus)

		// Guide routes.
		api.GET("/active-trips/:guideId", deps.ActiveTripHandler.ListActiveTrips)
		api.GET("/tourist-location/:touristId", deps.ActiveTripHandler.GetTouristLocation)
	}

	return router
}
