package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"tourtrack/internal/app"
	"tourtrack/internal/auth"
	"tourtrack/internal/config"
	"tourtrack/internal/handler"
	internalRedis "tourtrack/internal/redis"
	"tourtrack/internal/repository"
	"tourtrack/internal/repository/memory"
	"tourtrack/internal/repository/postgres"
	"tourtrack/internal/service"
)

// repositories is the storage backing chosen by DB_DRIVER.
type repositories struct {
	locations   repository.LocationRepository
	trips       repository.TripRepository
	activeTrips repository.ActiveTripRepository
	users       repository.UserRepository
}

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.WithError(err).Warn("failed to initialize New Relic")
		} else {
			log.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	var db *sql.DB
	var repos repositories
	switch cfg.Database.Driver {
	case "memory":
		repos, err = memoryRepositories(cfg.Database.SeedUsers)
		if err != nil {
			log.WithError(err).Fatal("failed to seed memory store")
		}
		log.Warn("using in-memory storage; data is lost on exit")
	default:
		db, err = app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to database")
		}
		defer db.Close()
		log.Info("connected to PostgreSQL")

		if cfg.Database.Migrate {
			if err := app.Migrate(ctx, db); err != nil {
				log.WithError(err).Fatal("failed to migrate database")
			}
			log.Info("database schema applied")
		}
		repos = postgresRepositories(db)
	}

	// Redis backs idempotent replay and rate limiting only; the API runs without it.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.WithError(err).Warn("redis unavailable; idempotency and rate limiting disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info("connected to Redis")
		}
	}

	server := wireServer(repos, db, redisClient, nrApp, cfg, log)

	// Start server in goroutine.
	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Info("server exited")
}

func postgresRepositories(db *sql.DB) repositories {
	return repositories{
		locations:   postgres.NewLocationRepository(db),
		trips:       postgres.NewTripRepository(db),
		activeTrips: postgres.NewActiveTripRepository(db),
		users:       postgres.NewUserRepository(db),
	}
}

func memoryRepositories(seed string) (repositories, error) {
	users, err := app.ParseSeedUsers(seed)
	if err != nil {
		return repositories{}, err
	}

	store := memory.NewStore()
	for _, u := range users {
		store.AddUser(u)
	}

	return repositories{
		locations:   store.Locations(),
		trips:       store.Trips(),
		activeTrips: store.ActiveTrips(),
		users:       store.Users(),
	}, nil
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	repos repositories,
	db *sql.DB,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	cfg *config.Config,
	log *logrus.Logger,
) *http.Server {
	// Initialize services.
	locationService := service.NewLocationService(repos.locations, repos.trips, log)
	tripService := service.NewTripService(repos.trips, repos.users, cfg.Tracking.StrictTransitions, log)
	activeTripService := service.NewActiveTripService(repos.activeTrips, locationService)

	checks := map[string]handler.HealthCheck{}
	if db != nil {
		checks["postgres"] = db.PingContext
	}

	deps := app.RouterDeps{
		LocationHandler:   handler.NewLocationHandler(locationService),
		TripHandler:       handler.NewTripHandler(tripService),
		ActiveTripHandler: handler.NewActiveTripHandler(activeTripService),
		IdentityGate:      auth.NewJWTGate(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		LocationRateLimit: cfg.Tracking.LocationRateLimit,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		NewRelicApp:       nrApp,
		Logger:            log,
	}

	// Initialize Redis stores.
	if redisClient != nil {
		deps.ResponseCache = internalRedis.NewResponseCache(redisClient)
		deps.RateLimiter = internalRedis.NewRateLimiter(redisClient)
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	deps.HealthHandler = handler.NewHealthHandler(checks)

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
