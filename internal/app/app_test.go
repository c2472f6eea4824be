package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tourtrack/internal/auth"
	"tourtrack/internal/config"
	"tourtrack/internal/domain"
	"tourtrack/internal/handler"
	"tourtrack/internal/repository/memory"
	"tourtrack/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseSeedUsers(t *testing.T) {
	t.Parallel()

	users, err := ParseSeedUsers("5:Alice:tourist, 9:Guide Nine:Tour Guide,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[1].ID != 9 || users[1].Name != "Guide Nine" || users[1].Role != domain.RoleGuide {
		t.Errorf("unexpected user: %+v", users[1])
	}

	for _, bad := range []string{"5:Alice", "x:Alice:tourist", "0:Alice:tourist"} {
		if _, err := ParseSeedUsers(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestNewLogger_Level(t *testing.T) {
	t.Parallel()

	if got := NewLogger(config.LogConfig{Level: "debug"}).GetLevel(); got != logrus.DebugLevel {
		t.Errorf("expected debug, got %v", got)
	}
	if got := NewLogger(config.LogConfig{Level: "loud"}).GetLevel(); got != logrus.InfoLevel {
		t.Errorf("expected fallback to info, got %v", got)
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := memory.NewStore()
	store.AddUser(&domain.User{ID: 5, Name: "Alice", Role: domain.RoleTourist})

	locations := service.NewLocationService(store.Locations(), store.Trips(), log)
	trips := service.NewTripService(store.Trips(), store.Users(), true, log)

	return NewRouter(RouterDeps{
		LocationHandler:   handler.NewLocationHandler(locations),
		TripHandler:       handler.NewTripHandler(trips),
		ActiveTripHandler: handler.NewActiveTripHandler(service.NewActiveTripService(store.ActiveTrips(), locations)),
		HealthHandler:     handler.NewHealthHandler(nil),
		IdentityGate:      auth.NewJWTGate("router-secret", ""),
		Logger:            log,
	})
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	token, err := auth.IssueToken("router-secret", "", 5, "", "tourist", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testCases := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{name: "liveness", method: http.MethodGet, path: "/health", want: http.StatusOK},
		{name: "readiness", method: http.MethodGet, path: "/health/ready", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{name: "api needs auth", method: http.MethodGet, path: "/api/get-location/5", want: http.StatusUnauthorized},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", want: http.StatusNotFound},
		{
			name: "update location", method: http.MethodPost, path: "/api/update-location", token: token,
			body: `{"latitude":10,"longitude":20}`, want: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		var body io.Reader
		if tc.body != "" {
			body = strings.NewReader(tc.body)
		}
		req := httptest.NewRequest(tc.method, tc.path, body)
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Errorf("%s: expected %d, got %d: %s", tc.name, tc.want, w.Code, w.Body.String())
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s: expected request id header", tc.name)
		}
	}
}

func TestRouter_UnknownRouteIsJSON(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	var env handler.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("expected JSON body, got %q", w.Body.String())
	}
	if env.Success || env.Message == "" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}

	if !strings.Contains(schema, "user_id       BIGINT NOT NULL UNIQUE") {
		t.Error("user_locations.user_id must be unique for the upsert conflict target")
	}
}
