package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DBName != "tourtrack" {
		t.Errorf("unexpected database config: %+v", cfg.Database)
	}
	if !cfg.Tracking.StrictTransitions {
		t.Error("expected strict transitions by default")
	}
	if cfg.Tracking.LocationRateLimit != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Tracking.LocationRateLimit)
	}
	if cfg.Server.AllowedOrigins != nil {
		t.Errorf("expected no origins, got %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("TRACKING_STRICT_TRANSITIONS", "false")
	t.Setenv("TRACKING_RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != "memory" {
		t.Errorf("expected memory driver, got %s", cfg.Database.Driver)
	}
	if cfg.Tracking.StrictTransitions {
		t.Error("expected permissive transitions")
	}
	if cfg.Tracking.LocationRateLimit != 0 {
		t.Errorf("expected rate limit disabled, got %d", cfg.Tracking.LocationRateLimit)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.Server.ReadTimeout)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("expected fallback to default redis db, got %d", cfg.Redis.DB)
	}
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "unknown driver", env: map[string]string{"JWT_SECRET": "x", "DB_DRIVER": "mysql"}},
		{name: "new relic without key", env: map[string]string{"JWT_SECRET": "x", "NEW_RELIC_ENABLED": "true"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad_LocalReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from-file\nSERVER_PORT=9090\n"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("APP_ENV", "local")
	// godotenv never overrides a variable that is already set, even to "".
	for _, key := range []string{"JWT_SECRET", "SERVER_PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-file" || cfg.Server.Port != "9090" {
		t.Errorf("expected values from .env, got secret %q port %q", cfg.Auth.JWTSecret, cfg.Server.Port)
	}
}
