package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WEB_HOST", "")
	t.Setenv("WEB_PORT", "")
	t.Setenv("WEB_ALLOWED_ORIGINS", "")
	t.Setenv("LOG_DEVELOPMENT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "")
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "")
	t.Setenv("PREFERENCES_DEFAULT_ARCHIVE_SIZE", "")

	cfg := Load()

	if cfg.Web.Host != "0.0.0.0" {
		t.Errorf("expected default host '0.0.0.0', got '%s'", cfg.Web.Host)
	}
	if cfg.Web.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Web.Port)
	}
	if len(cfg.Web.AllowedOrigins) != 0 {
		t.Errorf("expected no allowed origins, got %v", cfg.Web.AllowedOrigins)
	}
	if cfg.Web.LogDevelopment {
		t.Error("expected production logging by default")
	}
	if cfg.Database.URL != "" {
		t.Errorf("expected empty database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("expected default max open conns 25, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns != 5 {
		t.Errorf("expected default max idle conns 5, got %d", cfg.Database.MaxIdleConns)
	}
	if cfg.Preferences.DefaultArchiveSize != 0 {
		t.Errorf("expected no archive size override, got %d", cfg.Preferences.DefaultArchiveSize)
	}
}

func TestLoad_WebConfig(t *testing.T) {
	t.Setenv("WEB_HOST", "127.0.0.1")
	t.Setenv("WEB_PORT", "9000")
	t.Setenv("WEB_ALLOWED_ORIGINS", "http://localhost:5173, https://photos.example.com,,")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg := Load()

	if cfg.Web.Addr() != "127.0.0.1:9000" {
		t.Errorf("expected addr '127.0.0.1:9000', got '%s'", cfg.Web.Addr())
	}

	expected := []string{"http://localhost:5173", "https://photos.example.com"}
	if len(cfg.Web.AllowedOrigins) != len(expected) {
		t.Fatalf("expected %d origins, got %v", len(expected), cfg.Web.AllowedOrigins)
	}
	for i, origin := range expected {
		if cfg.Web.AllowedOrigins[i] != origin {
			t.Errorf("origin %d: expected '%s', got '%s'", i, origin, cfg.Web.AllowedOrigins[i])
		}
	}

	if !cfg.Web.LogDevelopment {
		t.Error("expected development logging")
	}
}

func TestLoad_DatabaseConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/prefs?sslmode=disable")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "10")
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "2")

	cfg := Load()

	if cfg.Database.URL != "postgres://u:p@localhost:5432/prefs?sslmode=disable" {
		t.Errorf("unexpected database URL '%s'", cfg.Database.URL)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("expected max open conns 10, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns != 2 {
		t.Errorf("expected max idle conns 2, got %d", cfg.Database.MaxIdleConns)
	}
}

func TestLoad_ArchiveSizeOverride(t *testing.T) {
	t.Setenv("PREFERENCES_DEFAULT_ARCHIVE_SIZE", "8589934592")

	cfg := Load()

	if cfg.Preferences.DefaultArchiveSize != 8589934592 {
		t.Errorf("expected archive size 8589934592, got %d", cfg.Preferences.DefaultArchiveSize)
	}
}

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 768},
		{"valid", "512", 512},
		{"invalid", "invalid", 768},
		{"negative", "-100", 768},
		{"zero", "0", 768},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_INT", tc.value)
			if got := envInt("TEST_ENV_INT", 768); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
