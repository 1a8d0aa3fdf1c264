package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("REFRESH_TOKEN_TTL", "48h")
	t.Setenv("WEB_HOST_URL", "http://localhost:8080")
}

func TestLoad_Success(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ISSUER", "user-service")
	t.Setenv("JWT_AUDIENCE", "web")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("ALLOW_CREDENTIALS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("AccessTokenTTL want 30m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 48*time.Hour {
		t.Fatalf("RefreshTokenTTL want 48h, got %v", cfg.RefreshTokenTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("bad origins: %v", cfg.AllowedOrigins)
	}
	if !cfg.AllowCredentials {
		t.Fatal("expected AllowCredentials")
	}
	if cfg.HTTPAddress != ":8080" {
		t.Fatalf("want default address, got %s", cfg.HTTPAddress)
	}
}

func TestLoad_TrimsHostURL(t *testing.T) {
	setRequired(t)
	t.Setenv("WEB_HOST_URL", "http://localhost:8080/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WebHostURL != "http://localhost:8080" {
		t.Fatalf("trailing slash not trimmed: %s", cfg.WebHostURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET, got nil")
	}
}

func TestLoad_BadTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to zero ACCESS_TOKEN_TTL, got nil")
	}
}
