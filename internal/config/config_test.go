package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.CartTTL != 86400 {
		t.Errorf("CartTTL = %d, want 86400", cfg.CartTTL)
	}
	if cfg.RequireKnownTable {
		t.Error("RequireKnownTable should default to false")
	}
	if cfg.UploadDir != "uploads" {
		t.Errorf("UploadDir = %q, want uploads", cfg.UploadDir)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CART_TTL", "120")
	t.Setenv("REQUIRE_KNOWN_TABLE", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.CartTTL != 120 {
		t.Errorf("CartTTL = %d, want 120", cfg.CartTTL)
	}
	if !cfg.RequireKnownTable {
		t.Error("RequireKnownTable = false, want true")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("CART_TTL", "not-a-number")

	cfg := Load()
	if cfg.CartTTL != 86400 {
		t.Errorf("CartTTL = %d, want default 86400", cfg.CartTTL)
	}
}
