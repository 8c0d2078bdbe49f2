package config

import (
	"os"
	"testing"
)

func TestLoadServerDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "POSTGRES_DSN", "DATA_DIR", "SUPER_ADMIN_NAME"} {
		t.Setenv(key, "placeholder")
		os.Unsetenv(key)
	}

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("DataDir = %q, want data", cfg.DataDir)
	}
	if cfg.SuperAdminName != "root" {
		t.Fatalf("SuperAdminName = %q, want root", cfg.SuperAdminName)
	}
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/hall")
	t.Setenv("DATA_DIR", "/var/lib/hall")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.PostgresDSN != "postgres://localhost/hall" {
		t.Fatalf("PostgresDSN = %q", cfg.PostgresDSN)
	}
	if cfg.DataDir != "/var/lib/hall" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}
}
