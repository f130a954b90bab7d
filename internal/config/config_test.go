package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Downstream.Timeout() != 15*time.Second {
		t.Errorf("expected default timeout 15s, got %v", cfg.Downstream.Timeout())
	}
	if cfg.Downstream.Retries != 1 {
		t.Errorf("expected default retries 1, got %d", cfg.Downstream.Retries)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("expected default storage 'memory', got %q", cfg.Storage.Type)
	}
}

func TestLoadFileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
downstream:
  base_url: http://localhost:5001
  timeout_ms: 20000
routing:
  base_url: https://graphhopper.com/api/1
  api_key: ${GH_KEY}
  destination:
    latitude: 13.01
    longitude: 75.31
`)
	t.Setenv("GH_KEY", "secret-key")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Downstream.BaseURL != "http://localhost:5001" {
		t.Errorf("unexpected base url %q", cfg.Downstream.BaseURL)
	}
	if cfg.Downstream.Timeout() != 20*time.Second {
		t.Errorf("expected 20s timeout, got %v", cfg.Downstream.Timeout())
	}
	if cfg.Routing.APIKey != "secret-key" {
		t.Errorf("expected env substitution, got %q", cfg.Routing.APIKey)
	}
	if cfg.Routing.Destination.Latitude != 13.01 {
		t.Errorf("unexpected destination %v", cfg.Routing.Destination)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("GATEWAY_SERVER__PORT", "7070")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env override 7070, got %d", cfg.Server.Port)
	}
}
