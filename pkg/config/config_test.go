package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8091" {
		t.Errorf("Port = %s, want 8091", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %s, want development", cfg.Env)
	}
	if cfg.Ephemeris.Provider != "builtin" {
		t.Errorf("Ephemeris.Provider = %s, want builtin", cfg.Ephemeris.Provider)
	}
	if cfg.Ephemeris.MaxConcurrent != 4 {
		t.Errorf("Ephemeris.MaxConcurrent = %d, want 4", cfg.Ephemeris.MaxConcurrent)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("ENV", "sandbox")
	defer os.Unsetenv("ENV")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for unknown ENV")
	}
}

func TestLoad_InvalidProvider(t *testing.T) {
	os.Clearenv()
	os.Setenv("EPHEMERIS_PROVIDER", "astrolabe")
	defer os.Unsetenv("EPHEMERIS_PROVIDER")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for unknown EPHEMERIS_PROVIDER")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("EPHEMERIS_RATE_LIMIT", "25")
	os.Setenv("LOG_FORMAT", "console")
	defer func() {
		os.Unsetenv("EPHEMERIS_RATE_LIMIT")
		os.Unsetenv("LOG_FORMAT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Ephemeris.RateLimit != 25 {
		t.Errorf("Ephemeris.RateLimit = %d, want 25", cfg.Ephemeris.RateLimit)
	}
	if cfg.LogFormat != "console" {
		t.Errorf("LogFormat = %s, want console", cfg.LogFormat)
	}
}
