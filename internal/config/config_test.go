package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, name := range []string{"LISTEN_ADDR", "LOG_LEVEL", "MONGO_URI", "MONGO_DB", "NBI_URL", "JWT_SECRET", "WEB_DIST"} {
		// t.Setenv registers the restore; the variable must actually be
		// absent for the envconfig defaults to apply.
		t.Setenv(name, "")
		//nolint:errcheck
		_ = os.Unsetenv(name)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":3000" {
		t.Errorf("ListenAddr = %q, want :3000", cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "acs_console" {
		t.Errorf("MongoDatabase = %q", cfg.MongoDatabase)
	}
	if cfg.NBIURL != "http://localhost:7557" {
		t.Errorf("NBIURL = %q", cfg.NBIURL)
	}
	if cfg.WebDist != "dist" {
		t.Errorf("WebDist = %q, want dist", cfg.WebDist)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NBI_URL", "http://acs.internal:7557")
	t.Setenv("JWT_SECRET", "super-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.NBIURL != "http://acs.internal:7557" {
		t.Errorf("NBIURL = %q", cfg.NBIURL)
	}
	if cfg.JWTSecret != "super-secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing JWT secret")
	}

	cfg.JWTSecret = "anything"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}
