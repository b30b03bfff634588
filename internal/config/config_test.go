package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("HBILL_STORE_PATH")
	os.Unsetenv("HBILL_LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StorePath != "hospital.db" {
		t.Errorf("expected default store path hospital.db, got %s", cfg.StorePath)
	}

	if cfg.BackupDir != "backups" {
		t.Errorf("expected default backup dir backups, got %s", cfg.BackupDir)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}

	if !cfg.LogPretty {
		t.Error("expected pretty logging by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	os.Setenv("HBILL_STORE_PATH", "/tmp/clinic.db")
	os.Setenv("HBILL_LOG_LEVEL", "debug")
	defer os.Unsetenv("HBILL_STORE_PATH")
	defer os.Unsetenv("HBILL_LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StorePath != "/tmp/clinic.db" {
		t.Errorf("expected store path from env, got %s", cfg.StorePath)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestConfig_Validate(t *testing.T) {
	c := &Config{StorePath: "hospital.db", BackupDir: "backups", LogLevel: "info"}
	if err := c.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	c.StorePath = ""
	if err := c.Validate(); err == nil {
		t.Error("expected error for empty store path")
	}

	c.StorePath = "hospital.db"
	c.LogLevel = "loud"
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}
}
