package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != 1 {
		t.Errorf("expected Version=1, got %d", cfg.Version)
	}
	if cfg.AI.URL != "" {
		t.Errorf("AI resolver should be disabled by default, got url %q", cfg.AI.URL)
	}
	if cfg.AI.Timeout() != 30*time.Second {
		t.Errorf("expected AI timeout 30s, got %v", cfg.AI.Timeout())
	}
	if cfg.AI.FailureThreshold != 3 {
		t.Errorf("expected AI.FailureThreshold=3, got %d", cfg.AI.FailureThreshold)
	}
	if !cfg.Parsing.AssumePMHours {
		t.Error("expected assume_pm_hours on by default")
	}
	if !cfg.Parsing.WeekdayRollsForward {
		t.Error("expected weekday_rolls_forward on by default")
	}
	if cfg.Search.Limit != 5 {
		t.Errorf("expected Search.Limit=5, got %d", cfg.Search.Limit)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Storage.Path == "" {
		t.Error("expected a default storage path")
	}
}

func TestLoadSave(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.AI.URL = "http://localhost:8080/v1/complete"
	cfg.AI.Model = "assistant-small"
	cfg.Parsing.AssumePMHours = false
	cfg.Search.Location = "Portland, OR"
	cfg.Logging.Level = "debug"

	if err := cfg.Save(cfgPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.AI.URL != "http://localhost:8080/v1/complete" {
		t.Errorf("AI.URL round trip failed, got %q", loaded.AI.URL)
	}
	if loaded.AI.Model != "assistant-small" {
		t.Errorf("AI.Model round trip failed, got %q", loaded.AI.Model)
	}
	if loaded.Parsing.AssumePMHours {
		t.Error("expected assume_pm_hours=false after round trip")
	}
	if loaded.Search.Location != "Portland, OR" {
		t.Errorf("Search.Location round trip failed, got %q", loaded.Search.Location)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("Logging.Level round trip failed, got %q", loaded.Logging.Level)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if cfg.AI.TimeoutSeconds != Default().AI.TimeoutSeconds {
		t.Error("expected default config for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte("ai: [not: a: mapping"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SMARTASSIST_AI_URL", "http://env-host:9000/complete")
	t.Setenv("SMARTASSIST_AI_TOKEN", "env-token")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.URL != "http://env-host:9000/complete" {
		t.Errorf("env URL override not applied, got %q", cfg.AI.URL)
	}
	if cfg.AI.Token != "env-token" {
		t.Errorf("env token override not applied, got %q", cfg.AI.Token)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "deeper", "config.yaml")
	if err := Default().Save(cfgPath); err != nil {
		t.Fatalf("Save should create parent directories: %v", err)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config file missing after Save: %v", err)
	}
}
