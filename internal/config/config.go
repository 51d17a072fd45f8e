// Package config loads and saves the assistant's YAML configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full assistant configuration.
type Config struct {
	Version int           `yaml:"version"`
	AI      AIConfig      `yaml:"ai"`
	Storage StorageConfig `yaml:"storage"`
	Parsing ParsingConfig `yaml:"parsing"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// AIConfig configures the remote model used for intent resolution. Leaving
// URL empty disables the AI resolver entirely; the keyword cascade then
// handles every utterance.
type AIConfig struct {
	URL                    string `yaml:"url"`
	Token                  string `yaml:"token"`
	Model                  string `yaml:"model"`
	TimeoutSeconds         int    `yaml:"timeout_seconds"`
	FailureThreshold       int    `yaml:"failure_threshold"`
	RecoveryTimeoutSeconds int    `yaml:"recovery_timeout_seconds"`
}

// Timeout is the per-request ceiling on provider calls.
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RecoveryTimeout is how long the circuit breaker stays open.
func (c AIConfig) RecoveryTimeout() time.Duration {
	return time.Duration(c.RecoveryTimeoutSeconds) * time.Second
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ParsingConfig tunes the time-expression parser.
type ParsingConfig struct {
	// AssumePMHours treats a bare "at 3" as 3 PM for hours 1 through 7.
	AssumePMHours bool `yaml:"assume_pm_hours"`
	// WeekdayRollsForward pushes "friday" said on a Friday to next week.
	WeekdayRollsForward bool `yaml:"weekday_rolls_forward"`
}

// SearchConfig configures the web search plugin.
type SearchConfig struct {
	Location       string `yaml:"location"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Limit          int    `yaml:"limit"`
}

// Timeout is the ceiling on one search request.
func (c SearchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: 1,
		AI: AIConfig{
			TimeoutSeconds:         30,
			FailureThreshold:       3,
			RecoveryTimeoutSeconds: 30,
		},
		Storage: StorageConfig{
			Path: defaultDBPath(),
		},
		Parsing: ParsingConfig{
			AssumePMHours:       true,
			WeekdayRollsForward: true,
		},
		Search: SearchConfig{
			TimeoutSeconds: 10,
			Limit:          5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from path, falling back to
// ~/.smartassist/config.yaml. A missing file yields the defaults; secrets
// can always be supplied through the environment instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".smartassist", "config.yaml")
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".smartassist", "assistant.db")
}

// applyEnv lets the environment override secrets and endpoints so they
// never have to live in the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("SMARTASSIST_AI_URL"); v != "" {
		c.AI.URL = v
	}
	if v := os.Getenv("SMARTASSIST_AI_TOKEN"); v != "" {
		c.AI.Token = v
	}
	if v := os.Getenv("SMARTASSIST_AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("SMARTASSIST_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
}
