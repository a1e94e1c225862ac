// Package config loads SDK configuration from a YAML file with
// environment variable overrides.
//
// Precedence: defaults → YAML file → FLEXSTACK_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete SDK configuration.
type Config struct {
	// BaseURL is the platform root, e.g. "https://api.flexstack.ai".
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request through the default transport. The
	// SDK itself enforces no timeout when a custom http.Client is
	// injected.
	Timeout time.Duration `yaml:"timeout"`

	// Headers are sent with every request; commonly an auth token.
	// They are copied into each client, never shared mutable state.
	Headers map[string]string `yaml:"headers"`

	// Log configures the SDK's debug logging.
	Log LogConfig `yaml:"log"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is a zap level string: debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		Timeout: 120 * time.Second,
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file and applies environment overrides on top
// of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// FromEnv builds a configuration from defaults plus environment overrides,
// for callers that carry no config file.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from FLEXSTACK_* environment variables:
// FLEXSTACK_BASE_URL, FLEXSTACK_TIMEOUT (Go duration), FLEXSTACK_API_KEY
// (becomes an Authorization bearer header), FLEXSTACK_LOG_LEVEL.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv("FLEXSTACK_BASE_URL"); ok {
		c.BaseURL = v
	}
	if v, ok := os.LookupEnv("FLEXSTACK_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		} else if secs, err := strconv.Atoi(v); err == nil {
			c.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v, ok := os.LookupEnv("FLEXSTACK_API_KEY"); ok {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers["Authorization"] = "Bearer " + v
	}
	if v, ok := os.LookupEnv("FLEXSTACK_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required (set base_url or FLEXSTACK_BASE_URL)")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
