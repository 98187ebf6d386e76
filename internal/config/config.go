package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/quantplay/quantplay-go/pkg/logger"
)

// Environment variables consumed at startup.
const (
	EnvAPIKey     = "QUANTPLAY_API_KEY"
	EnvBaseURL    = "QUANTPLAY_BASE_URL"
	EnvTimeout    = "QUANTPLAY_TIMEOUT"
	EnvConfigFile = "QUANTPLAY_CONFIG"
)

// Config carries process-level settings for the MCP server. The SDK itself
// never reads the environment; everything here is resolved once at startup
// and handed to it as plain construction parameters.
type Config struct {
	APIKey         string        `yaml:"-"`
	BaseURL        string        `yaml:"base_url"`
	TimeoutSeconds int           `yaml:"timeout"`
	Log            logger.Config `yaml:"log"`
}

// Timeout returns the configured request timeout, or zero when unset.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load resolves configuration in increasing precedence: built-in defaults,
// then the optional YAML file named by QUANTPLAY_CONFIG, then environment
// variables. A .env file in the working directory is honored if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Log: logger.DefaultConfig(),
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	cfg.APIKey = os.Getenv(EnvAPIKey)
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, errors.Errorf("%s must be a positive number of seconds, got %q", EnvTimeout, v)
		}
		cfg.TimeoutSeconds = secs
	}

	if cfg.APIKey == "" {
		return nil, errors.Errorf("%s environment variable is required", EnvAPIKey)
	}
	return cfg, nil
}
