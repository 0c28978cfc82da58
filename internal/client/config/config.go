package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/blogit/internal/flagx"
)

// Store drivers understood by the client.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// QuoteAPIKeyEnv names the environment variable that can carry the quote API key.
const QuoteAPIKeyEnv = "BLOGIT_QUOTES_API_KEY"

// Config holds runtime settings for the BlogIT client.
//
// Units: all intervals are time.Duration. A zero RequestTimeout means no
// hard client-side timeout on backend calls.
type Config struct {
	BackendURL           string
	QuoteURL             string
	QuoteAPIKey          string
	PollInterval         time.Duration
	RestoreRetryInterval time.Duration
	RequestTimeout       time.Duration
	StoreDriver          string
	StoreDSN             string
	RedisAddr            string
	LogLevel             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:3000/api"
	c.QuoteURL = "https://api.api-ninjas.com/v1/quotes"
	c.PollInterval = 30 * time.Second
	c.RestoreRetryInterval = 5 * time.Second
	c.StoreDriver = StoreSQLite
	c.StoreDSN = "blogit.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.LogLevel = "info"
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend url is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.RestoreRetryInterval <= 0 {
		return fmt.Errorf("restore retry interval must be positive, got %s", c.RestoreRetryInterval)
	}
	switch c.StoreDriver {
	case StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	return nil
}

// LoadConfig constructs a Config from defaults, then overlays the optional
// config file, the environment and finally the command-line flags in args.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	if key := os.Getenv(QuoteAPIKeyEnv); key != "" {
		cfg.QuoteAPIKey = key
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
