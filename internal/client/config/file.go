package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/blogit/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Unset keys keep
// whatever value the Config already holds.
type FileConfig struct {
	BackendURL           *string         `json:"backend_url" yaml:"backend_url"`
	QuoteURL             *string         `json:"quote_url" yaml:"quote_url"`
	QuoteAPIKey          *string         `json:"quote_api_key" yaml:"quote_api_key"`
	PollInterval         *timex.Duration `json:"poll_interval" yaml:"poll_interval"`
	RestoreRetryInterval *timex.Duration `json:"restore_retry_interval" yaml:"restore_retry_interval"`
	RequestTimeout       *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	StoreDriver          *string         `json:"store_driver" yaml:"store_driver"`
	StoreDSN             *string         `json:"store_dsn" yaml:"store_dsn"`
	RedisAddr            *string         `json:"redis_addr" yaml:"redis_addr"`
	LogLevel             *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with values read from path. YAML is used for
// .yaml/.yml files, JSON otherwise. An empty path is a no-op.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.BackendURL, fc.BackendURL)
	setString(&cfg.QuoteURL, fc.QuoteURL)
	setString(&cfg.QuoteAPIKey, fc.QuoteAPIKey)
	setString(&cfg.StoreDriver, fc.StoreDriver)
	setString(&cfg.StoreDSN, fc.StoreDSN)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.LogLevel, fc.LogLevel)

	if fc.PollInterval != nil {
		cfg.PollInterval = fc.PollInterval.Duration
	}
	if fc.RestoreRetryInterval != nil {
		cfg.RestoreRetryInterval = fc.RestoreRetryInterval.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
