package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/blogit/internal/flagx"
)

var knownFlags = []string{"-a", "-q", "-k", "-i", "-r", "-t", "-s", "-d", "-redis", "-l"}

// parseFlags overlays cfg with command-line flags. Interval flags are whole
// seconds. Arguments that belong to other stages (-c/-config) are filtered
// out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("blogit", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.QuoteURL, "q", cfg.QuoteURL, "quote service URL")
	fs.StringVar(&cfg.QuoteAPIKey, "k", cfg.QuoteAPIKey, "quote service API key")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "notification poll interval (in seconds)")
	restoreInterval := fs.Int("r", int(cfg.RestoreRetryInterval.Seconds()), "session restore retry interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "hard backend request timeout (in seconds, 0 = none)")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "local store driver (sqlite|redis)")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "sqlite database file")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "redis address for the redis store")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.PollInterval = time.Duration(*pollInterval) * time.Second
		case "r":
			cfg.RestoreRetryInterval = time.Duration(*restoreInterval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
	return nil
}
