// Package config loads runtime configuration for the BlogIT client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml/.yml are read as YAML, anything else as JSON.
//  3. BLOGIT_QUOTES_API_KEY from the environment.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string      backend base URL
//	-q string      quote service URL
//	-k string      quote service API key
//	-i int         notification poll interval (seconds)
//	-r int         session restore retry interval (seconds)
//	-t int         hard backend request timeout (seconds, 0 = none)
//	-s string      local store driver: sqlite | redis
//	-d string      sqlite database file
//	-redis string  redis address
//	-l string      log level
//
// # File schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	backend_url: http://localhost:3000/api
//	poll_interval: 30s
//	store_driver: sqlite
//	store_dsn: blogit.db
package config
