package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile_JSON(t *testing.T) {
	path := writeTempFile(t, "cfg.json", `{
		"backend_url": "http://json:3000/api",
		"poll_interval": "10s",
		"request_timeout": 2000000000
	}`)

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseFile(cfg, path))

	assert.Equal(t, "http://json:3000/api", cfg.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver, "unset keys keep defaults")
}

func Test_parseFile_YAML(t *testing.T) {
	path := writeTempFile(t, "cfg.yaml", "store_driver: redis\nredis_addr: cache:6379\nrestore_retry_interval: 1m\n")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseFile(cfg, path))

	assert.Equal(t, StoreRedis, cfg.StoreDriver)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, time.Minute, cfg.RestoreRetryInterval)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
}

func Test_parseFile_Errors(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, parseFile(cfg, ""), "no path means no file")
	require.Error(t, parseFile(cfg, filepath.Join(t.TempDir(), "missing.json")))
	require.Error(t, parseFile(cfg, writeTempFile(t, "bad.json", `{ not json`)))
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := writeTempFile(t, "cfg.yml", "backend_url: http://file/api\npoll_interval: 20s\n")

	cfg, err := LoadConfig([]string{"-config", path, "-i", "3"})
	require.NoError(t, err)

	assert.Equal(t, "http://file/api", cfg.BackendURL)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
}
