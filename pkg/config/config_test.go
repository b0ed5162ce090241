package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "local.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestMustLoadDefaultPath(t *testing.T) {
	path := writeConfig(t, `
env: local
http:
  port: ":3001"
  timeout: 4s
postgres:
  url: "postgres://localhost:5432/orders"
kafka:
  brokers:
    - "localhost:9092"
checkout:
  oracle_timeout: 3s
  max_concurrency: 8
`)
	t.Setenv("CONFIG_PATH", "")

	cfg := MustLoad(path)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":3001", cfg.HTTP.Port)
	assert.Equal(t, "postgres://localhost:5432/orders", cfg.Postgres.URL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.Checkout.OracleTimeout)
	assert.Equal(t, 8, cfg.Checkout.MaxConcurrency)
}

func TestMustLoadEnvOverridesDefaultPath(t *testing.T) {
	path := writeConfig(t, `
env: test
http:
  port: ":9999"
`)
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad("./does/not/exist.yaml")

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, ":9999", cfg.HTTP.Port)
}
