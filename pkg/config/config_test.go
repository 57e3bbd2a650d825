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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "localhost:50055", cfg.Server.ListenAddr)
	assert.Equal(t, 5*time.Minute, cfg.Auth.VerifierTTL)
	assert.Equal(t, 30*time.Second, cfg.Auth.SweepInterval)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
server:
  listen_addr: "0.0.0.0:7070"
auth:
  verifier_ttl: 2m
  sweep_interval: 10s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "0.0.0.0:7070", cfg.Server.ListenAddr)
	assert.Equal(t, 2*time.Minute, cfg.Auth.VerifierTTL)
	assert.Equal(t, 10*time.Second, cfg.Auth.SweepInterval)

	// Unspecified values still get defaults.
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, 9464, cfg.Metrics.Port)
}

func TestEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_addr: "localhost:50055"
`)
	t.Setenv("ZKAUTHD_SERVER_LISTEN_ADDR", "127.0.0.1:6000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6000", cfg.Server.ListenAddr)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name, content string
	}{
		{"bad log level", "logging:\n  level: LOUD\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad listen addr", "server:\n  listen_addr: not-an-address\n"},
		{"metrics port out of range", "metrics:\n  port: 70000\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false), "must refuse to overwrite")
	assert.NoError(t, WriteDefault(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
