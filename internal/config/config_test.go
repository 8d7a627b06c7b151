package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.ManticoreHost)
	assert.Equal(t, 9308, cfg.ManticorePort)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.Equal(t, SynonymsSourceManticore, cfg.SynonymsSource)
	assert.Equal(t, "http://localhost:9308", cfg.ManticoreURL())
	assert.False(t, cfg.Quiet)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MANTICORE_HOST", "manticore")
	t.Setenv("MANTICORE_PORT", "19308")
	t.Setenv("DOWNLOAD_TIMEOUT", "90s")
	t.Setenv("WORKERS_COUNT", "not a number")
	t.Setenv("DATA_DIR", "/var/lib/addresser")
	t.Setenv("PAYLOAD_FILE", "gar.ndjson")
	t.Setenv("SYNONYMS_SOURCE", "yaml")
	t.Setenv("QUIET", "yes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://manticore:19308", cfg.ManticoreURL())
	assert.Equal(t, 90*time.Second, cfg.DownloadTimeout)
	assert.Equal(t, 4, cfg.WorkersCount, "invalid values fall back to defaults")
	assert.Equal(t, "/var/lib/addresser/gar.ndjson", cfg.PayloadPath())
	assert.Equal(t, SynonymsSourceYAML, cfg.SynonymsSource)
	assert.False(t, cfg.Quiet, "strconv.ParseBool does not accept yes")
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"zero batch", "BATCH_SIZE", "0"},
		{"negative workers", "WORKERS_COUNT", "-1"},
		{"unknown synonyms source", "SYNONYMS_SOURCE", "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestPayloadPathAbsolute(t *testing.T) {
	cfg := &Config{DataDir: "./data", PayloadFile: "/tmp/dump.ndjson"}
	assert.Equal(t, "/tmp/dump.ndjson", cfg.PayloadPath())
}
