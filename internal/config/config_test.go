package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "key-123",
		"search_cx": "cx-1",
		"batch_size": 5,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, "cx-1", cfg.SearchCX)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConfig(t, `{not json`)
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{BatchSize: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{ExtractionDelay: -3}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Companies: filepath.Join(t.TempDir(), "nope.json")}
	assert.Error(t, cfg.Validate())

	cfg = &Config{BatchSize: 3}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "explicit", BatchSize: 0}
	merged := cfg.MergeWithDefaults(Config{APIKey: "default", RedisURL: "redis://localhost:6379", BatchSize: 3})

	assert.Equal(t, "explicit", merged.APIKey, "explicit value wins over default")
	assert.Equal(t, "redis://localhost:6379", merged.RedisURL)
	assert.Equal(t, 3, merged.BatchSize)
}
