package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscout/internal/pipeline"
	"github.com/jonathan/jobscout/internal/types"
)

func TestLoadRunConfig_FlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()

	companiesPath := filepath.Join(dir, "companies.json")
	require.NoError(t, os.WriteFile(companiesPath, []byte(`[]`), 0o644))

	configPath := filepath.Join(dir, "config.json")
	configJSON := `{
		"companies": "` + companiesPath + `",
		"api_key": "from-config",
		"batch_size": 2,
		"redis_url": "redis://localhost:6379"
	}`
	require.NoError(t, os.WriteFile(configPath, []byte(configJSON), 0o644))

	runConfigPath = configPath
	defer func() { runConfigPath = "" }()

	require.NoError(t, runCommand.ParseFlags([]string{
		"--api-key", "from-flag",
		"--batch-size", "5",
	}))

	cfg, err := loadRunConfig(runCommand)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.APIKey, "explicit flag should win over config file")
	assert.Equal(t, 5, cfg.BatchSize, "explicit flag should win over config file")
	assert.Equal(t, companiesPath, cfg.Companies, "config value should survive when flag is unset")
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
}

func TestLoadRunConfig_MissingConfigFile(t *testing.T) {
	runConfigPath = filepath.Join(t.TempDir(), "does-not-exist.json")
	defer func() { runConfigPath = "" }()

	_, err := loadRunConfig(runCommand)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestWriteReport_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	result := &pipeline.RunResult{
		Matches: []types.JobMatch{
			{Job: types.JobListing{ID: "j1", Title: "Platform Engineer"}, MatchScore: 0.91},
		},
	}

	require.NoError(t, writeReport(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded pipeline.RunResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Matches, 1)
	assert.Equal(t, "j1", decoded.Matches[0].Job.ID)
	assert.InDelta(t, 0.91, decoded.Matches[0].MatchScore, 1e-9)
}
