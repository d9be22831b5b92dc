// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Companies   string `json:"companies,omitempty"`   // Path to companies JSON file
	Preferences string `json:"preferences,omitempty"` // Path to user preferences JSON file
	Profile     string `json:"profile,omitempty"`     // Path to user profile JSON file
	Output      string `json:"output,omitempty"`      // Path to write the match report JSON

	// Collaborators
	APIKey          string `json:"api_key,omitempty"`          // Gemini API key
	SearchAPIKey    string `json:"search_api_key,omitempty"`   // Google Custom Search API key
	SearchCX        string `json:"search_cx,omitempty"`        // Google Custom Search engine ID
	FetchProxyURL   string `json:"fetch_proxy_url,omitempty"`  // Fetch proxy collaborator base URL
	AgentURL        string `json:"agent_url,omitempty"`        // Browser-automation agent base URL
	RedisURL        string `json:"redis_url,omitempty"`        // Redis URL for shared caching
	UseBrowser      bool   `json:"use_browser,omitempty"`      // Use headless browser for SPA sites
	UseVision       bool   `json:"use_vision,omitempty"`       // Enable the vision navigation strategy
	Verbose         bool   `json:"verbose,omitempty"`          // Print detailed debug information
	BatchSize       int    `json:"batch_size,omitempty"`       // Companies per discovery batch
	ExtractionDelay int    `json:"extraction_delay,omitempty"` // Seconds between extractions
	MaxCompanies    int    `json:"max_companies,omitempty"`    // Cap on companies processed per run
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.BatchSize < 0 {
		return fmt.Errorf("config error: 'batch_size' must be non-negative")
	}
	if c.ExtractionDelay < 0 {
		return fmt.Errorf("config error: 'extraction_delay' must be non-negative")
	}
	if c.MaxCompanies < 0 {
		return fmt.Errorf("config error: 'max_companies' must be non-negative")
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"companies":   c.Companies,
		"preferences": c.Preferences,
		"profile":     c.Profile,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Companies == "" {
		result.Companies = defaults.Companies
	}
	if result.Preferences == "" {
		result.Preferences = defaults.Preferences
	}
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchCX == "" {
		result.SearchCX = defaults.SearchCX
	}
	if result.FetchProxyURL == "" {
		result.FetchProxyURL = defaults.FetchProxyURL
	}
	if result.AgentURL == "" {
		result.AgentURL = defaults.AgentURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}

	// Int fields: use default if zero
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}
	if result.ExtractionDelay == 0 {
		result.ExtractionDelay = defaults.ExtractionDelay
	}
	if result.MaxCompanies == 0 {
		result.MaxCompanies = defaults.MaxCompanies
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
