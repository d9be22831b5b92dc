// Package ingestion loads and validates the JSON input files a pipeline run
// consumes: the company list, the user's preferences, and the user profile.
package ingestion

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobscout/internal/types"
)

var validate = validator.New()

// LoadCompanies reads a JSON array of companies, validating each entry and
// rejecting duplicate IDs.
func LoadCompanies(path string) ([]types.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read companies file %s: %w", path, err)
	}

	var companies []types.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, fmt.Errorf("failed to parse companies JSON: %w", err)
	}
	if len(companies) == 0 {
		return nil, fmt.Errorf("companies file %s contains no companies", path)
	}

	seen := make(map[string]bool, len(companies))
	for i, company := range companies {
		if err := validate.Struct(company); err != nil {
			return nil, fmt.Errorf("invalid company at index %d: %w", i, err)
		}
		if seen[company.ID] {
			return nil, fmt.Errorf("duplicate company id %q", company.ID)
		}
		seen[company.ID] = true
	}

	return companies, nil
}

// LoadPreferences reads the user preferences JSON. At least one skill is
// required; everything else is optional.
func LoadPreferences(path string) (types.UserPreferences, error) {
	var prefs types.UserPreferences
	if err := loadJSON(path, &prefs); err != nil {
		return prefs, err
	}
	if len(prefs.Skills) == 0 {
		return prefs, fmt.Errorf("preferences file %s lists no skills", path)
	}
	if prefs.SalaryMin > 0 && prefs.SalaryMax > 0 && prefs.SalaryMin > prefs.SalaryMax {
		return prefs, fmt.Errorf("preferences file %s has salary_min above salary_max", path)
	}
	return prefs, nil
}

// LoadProfile reads the user profile JSON. An absent path yields an empty
// profile; the scorer then falls back to its defaults.
func LoadProfile(path string) (types.UserProfile, error) {
	var profile types.UserProfile
	if path == "" {
		return profile, nil
	}
	if err := loadJSON(path, &profile); err != nil {
		return profile, err
	}
	return profile, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
