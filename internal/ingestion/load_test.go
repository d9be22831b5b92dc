package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCompanies(t *testing.T) {
	path := writeFile(t, "companies.json", `[
		{"id": "c1", "name": "Acme", "website_url": "https://acme.io"},
		{"id": "c2", "name": "Globex"}
	]`)

	companies, err := LoadCompanies(path)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Acme", companies[0].Name)
}

func TestLoadCompanies_Errors(t *testing.T) {
	t.Run("missing required field", func(t *testing.T) {
		path := writeFile(t, "companies.json", `[{"id": "c1"}]`)
		_, err := LoadCompanies(path)
		assert.Error(t, err)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		path := writeFile(t, "companies.json", `[
			{"id": "c1", "name": "Acme"},
			{"id": "c1", "name": "Acme Again"}
		]`)
		_, err := LoadCompanies(path)
		assert.ErrorContains(t, err, "duplicate company id")
	})

	t.Run("empty list", func(t *testing.T) {
		path := writeFile(t, "companies.json", `[]`)
		_, err := LoadCompanies(path)
		assert.Error(t, err)
	})
}

func TestLoadPreferences(t *testing.T) {
	path := writeFile(t, "prefs.json", `{
		"skills": ["go", "kubernetes"],
		"remote_preference": "remote_only",
		"salary_min": 60000,
		"salary_max": 90000
	}`)

	prefs, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "kubernetes"}, prefs.Skills)

	t.Run("no skills", func(t *testing.T) {
		empty := writeFile(t, "empty.json", `{}`)
		_, err := LoadPreferences(empty)
		assert.Error(t, err)
	})

	t.Run("inverted salary range", func(t *testing.T) {
		bad := writeFile(t, "bad.json", `{"skills": ["go"], "salary_min": 90000, "salary_max": 60000}`)
		_, err := LoadPreferences(bad)
		assert.Error(t, err)
	})
}

func TestLoadProfile(t *testing.T) {
	profile, err := LoadProfile("")
	require.NoError(t, err)
	assert.Zero(t, profile.YearsExperience)

	path := writeFile(t, "profile.json", `{"name": "Dana", "years_experience": 6}`)
	profile, err = LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, profile.YearsExperience)
}
