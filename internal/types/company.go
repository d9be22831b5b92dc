// Package types provides type definitions for structured data used throughout the jobscout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Company is the immutable identity of a company fed into the pipeline.
// Companies are created externally; the pipeline only reads them.
type Company struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	WebsiteURL string `json:"website_url,omitempty"`
	Industry   string `json:"industry,omitempty"`
}

// RemotePreference expresses how strongly a user prefers remote work.
type RemotePreference string

// Remote preference values
const (
	RemoteOnly     RemotePreference = "remote_only"
	RemoteFriendly RemotePreference = "remote_friendly"
	OnSiteOnly     RemotePreference = "on_site_only"
	NoPreference   RemotePreference = "no_preference"
)

// UserPreferences captures what the user is looking for in a job.
// Supplied per pipeline run and never mutated by the pipeline.
type UserPreferences struct {
	Skills              []string         `json:"skills"`
	RequiredSkills      []string         `json:"required_skills,omitempty"`
	Locations           []string         `json:"locations,omitempty"`
	JobTypes            []string         `json:"job_types,omitempty"`
	RemotePreference    RemotePreference `json:"remote_preference,omitempty"`
	SalaryMin           int              `json:"salary_min,omitempty"`
	SalaryMax           int              `json:"salary_max,omitempty"`
	Currency            string           `json:"currency,omitempty"`
	PreferredIndustries []string         `json:"preferred_industries,omitempty"`
}

// UserProfile holds the candidate background used for experience inference
// and AI fit analysis. Only the fields the scorer consumes are modeled here;
// profile persistence lives outside the pipeline.
type UserProfile struct {
	Name            string   `json:"name,omitempty"`
	Headline        string   `json:"headline,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	YearsExperience int      `json:"years_experience,omitempty"`
	Location        string   `json:"location,omitempty"`
}

// Clamp01 bounds a score to the [0,1] range. Every confidence and score
// field in the data model passes through this before being stored.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
