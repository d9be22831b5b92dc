package extraction

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/jobscout/internal/types"
)

// rawListing is the loose JSON shape collaborators produce before it is
// normalized into the canonical JobListing. Every field is optional except
// title; enum-valued fields are free text here.
type rawListing struct {
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	NiceToHave       []string `json:"nice_to_have,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Location         string   `json:"location,omitempty"`
	EmploymentType   string   `json:"employment_type,omitempty"`
	RemoteType       string   `json:"remote_type,omitempty"`
	ExperienceLevel  string   `json:"experience_level,omitempty"`
	ApplicationURL   string   `json:"application_url,omitempty"`
	SalaryMin        int      `json:"salary_min,omitempty"`
	SalaryMax        int      `json:"salary_max,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	Department       string   `json:"department,omitempty"`
}

// buildListing normalizes one raw record into a canonical JobListing with a
// fresh ID and closed-enum defaults for missing fields.
func buildListing(company types.Company, raw rawListing) (types.JobListing, error) {
	listing := types.JobListing{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(raw.Title),
		CompanyID:        company.ID,
		Description:      strings.TrimSpace(raw.Description),
		Requirements:     raw.Requirements,
		NiceToHave:       raw.NiceToHave,
		Responsibilities: raw.Responsibilities,
		Location:         strings.TrimSpace(raw.Location),
		EmploymentType:   types.NormalizeEmploymentType(raw.EmploymentType),
		RemoteType:       types.NormalizeRemoteType(raw.RemoteType),
		ExperienceLevel:  types.NormalizeExperienceLevel(raw.ExperienceLevel),
		ApplicationURL:   strings.TrimSpace(raw.ApplicationURL),
		SalaryMin:        raw.SalaryMin,
		SalaryMax:        raw.SalaryMax,
		Currency:         raw.Currency,
		Technologies:     raw.Technologies,
		Department:       strings.TrimSpace(raw.Department),
	}
	if err := listing.Validate(); err != nil {
		return types.JobListing{}, err
	}
	return listing, nil
}

// buildListings normalizes a batch, dropping records that fail validation
// (typically missing titles) instead of failing the whole strategy.
func buildListings(company types.Company, raws []rawListing) []types.JobListing {
	listings := make([]types.JobListing, 0, len(raws))
	for _, raw := range raws {
		listing, err := buildListing(company, raw)
		if err != nil {
			continue
		}
		listings = append(listings, listing)
	}
	return listings
}
