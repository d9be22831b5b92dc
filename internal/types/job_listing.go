package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmploymentType is the closed enumeration of employment arrangements.
type EmploymentType string

// Employment type values
const (
	FullTime   EmploymentType = "full-time"
	PartTime   EmploymentType = "part-time"
	Contract   EmploymentType = "contract"
	Internship EmploymentType = "internship"
	Freelance  EmploymentType = "freelance"
)

// RemoteType is the closed enumeration of workplace arrangements.
type RemoteType string

// Remote type values
const (
	OnSite RemoteType = "on-site"
	Remote RemoteType = "remote"
	Hybrid RemoteType = "hybrid"
)

// ExperienceLevel is the ordinal seniority scale for a listing.
type ExperienceLevel string

// Experience level values, ordered from junior to senior
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelLead      ExperienceLevel = "lead"
	LevelExecutive ExperienceLevel = "executive"
)

// experienceOrder maps levels to ordinal positions for distance scoring.
var experienceOrder = map[ExperienceLevel]int{
	LevelEntry:     0,
	LevelMid:       1,
	LevelSenior:    2,
	LevelLead:      3,
	LevelExecutive: 4,
}

// Ordinal returns the position of the level on the seniority scale.
// Unknown levels map to mid.
func (l ExperienceLevel) Ordinal() int {
	if idx, ok := experienceOrder[l]; ok {
		return idx
	}
	return experienceOrder[LevelMid]
}

// JobListing is the canonical structured representation of one job opening.
// Produced by exactly one extraction strategy per run; results from different
// strategies are never merged.
type JobListing struct {
	ID               string          `json:"id" validate:"required"`
	Title            string          `json:"title" validate:"required"`
	CompanyID        string          `json:"company_id" validate:"required"`
	Description      string          `json:"description,omitempty"`
	Requirements     []string        `json:"requirements,omitempty"`
	NiceToHave       []string        `json:"nice_to_have,omitempty"`
	Responsibilities []string        `json:"responsibilities,omitempty"`
	Location         string          `json:"location,omitempty"`
	EmploymentType   EmploymentType  `json:"employment_type" validate:"oneof=full-time part-time contract internship freelance"`
	RemoteType       RemoteType      `json:"remote_type" validate:"oneof=on-site remote hybrid"`
	ExperienceLevel  ExperienceLevel `json:"experience_level" validate:"oneof=entry mid senior lead executive"`
	ApplicationURL   string          `json:"application_url,omitempty"`
	SalaryMin        int             `json:"salary_min,omitempty"`
	SalaryMax        int             `json:"salary_max,omitempty"`
	Currency         string          `json:"currency,omitempty"`
	Technologies     []string        `json:"technologies,omitempty"`
	Department       string          `json:"department,omitempty"`
}

var listingValidator = validator.New()

// Validate checks the listing against the closed enumerations and required fields.
func (j *JobListing) Validate() error {
	return listingValidator.Struct(j)
}

// NormalizeEmploymentType maps loose extractor output onto the closed enum.
// Unrecognized values default to full-time.
func NormalizeEmploymentType(s string) EmploymentType {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))) {
	case "full-time", "fulltime", "full time", "permanent":
		return FullTime
	case "part-time", "parttime", "part time":
		return PartTime
	case "contract", "contractor", "fixed-term":
		return Contract
	case "internship", "intern":
		return Internship
	case "freelance", "freelancer":
		return Freelance
	default:
		return FullTime
	}
}

// NormalizeRemoteType maps loose extractor output onto the closed enum.
// Unrecognized values default to on-site.
func NormalizeRemoteType(s string) RemoteType {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))) {
	case "remote", "fully remote", "remote-first", "work from home", "wfh":
		return Remote
	case "hybrid", "flexible":
		return Hybrid
	case "on-site", "onsite", "on site", "in-office", "office":
		return OnSite
	default:
		return OnSite
	}
}

// NormalizeExperienceLevel maps loose extractor output onto the ordinal scale.
// Unrecognized values default to mid.
func NormalizeExperienceLevel(s string) ExperienceLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry", "entry-level", "junior", "jr", "graduate", "intern":
		return LevelEntry
	case "mid", "mid-level", "intermediate", "associate":
		return LevelMid
	case "senior", "sr", "senior-level":
		return LevelSenior
	case "lead", "staff", "principal", "manager":
		return LevelLead
	case "executive", "director", "vp", "head", "c-level":
		return LevelExecutive
	default:
		return LevelMid
	}
}
