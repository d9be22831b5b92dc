package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmploymentType(t *testing.T) {
	tests := []struct {
		input    string
		expected EmploymentType
	}{
		{"Full-Time", FullTime},
		{"full time", FullTime},
		{"FULLTIME", FullTime},
		{"permanent", FullTime},
		{"part_time", PartTime},
		{"Contract", Contract},
		{"intern", Internship},
		{"freelancer", Freelance},
		{"", FullTime},
		{"gig", FullTime}, // unknown falls back
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmploymentType(tt.input))
		})
	}
}

func TestNormalizeRemoteType(t *testing.T) {
	tests := []struct {
		input    string
		expected RemoteType
	}{
		{"Remote", Remote},
		{"fully remote", Remote},
		{"WFH", Remote},
		{"Hybrid", Hybrid},
		{"flexible", Hybrid},
		{"onsite", OnSite},
		{"in-office", OnSite},
		{"", OnSite},
		{"moon base", OnSite}, // unknown falls back
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeRemoteType(tt.input))
		})
	}
}

func TestNormalizeExperienceLevel(t *testing.T) {
	assert.Equal(t, LevelEntry, NormalizeExperienceLevel("Junior"))
	assert.Equal(t, LevelSenior, NormalizeExperienceLevel("sr"))
	assert.Equal(t, LevelLead, NormalizeExperienceLevel("Staff"))
	assert.Equal(t, LevelExecutive, NormalizeExperienceLevel("Director"))
	assert.Equal(t, LevelMid, NormalizeExperienceLevel("unknown"))
}

func TestExperienceLevelOrdinal(t *testing.T) {
	assert.Equal(t, 0, LevelEntry.Ordinal())
	assert.Equal(t, 2, LevelSenior.Ordinal())
	assert.Equal(t, 4, LevelExecutive.Ordinal())
	// unknown level treated as mid
	assert.Equal(t, 1, ExperienceLevel("wizard").Ordinal())
}

func TestJobListingValidate(t *testing.T) {
	listing := &JobListing{
		ID:              "job_1",
		Title:           "Backend Engineer",
		CompanyID:       "c1",
		EmploymentType:  FullTime,
		RemoteType:      Remote,
		ExperienceLevel: LevelSenior,
	}
	require.NoError(t, listing.Validate())
}

func TestJobListingValidate_RejectsOpenEnumValues(t *testing.T) {
	listing := &JobListing{
		ID:              "job_1",
		Title:           "Backend Engineer",
		CompanyID:       "c1",
		EmploymentType:  EmploymentType("gig-economy"),
		RemoteType:      Remote,
		ExperienceLevel: LevelSenior,
	}
	require.Error(t, listing.Validate())

	listing.EmploymentType = FullTime
	listing.RemoteType = RemoteType("sometimes")
	require.Error(t, listing.Validate())
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(1.7))
	assert.Equal(t, 0.42, Clamp01(0.42))
}

func TestRecommendationForScore(t *testing.T) {
	assert.Equal(t, HighlyRecommended, RecommendationForScore(0.80))
	assert.Equal(t, Recommended, RecommendationForScore(0.65))
	assert.Equal(t, Consider, RecommendationForScore(0.40))
	assert.Equal(t, NotRecommended, RecommendationForScore(0.39))
}
