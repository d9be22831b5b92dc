package extraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscout/internal/types"
)

var acme = types.Company{ID: "c1", Name: "Acme", WebsiteURL: "https://acme.io"}

// stubStrategy returns canned output and records whether it ran.
type stubStrategy struct {
	name  string
	jobs  []types.JobListing
	conf  float64
	err   error
	calls int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(_ context.Context, _ types.Company, _ string) ([]types.JobListing, float64, error) {
	s.calls++
	return s.jobs, s.conf, s.err
}

func listing(title string) types.JobListing {
	return types.JobListing{
		ID:              "j-" + title,
		Title:           title,
		CompanyID:       acme.ID,
		EmploymentType:  types.FullTime,
		RemoteType:      types.Remote,
		ExperienceLevel: types.LevelMid,
	}
}

func TestCascade_FirstNonEmptyStrategyWins(t *testing.T) {
	first := &stubStrategy{name: "first", jobs: []types.JobListing{listing("Backend Engineer")}, conf: 0.9}
	second := &stubStrategy{name: "second", jobs: []types.JobListing{listing("Other")}, conf: 0.8}
	cascade := NewCascade(nil, first, second)

	result, err := cascade.Extract(context.Background(), acme, "https://acme.io/careers")
	require.NoError(t, err)

	assert.Equal(t, "first", result.Method)
	assert.Len(t, result.Jobs, 1)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later strategy must not run after a non-empty result")
}

func TestCascade_EmptyAndFailingStrategiesFallThrough(t *testing.T) {
	empty := &stubStrategy{name: "empty"}
	failing := &stubStrategy{name: "failing", err: assert.AnError}
	winner := &stubStrategy{name: "winner", jobs: []types.JobListing{listing("DevOps Engineer")}, conf: 0.5}
	cascade := NewCascade(nil, empty, failing, winner)

	result, err := cascade.Extract(context.Background(), acme, "https://acme.io/careers")
	require.NoError(t, err)

	assert.Equal(t, "winner", result.Method)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 1, failing.calls)
}

func TestCascade_ExhaustedWhenAllStrategiesComeUpEmpty(t *testing.T) {
	cascade := NewCascade(nil,
		&stubStrategy{name: "a"},
		&stubStrategy{name: "b", err: assert.AnError},
	)

	result, err := cascade.Extract(context.Background(), acme, "https://acme.io/careers")
	require.NoError(t, err)

	assert.Equal(t, MethodExhausted, result.Method)
	assert.Empty(t, result.Jobs)
	assert.NotNil(t, result.Jobs)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestCascade_ResultIsCached(t *testing.T) {
	strategy := &stubStrategy{name: "only", jobs: []types.JobListing{listing("Engineer")}, conf: 0.9}
	cascade := NewCascade(nil, strategy)
	ctx := context.Background()

	first, err := cascade.Extract(ctx, acme, "https://acme.io/careers")
	require.NoError(t, err)
	second, err := cascade.Extract(ctx, acme, "https://acme.io/careers")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, strategy.calls)
}

func TestCascade_CancelledRunIsNotCached(t *testing.T) {
	strategy := &stubStrategy{name: "only", jobs: []types.JobListing{listing("Engineer")}, conf: 0.9}
	cascade := NewCascade(nil, strategy)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := cascade.Extract(cancelled, acme, "https://acme.io/careers")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, MethodExhausted, result.Method)
	assert.Equal(t, 0, strategy.calls)

	recovered, err := cascade.Extract(context.Background(), acme, "https://acme.io/careers")
	require.NoError(t, err)
	assert.Equal(t, "only", recovered.Method)
	assert.Len(t, recovered.Jobs, 1)
	assert.Equal(t, 1, strategy.calls)
}

func TestCascade_ConfidenceClamped(t *testing.T) {
	strategy := &stubStrategy{name: "hot", jobs: []types.JobListing{listing("Engineer")}, conf: 1.7}
	cascade := NewCascade(nil, strategy)

	result, err := cascade.Extract(context.Background(), acme, "https://acme.io/careers")
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestEnsureApplicationURL(t *testing.T) {
	t.Run("plausible URL kept", func(t *testing.T) {
		job := listing("Engineer")
		job.ApplicationURL = "https://acme.io/apply/engineer"
		ensureApplicationURL(&job, "https://acme.io/careers", acme)
		assert.Equal(t, "https://acme.io/apply/engineer", job.ApplicationURL)
	})

	t.Run("ATS URL kept", func(t *testing.T) {
		job := listing("Engineer")
		job.ApplicationURL = "https://jobs.lever.co/acme/123"
		ensureApplicationURL(&job, "https://acme.io/careers", acme)
		assert.Equal(t, "https://jobs.lever.co/acme/123", job.ApplicationURL)
	})

	t.Run("ATS career page synthesizes template URL", func(t *testing.T) {
		job := listing("Engineer")
		job.ApplicationURL = ""
		ensureApplicationURL(&job, "https://boards.greenhouse.io/acme", acme)
		assert.Equal(t, "https://boards.greenhouse.io/acme", job.ApplicationURL)
	})

	t.Run("fallback to title slug under career page", func(t *testing.T) {
		job := listing("Senior Backend Engineer")
		job.Title = "Senior Backend Engineer"
		job.ApplicationURL = ""
		ensureApplicationURL(&job, "https://acme.io/careers/", acme)
		assert.Equal(t, "https://acme.io/careers/apply/senior-backend-engineer", job.ApplicationURL)
	})
}

func TestBuildListing_DefaultsAndValidation(t *testing.T) {
	job, err := buildListing(acme, rawListing{Title: "  Platform Engineer ", EmploymentType: "Full Time", RemoteType: "WFH", ExperienceLevel: "Staff"})
	require.NoError(t, err)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "Platform Engineer", job.Title)
	assert.Equal(t, acme.ID, job.CompanyID)
	assert.Equal(t, types.FullTime, job.EmploymentType)
	assert.Equal(t, types.Remote, job.RemoteType)
	assert.Equal(t, types.LevelLead, job.ExperienceLevel)

	_, err = buildListing(acme, rawListing{})
	assert.Error(t, err, "missing title must fail validation")
}

func TestBuildListings_DropsInvalidRecords(t *testing.T) {
	jobs := buildListings(acme, []rawListing{
		{Title: "Engineer"},
		{}, // no title
		{Title: "Developer"},
	})
	assert.Len(t, jobs, 2)
}
