package matching

import (
	"context"
	"sort"

	"github.com/jonathan/jobscout/internal/types"
)

// Axis thresholds above which an axis contributes a match reason.
const (
	strongSkills   = 0.7
	strongLocation = 0.8
	strongSalary   = 0.7
	strongRemote   = 0.8
)

// Scorer combines the rule-based axes with the model fit judgment.
type Scorer struct {
	analyzer FitAnalyzer
	weights  Weights
}

// NewScorer creates a scorer. analyzer may be nil, in which case every match
// carries the degraded fit analysis. weights of nil use the defaults.
func NewScorer(analyzer FitAnalyzer, weights *Weights) *Scorer {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}
	return &Scorer{analyzer: analyzer, weights: w}
}

// Score rates one listing against the user. It never fails: an analyzer
// error degrades the overall-fit axis instead of propagating.
func (s *Scorer) Score(ctx context.Context, job types.JobListing, profile types.UserProfile, prefs types.UserPreferences) types.JobMatch {
	breakdown := types.MatchBreakdown{
		Skills:         types.Clamp01(skillsScore(job, prefs)),
		Location:       types.Clamp01(locationScore(job, prefs)),
		Experience:     types.Clamp01(experienceScore(job, profile)),
		Industry:       types.Clamp01(industryScore(job, prefs)),
		EmploymentType: types.Clamp01(employmentTypeScore(job, prefs)),
		Remote:         types.Clamp01(remoteScore(job, prefs)),
		Salary:         types.Clamp01(salaryScore(job, prefs)),
	}

	fit := DegradedFit()
	if s.analyzer != nil {
		if analysis, err := s.analyzer.AnalyzeFit(ctx, job, profile, prefs); err == nil {
			fit = analysis
		}
	}
	breakdown.OverallFit = types.Clamp01(fit.Score)

	score := types.Clamp01(
		breakdown.Skills*s.weights.Skills +
			breakdown.Location*s.weights.Location +
			breakdown.Experience*s.weights.Experience +
			breakdown.Industry*s.weights.Industry +
			breakdown.EmploymentType*s.weights.EmploymentType +
			breakdown.Remote*s.weights.Remote +
			breakdown.Salary*s.weights.Salary +
			breakdown.OverallFit*s.weights.OverallFit,
	)

	return types.JobMatch{
		Job:            job,
		MatchScore:     score,
		MatchBreakdown: breakdown,
		MatchReasons:   buildReasons(breakdown, fit),
		Concerns:       fit.Concerns,
		Recommendation: types.RecommendationForScore(score),
	}
}

// MatchJobs scores every listing independently and returns matches sorted by
// score descending. One listing's analyzer failure never blocks the rest.
func (s *Scorer) MatchJobs(ctx context.Context, jobs []types.JobListing, profile types.UserProfile, prefs types.UserPreferences) []types.JobMatch {
	matches := make([]types.JobMatch, 0, len(jobs))
	for _, job := range jobs {
		matches = append(matches, s.Score(ctx, job, profile, prefs))
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	return matches
}

// buildReasons concatenates strong-axis reasons with the model's reasons.
func buildReasons(breakdown types.MatchBreakdown, fit FitAnalysis) []string {
	var reasons []string
	if breakdown.Skills > strongSkills {
		reasons = append(reasons, "Strong skills match")
	}
	if breakdown.Location > strongLocation {
		reasons = append(reasons, "Location aligns with preferences")
	}
	if breakdown.Salary > strongSalary {
		reasons = append(reasons, "Salary range fits expectations")
	}
	if breakdown.Remote > strongRemote {
		reasons = append(reasons, "Work arrangement matches preference")
	}
	return append(reasons, fit.Reasons...)
}
