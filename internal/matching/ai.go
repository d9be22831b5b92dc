package matching

import (
	"context"
	"encoding/json"

	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/prompts"
	"github.com/jonathan/jobscout/internal/types"
)

// Degraded fit values used when the analysis call or its parsing fails.
// Scoring never aborts on analyzer failure.
const degradedFitScore = 0.5

var (
	degradedFitReasons  = []string{"Unable to perform detailed analysis"}
	degradedFitConcerns = []string{"Analysis service unavailable"}
)

// FitAnalysis is the holistic model judgment of one job/candidate pairing.
type FitAnalysis struct {
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
	Concerns []string `json:"concerns"`
}

// FitAnalyzer produces the overall-fit axis. Injected so scoring is
// testable without a model.
type FitAnalyzer interface {
	AnalyzeFit(ctx context.Context, job types.JobListing, profile types.UserProfile, prefs types.UserPreferences) (FitAnalysis, error)
}

// DegradedFit is the fallback analysis when no judgment is available.
func DegradedFit() FitAnalysis {
	return FitAnalysis{
		Score:    degradedFitScore,
		Reasons:  append([]string{}, degradedFitReasons...),
		Concerns: append([]string{}, degradedFitConcerns...),
	}
}

// LLMAnalyzer implements FitAnalyzer over an LLM client.
type LLMAnalyzer struct {
	client llm.Client
}

// NewLLMAnalyzer creates a model-backed fit analyzer.
func NewLLMAnalyzer(client llm.Client) *LLMAnalyzer {
	return &LLMAnalyzer{client: client}
}

// AnalyzeFit sends the full job plus candidate context to the model and
// parses its {score, reasons, concerns} answer.
func (a *LLMAnalyzer) AnalyzeFit(ctx context.Context, job types.JobListing, profile types.UserProfile, prefs types.UserPreferences) (FitAnalysis, error) {
	template, err := prompts.Get("matching.json", "overall-fit")
	if err != nil {
		return FitAnalysis{}, err
	}

	prompt := prompts.Format(template, map[string]string{
		"Profile":     mustJSON(profile),
		"Preferences": mustJSON(prefs),
		"Job":         mustJSON(job),
	})

	response, err := a.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return FitAnalysis{}, err
	}

	payload := llm.ExtractJSONObject(response)
	if payload == "" {
		return FitAnalysis{}, &llmParseError{response: response}
	}

	var analysis FitAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return FitAnalysis{}, err
	}
	analysis.Score = types.Clamp01(analysis.Score)
	return analysis, nil
}

type llmParseError struct {
	response string
}

func (e *llmParseError) Error() string {
	return "no JSON object in fit analysis response"
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
