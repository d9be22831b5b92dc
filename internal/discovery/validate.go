package discovery

import (
	"context"
	"net/url"
	"strings"

	"github.com/jonathan/jobscout/internal/types"
)

// Structural and live-check confidence contributions.
const (
	structuralKeywordWeight = 0.4
	structuralDomainWeight  = 0.3
	reachabilityWeight      = 0.3
	contentAnalysisWeight   = 0.5

	// acceptThreshold is the minimum validated confidence for a candidate
	// to be selected as the career page.
	acceptThreshold = 0.4

	// blockedAcceptThreshold lets a structurally strong candidate through
	// even when direct fetching is blocked.
	blockedAcceptThreshold = 0.3
)

// careerURLKeywords mark a URL as career-related for the structural check.
var careerURLKeywords = []string{
	"careers", "jobs", "hiring", "openings", "opportunities",
	"employment", "apply", "join",
}

// contentKeywords are the job/benefit/application vocabulary counted in the
// page-content analysis.
var contentKeywords = []string{
	"job", "position", "opening", "career", "apply", "application",
	"hiring", "role", "team", "benefits", "salary", "remote",
	"full-time", "opportunity", "join us",
}

// structuralScore computes the fetch-free part of a candidate's confidence:
// career keywords in the URL and same-domain membership.
func structuralScore(candidateURL string, company types.Company) float64 {
	score := 0.0
	lowered := strings.ToLower(candidateURL)

	for _, kw := range careerURLKeywords {
		if strings.Contains(lowered, kw) {
			score += structuralKeywordWeight
			break
		}
	}

	if parsed, err := url.Parse(candidateURL); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if domain := CompanyDomain(company.WebsiteURL); domain != "" && host == domain {
			score += structuralDomainWeight
		}
	}

	return score
}

// contentScore measures job vocabulary density in fetched page text,
// returning the fraction of contentKeywords present.
func contentScore(text string) float64 {
	if text == "" {
		return 0
	}
	lowered := strings.ToLower(text)
	hits := 0
	for _, kw := range contentKeywords {
		if strings.Contains(lowered, kw) {
			hits++
		}
	}
	return types.Clamp01(float64(hits) / float64(len(contentKeywords)))
}

// validateCandidate combines the structural score with a live reachability
// check and content analysis into one [0,1] confidence. A candidate that
// cannot be fetched (e.g. bot-blocked) is still accepted at its structural
// score when that alone exceeds blockedAcceptThreshold.
func (l *Locator) validateCandidate(ctx context.Context, candidateURL string, company types.Company) float64 {
	structural := structuralScore(candidateURL, company)

	if _, err := l.fetcher.Fetch(ctx, candidateURL, true); err != nil {
		if structural > blockedAcceptThreshold {
			return types.Clamp01(structural)
		}
		return 0
	}

	confidence := structural + reachabilityWeight

	result, err := l.fetcher.Fetch(ctx, candidateURL, false)
	if err == nil && result != nil {
		confidence += contentAnalysisWeight * contentScore(result.Text)
	}

	return types.Clamp01(confidence)
}
