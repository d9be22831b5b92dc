package discovery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/jonathan/jobscout/internal/types"
)

// maxCandidates bounds how many scored candidates proceed to validation.
const maxCandidates = 5

// keywordWeights score career-related vocabulary in a candidate URL.
var keywordWeights = []struct {
	keyword string
	weight  float64
}{
	{"careers", 20},
	{"jobs", 15},
	{"apply", 12},
	{"hiring", 10},
	{"openings", 10},
	{"opportunities", 8},
	{"employment", 8},
	{"work", 5},
}

// scoreCandidate assigns a heuristic relevance score to a candidate URL:
// own-domain match 50, company slug 30, per-keyword weights, HTTPS 5,
// shallow path 5.
func scoreCandidate(candidateURL string, company types.Company) float64 {
	parsed, err := url.Parse(candidateURL)
	if err != nil || parsed.Host == "" {
		return 0
	}

	score := 0.0
	host := strings.TrimPrefix(parsed.Host, "www.")
	lowered := strings.ToLower(candidateURL)

	if domain := CompanyDomain(company.WebsiteURL); domain != "" && host == domain {
		score += 50
	}
	if slug := CompanySlug(company.Name); slug != "" && strings.Contains(lowered, slug) {
		score += 30
	}
	for _, kw := range keywordWeights {
		if strings.Contains(lowered, kw.keyword) {
			score += kw.weight
		}
	}
	if parsed.Scheme == "https" {
		score += 5
	}
	if segments := strings.Split(strings.Trim(parsed.Path, "/"), "/"); len(segments) <= 5 {
		score += 5
	}

	return score
}

// rankCandidates scores every candidate and returns the top maxCandidates
// sorted by score descending.
func rankCandidates(candidates []types.CareerPageCandidate, company types.Company) []types.CareerPageCandidate {
	ranked := make([]types.CareerPageCandidate, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		ranked[i].Score = scoreCandidate(ranked[i].URL, company)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > maxCandidates {
		ranked = ranked[:maxCandidates]
	}
	return ranked
}
