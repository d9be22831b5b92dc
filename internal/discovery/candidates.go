package discovery

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jonathan/jobscout/internal/types"
)

// careerPathPatterns are deterministic paths probed on the company's own domain.
var careerPathPatterns = []string{
	"/careers",
	"/jobs",
	"/hiring",
	"/careers/jobs",
	"/join-us",
	"/work-with-us",
	"/company/careers",
	"/about/careers",
}

// jobBoardTemplates are known ATS URL templates keyed by company slug.
var jobBoardTemplates = []string{
	"https://boards.greenhouse.io/%s",
	"https://jobs.lever.co/%s",
	"https://%s.workable.com",
	"https://jobs.smartrecruiters.com/%s",
	"https://%s.bamboohr.com/careers",
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// CompanySlug lowercases a company name and replaces runs of
// non-alphanumeric characters with a single dash.
func CompanySlug(name string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// CompanyDomain extracts the bare host from a company website URL,
// without the www prefix. Returns "" for unparseable input.
func CompanyDomain(websiteURL string) string {
	if websiteURL == "" {
		return ""
	}
	parsed, err := url.Parse(websiteURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// generateCandidates builds the raw candidate set from the three sources:
// external search results, deterministic path patterns against the company
// domain, and job-board templates keyed by slug. Duplicates are removed,
// keeping the first occurrence.
func generateCandidates(company types.Company, searchResults []string) []types.CareerPageCandidate {
	var candidates []types.CareerPageCandidate

	for _, u := range searchResults {
		candidates = append(candidates, types.CareerPageCandidate{
			URL:    u,
			Source: types.SourceExternalSearch,
		})
	}

	if base := strings.TrimSuffix(company.WebsiteURL, "/"); base != "" {
		for _, path := range careerPathPatterns {
			candidates = append(candidates, types.CareerPageCandidate{
				URL:    base + path,
				Source: types.SourcePattern,
			})
		}
	}

	if slug := CompanySlug(company.Name); slug != "" {
		for _, tmpl := range jobBoardTemplates {
			candidates = append(candidates, types.CareerPageCandidate{
				URL:    fmt.Sprintf(tmpl, slug),
				Source: types.SourceJobBoard,
			})
		}
	}

	seen := make(map[string]bool, len(candidates))
	unique := candidates[:0]
	for _, c := range candidates {
		if c.URL == "" || seen[c.URL] {
			continue
		}
		seen[c.URL] = true
		unique = append(unique, c)
	}
	return unique
}
