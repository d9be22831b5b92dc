package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/jobscout/internal/cache"
	"github.com/jonathan/jobscout/internal/fetch"
	"github.com/jonathan/jobscout/internal/types"
)

// CareerPageTTL bounds how long a discovery result is reused.
const CareerPageTTL = time.Hour

// fallbackConfidence is assigned to the deterministic /careers guess used
// when no external search capability is configured.
const fallbackConfidence = 0.3

// searchResultLimit caps how many external search links seed the candidate set.
const searchResultLimit = 5

// Locator discovers a company's career page. All collaborators are injected
// so tests can substitute fakes.
type Locator struct {
	fetcher  fetch.Fetcher
	searcher Searcher
	cache    cache.Store[types.CareerPageResult]
}

// NewLocator creates a Locator. searcher may be nil when no external search
// capability is configured; the locator then synthesizes a deterministic
// fallback URL instead of generating candidates.
func NewLocator(fetcher fetch.Fetcher, searcher Searcher, store cache.Store[types.CareerPageResult]) *Locator {
	if store == nil {
		store = cache.NewMemory[types.CareerPageResult](CareerPageTTL)
	}
	return &Locator{fetcher: fetcher, searcher: searcher, cache: store}
}

// cacheKey identifies one discovery outcome per (company, website URL).
func cacheKey(company types.Company) string {
	return company.ID + "|" + company.WebsiteURL
}

// Locate finds the career page for a company and returns a confidence-scored
// result. Every outcome, including "no candidate found", is cached so repeat
// calls within the TTL are free of external calls.
func (l *Locator) Locate(ctx context.Context, company types.Company) (types.CareerPageResult, error) {
	key := cacheKey(company)
	if cached, err := l.cache.Get(ctx, key); err == nil {
		return cached, nil
	}

	result := l.locate(ctx, company)
	if err := l.cache.Put(ctx, key, result); err != nil {
		return result, fmt.Errorf("failed to cache career page result: %w", err)
	}
	return result, nil
}

func (l *Locator) locate(ctx context.Context, company types.Company) types.CareerPageResult {
	if l.searcher == nil {
		return l.fallbackResult(company)
	}

	searchResults := l.search(ctx, company)
	candidates := rankCandidates(generateCandidates(company, searchResults), company)

	var (
		selected   string
		confidence float64
		additional []string
	)
	for _, candidate := range candidates {
		// Candidate-level failures are swallowed: a candidate that cannot
		// be validated scores 0 and the loop moves on.
		conf := l.validateCandidate(ctx, candidate.URL, company)
		if conf <= acceptThreshold {
			continue
		}
		if selected == "" {
			selected = candidate.URL
			confidence = conf
			continue
		}
		additional = append(additional, candidate.URL)
	}

	if selected == "" {
		return types.CareerPageResult{
			CompanyID:  company.ID,
			Confidence: 0,
			Error:      "no candidate passed validation",
		}
	}

	return types.CareerPageResult{
		CompanyID:      company.ID,
		URL:            selected,
		Confidence:     types.Clamp01(confidence),
		AdditionalURLs: additional,
	}
}

// search queries the external collaborator. Search failures degrade to an
// empty seed set; pattern and job-board candidates still apply.
func (l *Locator) search(ctx context.Context, company types.Company) []string {
	query := fmt.Sprintf("%s careers jobs", company.Name)
	links, err := l.searcher.Search(ctx, query, searchResultLimit)
	if err != nil {
		return nil
	}
	return links
}

// fallbackResult synthesizes the deterministic career URL used when no
// search capability is configured.
func (l *Locator) fallbackResult(company types.Company) types.CareerPageResult {
	if company.WebsiteURL == "" {
		return types.CareerPageResult{
			CompanyID:  company.ID,
			Confidence: 0,
			Error:      "no website URL and no search capability configured",
		}
	}
	return types.CareerPageResult{
		CompanyID:  company.ID,
		URL:        strings.TrimSuffix(company.WebsiteURL, "/") + "/careers",
		Confidence: fallbackConfidence,
	}
}
