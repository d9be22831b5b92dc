// Package extraction turns a career-page URL into structured job listings
// through an ordered strategy cascade: browser-automation agent, vision-
// guided navigation, AI text parsing, then a deterministic pattern fallback.
// The first strategy to produce a non-empty, well-formed result wins; results
// from different strategies are never merged.
package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/jobscout/internal/cache"
	"github.com/jonathan/jobscout/internal/types"
)

// ExtractionTTL bounds how long an extraction result is reused.
const ExtractionTTL = 30 * time.Minute

// MethodExhausted marks a run where every strategy returned empty or failed.
const MethodExhausted = "exhausted"

// Result is one extraction outcome for a (company, career page URL) pair.
type Result struct {
	CompanyID  string             `json:"company_id"`
	Jobs       []types.JobListing `json:"jobs"`
	Method     string             `json:"method"`
	Confidence float64            `json:"confidence"`
}

// Strategy is one extraction approach. Returning zero listings without an
// error means "nothing found here"; the cascade then tries the next strategy.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, company types.Company, careerPageURL string) ([]types.JobListing, float64, error)
}

// Cascade runs strategies in their fixed order and caches the outcome.
type Cascade struct {
	strategies []Strategy
	cache      cache.Store[Result]
}

// NewCascade creates a cascade over the given strategies, in order. A nil
// store defaults to an in-memory cache with the standard TTL.
func NewCascade(store cache.Store[Result], strategies ...Strategy) *Cascade {
	if store == nil {
		store = cache.NewMemory[Result](ExtractionTTL)
	}
	return &Cascade{strategies: strategies, cache: store}
}

// Extract tries each strategy until one yields listings. Strategy failures
// are swallowed; an all-empty run produces an exhausted result rather than
// an error. Every outcome is cached.
func (c *Cascade) Extract(ctx context.Context, company types.Company, careerPageURL string) (Result, error) {
	key := company.ID + "|" + careerPageURL
	if cached, err := c.cache.Get(ctx, key); err == nil {
		return cached, nil
	}

	result := c.run(ctx, company, careerPageURL)
	// A cancelled run looks exhausted without having tried the strategies;
	// caching it would suppress real extraction for the TTL.
	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	if err := c.cache.Put(ctx, key, result); err != nil {
		return result, fmt.Errorf("failed to cache extraction result: %w", err)
	}
	return result, nil
}

func (c *Cascade) run(ctx context.Context, company types.Company, careerPageURL string) Result {
	for _, strategy := range c.strategies {
		if ctx.Err() != nil {
			break
		}

		jobs, confidence, err := strategy.Extract(ctx, company, careerPageURL)
		if err != nil || len(jobs) == 0 {
			continue
		}

		for i := range jobs {
			ensureApplicationURL(&jobs[i], careerPageURL, company)
		}
		return Result{
			CompanyID:  company.ID,
			Jobs:       jobs,
			Method:     strategy.Name(),
			Confidence: types.Clamp01(confidence),
		}
	}

	return Result{
		CompanyID:  company.ID,
		Jobs:       []types.JobListing{},
		Method:     MethodExhausted,
		Confidence: 0,
	}
}
