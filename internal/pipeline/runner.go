// Package pipeline provides the high-level orchestration: locate career
// pages, extract listings, and score them against the user, across an
// ordered company list with batching, pacing, and per-company fault
// isolation.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobscout/internal/extraction"
	"github.com/jonathan/jobscout/internal/observability"
	"github.com/jonathan/jobscout/internal/types"
)

// skipConfidenceThreshold gates extraction: companies whose career page
// confidence is at or below this are skipped, not extracted.
const skipConfidenceThreshold = 0.2

// Default pacing values. Discovery runs in concurrent batches with a pause
// between them; extraction and matching run sequentially with short delays
// to respect downstream rate limits.
const (
	DefaultBatchSize       = 3
	DefaultBatchPause      = time.Second
	DefaultExtractionDelay = 3 * time.Second
	DefaultMatchingDelay   = 100 * time.Millisecond
)

// Locator discovers a company's career page.
type Locator interface {
	Locate(ctx context.Context, company types.Company) (types.CareerPageResult, error)
}

// Extractor turns a career page URL into job listings.
type Extractor interface {
	Extract(ctx context.Context, company types.Company, careerPageURL string) (extraction.Result, error)
}

// Matcher scores listings against the user and returns ranked matches.
type Matcher interface {
	MatchJobs(ctx context.Context, jobs []types.JobListing, profile types.UserProfile, prefs types.UserPreferences) []types.JobMatch
}

// Options configures one pipeline run.
type Options struct {
	Companies   []types.Company
	Profile     types.UserProfile
	Preferences types.UserPreferences

	BatchSize       int
	BatchPause      time.Duration
	ExtractionDelay time.Duration
	MatchingDelay   time.Duration

	OnProgress ProgressCallback
	Verbose    bool
}

// CompanyResult is the per-company outcome. A company that fails a stage
// carries its error here; it never aborts the run.
type CompanyResult struct {
	Company    types.Company          `json:"company"`
	CareerPage types.CareerPageResult `json:"career_page"`
	Extraction *extraction.Result     `json:"extraction,omitempty"`
	Matches    []types.JobMatch       `json:"matches,omitempty"`
	Skipped    bool                   `json:"skipped,omitempty"`
	Err        string                 `json:"error,omitempty"`
}

// RunResult aggregates a full pipeline run.
type RunResult struct {
	Companies []CompanyResult  `json:"companies"`
	Matches   []types.JobMatch `json:"matches"`
	Trail     []TrailEntry     `json:"trail"`
}

// Runner sequences the three stages over injected collaborators.
type Runner struct {
	locator   Locator
	extractor Extractor
	matcher   Matcher
	printer   *observability.Printer

	// now and sleep are injectable for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewRunner creates a pipeline runner. printer may be nil; verbose output is
// then disabled regardless of Options.Verbose.
func NewRunner(locator Locator, extractor Extractor, matcher Matcher, printer *observability.Printer) *Runner {
	return &Runner{
		locator:   locator,
		extractor: extractor,
		matcher:   matcher,
		printer:   printer,
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Run executes discovery, extraction, and matching over the company list.
// Cancellation returns the partial result accumulated so far together with
// the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*RunResult, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.BatchPause <= 0 {
		opts.BatchPause = DefaultBatchPause
	}
	if opts.ExtractionDelay <= 0 {
		opts.ExtractionDelay = DefaultExtractionDelay
	}
	if opts.MatchingDelay <= 0 {
		opts.MatchingDelay = DefaultMatchingDelay
	}

	result := &RunResult{
		Companies: make([]CompanyResult, len(opts.Companies)),
	}
	for i, company := range opts.Companies {
		result.Companies[i] = CompanyResult{Company: company}
	}

	if err := r.runDiscovery(ctx, &opts, result); err != nil {
		return result, err
	}
	if err := r.runExtraction(ctx, &opts, result); err != nil {
		return result, err
	}
	if err := r.runMatching(ctx, &opts, result); err != nil {
		return result, err
	}
	return result, nil
}

// runDiscovery locates career pages in concurrent batches with a pause
// between batches. A single company's failure becomes an error-carrying
// result, never a batch abort.
func (r *Runner) runDiscovery(ctx context.Context, opts *Options, result *RunResult) error {
	total := len(opts.Companies)
	done := 0

	for batchStart := 0; batchStart < total; batchStart += opts.BatchSize {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		batchEnd := min(batchStart+opts.BatchSize, total)

		g, gCtx := errgroup.WithContext(ctx)
		for i := batchStart; i < batchEnd; i++ {
			g.Go(func() error {
				company := opts.Companies[i]
				page, err := r.locator.Locate(gCtx, company)
				if err != nil {
					result.Companies[i].Err = err.Error()
					result.Companies[i].CareerPage = types.CareerPageResult{
						CompanyID: company.ID,
						Error:     err.Error(),
					}
					return nil
				}
				result.Companies[i].CareerPage = page
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i := batchStart; i < batchEnd; i++ {
			cr := &result.Companies[i]
			done++
			note := "no career page found"
			if cr.CareerPage.Found() {
				note = fmt.Sprintf("located %s (confidence %.2f)", cr.CareerPage.URL, cr.CareerPage.Confidence)
			} else if cr.Err != "" {
				note = "discovery failed: " + cr.Err
			}
			r.record(result, opts, ProgressEvent{
				Step:    StageDiscovery,
				Company: cr.Company.Name,
				Message: note,
				Percent: bandPercent(discoveryBandStart, discoveryBandEnd, done, total),
			})
			if opts.Verbose && r.printer != nil {
				r.printer.PrintCareerPage(cr.Company, cr.CareerPage)
			}
		}

		if batchEnd < total {
			r.sleep(ctx, opts.BatchPause)
		}
	}
	return nil
}

// runExtraction processes companies sequentially with a fixed delay between
// them. Low-confidence discoveries are skipped and logged.
func (r *Runner) runExtraction(ctx context.Context, opts *Options, result *RunResult) error {
	total := len(result.Companies)
	jobsSoFar := 0

	for i := range result.Companies {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cr := &result.Companies[i]

		if !cr.CareerPage.Found() || cr.CareerPage.Confidence <= skipConfidenceThreshold {
			cr.Skipped = true
			r.record(result, opts, ProgressEvent{
				Step:      StageExtraction,
				Company:   cr.Company.Name,
				Message:   fmt.Sprintf("skipped: career page confidence %.2f at or below %.2f", cr.CareerPage.Confidence, skipConfidenceThreshold),
				Percent:   bandPercent(discoveryBandEnd, extractionBandEnd, i+1, total),
				JobsSoFar: jobsSoFar,
			})
			continue
		}

		extracted, err := r.extractor.Extract(ctx, cr.Company, cr.CareerPage.URL)
		if err != nil {
			cr.Err = err.Error()
			r.record(result, opts, ProgressEvent{
				Step:      StageExtraction,
				Company:   cr.Company.Name,
				Message:   "extraction failed: " + err.Error(),
				Percent:   bandPercent(discoveryBandEnd, extractionBandEnd, i+1, total),
				JobsSoFar: jobsSoFar,
			})
			continue
		}

		cr.Extraction = &extracted
		jobsSoFar += len(extracted.Jobs)
		r.record(result, opts, ProgressEvent{
			Step:      StageExtraction,
			Company:   cr.Company.Name,
			Message:   fmt.Sprintf("extracted %d jobs via %s (confidence %.2f)", len(extracted.Jobs), extracted.Method, extracted.Confidence),
			Percent:   bandPercent(discoveryBandEnd, extractionBandEnd, i+1, total),
			JobsSoFar: jobsSoFar,
		})
		if opts.Verbose && r.printer != nil {
			r.printer.PrintExtraction(cr.Company, extracted)
		}

		if i < total-1 {
			r.sleep(ctx, opts.ExtractionDelay)
		}
	}
	return nil
}

// runMatching scores extracted listings sequentially, aggregates all matches
// and sorts them globally by score.
func (r *Runner) runMatching(ctx context.Context, opts *Options, result *RunResult) error {
	total := len(result.Companies)

	for i := range result.Companies {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cr := &result.Companies[i]
		if cr.Extraction == nil || len(cr.Extraction.Jobs) == 0 {
			continue
		}

		cr.Matches = r.matcher.MatchJobs(ctx, cr.Extraction.Jobs, opts.Profile, opts.Preferences)
		result.Matches = append(result.Matches, cr.Matches...)

		best := 0.0
		if len(cr.Matches) > 0 {
			best = cr.Matches[0].MatchScore
		}
		r.record(result, opts, ProgressEvent{
			Step:         StageMatching,
			Company:      cr.Company.Name,
			Message:      fmt.Sprintf("matched %d jobs, best score %.2f", len(cr.Matches), best),
			Percent:      bandPercent(extractionBandEnd, matchingBandEnd, i+1, total),
			MatchesSoFar: len(result.Matches),
		})
		if opts.Verbose && r.printer != nil {
			r.printer.PrintMatches(cr.Matches)
		}

		if i < total-1 {
			r.sleep(ctx, opts.MatchingDelay)
		}
	}

	sortMatches(result.Matches)
	return nil
}

// sortMatches orders the aggregated match list by score descending.
func sortMatches(matches []types.JobMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
}

// record emits a progress event and appends the matching trail entry.
func (r *Runner) record(result *RunResult, opts *Options, event ProgressEvent) {
	result.Trail = append(result.Trail, TrailEntry{
		Time:    r.now(),
		Company: event.Company,
		Stage:   event.Step,
		Note:    event.Message,
	})
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}
