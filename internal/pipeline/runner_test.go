package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscout/internal/extraction"
	"github.com/jonathan/jobscout/internal/types"
)

type fakeLocator struct {
	mu      sync.Mutex
	results map[string]types.CareerPageResult
	errs    map[string]error
	calls   int
}

func (f *fakeLocator) Locate(_ context.Context, company types.Company) (types.CareerPageResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.errs[company.ID]; err != nil {
		return types.CareerPageResult{}, err
	}
	if result, ok := f.results[company.ID]; ok {
		return result, nil
	}
	return types.CareerPageResult{
		CompanyID:  company.ID,
		URL:        company.WebsiteURL + "/careers",
		Confidence: 0.9,
	}, nil
}

type fakeExtractor struct {
	jobsPer int
	calls   []string
	err     error
}

func (f *fakeExtractor) Extract(_ context.Context, company types.Company, _ string) (extraction.Result, error) {
	f.calls = append(f.calls, company.ID)
	if f.err != nil {
		return extraction.Result{}, f.err
	}
	jobs := make([]types.JobListing, f.jobsPer)
	for i := range jobs {
		jobs[i] = types.JobListing{
			ID:              company.ID + "-job",
			Title:           "Engineer",
			CompanyID:       company.ID,
			EmploymentType:  types.FullTime,
			RemoteType:      types.Remote,
			ExperienceLevel: types.LevelMid,
		}
	}
	return extraction.Result{CompanyID: company.ID, Jobs: jobs, Method: "llm-text", Confidence: 0.75}, nil
}

type fakeMatcher struct {
	scores map[string]float64
}

func (f *fakeMatcher) MatchJobs(_ context.Context, jobs []types.JobListing, _ types.UserProfile, _ types.UserPreferences) []types.JobMatch {
	matches := make([]types.JobMatch, 0, len(jobs))
	for _, job := range jobs {
		score := 0.5
		if s, ok := f.scores[job.CompanyID]; ok {
			score = s
		}
		matches = append(matches, types.JobMatch{Job: job, MatchScore: score, Recommendation: types.RecommendationForScore(score)})
	}
	return matches
}

func company(id string) types.Company {
	return types.Company{ID: id, Name: "Company " + id, WebsiteURL: "https://" + id + ".example.com"}
}

func quietRunner(locator Locator, extractor Extractor, matcher Matcher) *Runner {
	r := NewRunner(locator, extractor, matcher, nil)
	r.sleep = func(context.Context, time.Duration) {}
	return r
}

func TestRun_EndToEnd(t *testing.T) {
	locator := &fakeLocator{}
	extractor := &fakeExtractor{jobsPer: 2}
	matcher := &fakeMatcher{scores: map[string]float64{"a": 0.9, "b": 0.4}}
	runner := quietRunner(locator, extractor, matcher)

	result, err := runner.Run(context.Background(), Options{
		Companies: []types.Company{company("a"), company("b")},
	})
	require.NoError(t, err)

	require.Len(t, result.Companies, 2)
	assert.Len(t, result.Matches, 4)
	assert.Equal(t, "a-job", result.Matches[0].Job.ID, "aggregated matches sorted by score descending")
	assert.NotEmpty(t, result.Trail)
}

func TestRun_SkipsLowConfidenceCompanies(t *testing.T) {
	locator := &fakeLocator{results: map[string]types.CareerPageResult{
		"low": {CompanyID: "low", URL: "https://low.example.com/careers", Confidence: 0.2},
	}}
	extractor := &fakeExtractor{jobsPer: 1}
	runner := quietRunner(locator, extractor, &fakeMatcher{})

	result, err := runner.Run(context.Background(), Options{
		Companies: []types.Company{company("low"), company("ok")},
	})
	require.NoError(t, err)

	assert.True(t, result.Companies[0].Skipped)
	assert.Equal(t, []string{"ok"}, extractor.calls, "confidence at threshold must not be extracted")

	var skippedNote bool
	for _, entry := range result.Trail {
		if entry.Company == "Company low" && entry.Stage == StageExtraction {
			skippedNote = true
		}
	}
	assert.True(t, skippedNote, "skip must be recorded in the trail")
}

func TestRun_DiscoveryFailureIsIsolated(t *testing.T) {
	locator := &fakeLocator{errs: map[string]error{"bad": errors.New("search quota exceeded")}}
	extractor := &fakeExtractor{jobsPer: 1}
	runner := quietRunner(locator, extractor, &fakeMatcher{})

	result, err := runner.Run(context.Background(), Options{
		Companies: []types.Company{company("bad"), company("good")},
	})
	require.NoError(t, err)

	assert.Equal(t, "search quota exceeded", result.Companies[0].Err)
	assert.True(t, result.Companies[0].Skipped)
	assert.Equal(t, []string{"good"}, extractor.calls)
	assert.Len(t, result.Companies[1].Matches, 1)
}

func TestRun_ProgressPercentIsMonotonic(t *testing.T) {
	var events []ProgressEvent
	runner := quietRunner(&fakeLocator{}, &fakeExtractor{jobsPer: 1}, &fakeMatcher{})

	companies := make([]types.Company, 7)
	for i := range companies {
		companies[i] = company(string(rune('a' + i)))
	}

	_, err := runner.Run(context.Background(), Options{
		Companies:  companies,
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)
	require.NotEmpty(t, events)

	last := 0.0
	for _, event := range events {
		assert.GreaterOrEqual(t, event.Percent, last, "percent must never move backwards")
		last = event.Percent
	}
	assert.LessOrEqual(t, last, matchingBandEnd)
}

func TestRun_BatchPausesBetweenDiscoveryBatches(t *testing.T) {
	pauses := 0
	runner := NewRunner(&fakeLocator{}, &fakeExtractor{}, &fakeMatcher{}, nil)
	runner.sleep = func(_ context.Context, d time.Duration) {
		if d == DefaultBatchPause {
			pauses++
		}
	}

	companies := make([]types.Company, 7)
	for i := range companies {
		companies[i] = company(string(rune('a' + i)))
	}

	_, err := runner.Run(context.Background(), Options{Companies: companies})
	require.NoError(t, err)
	assert.Equal(t, 2, pauses, "7 companies in batches of 3 have 2 inter-batch pauses")
}

func TestRun_CancellationReturnsPartialResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	locator := &fakeLocator{}
	extractor := &fakeExtractor{jobsPer: 1}
	runner := quietRunner(locator, extractor, &fakeMatcher{})
	// Cancel as soon as the first extraction happens.
	runner.sleep = func(context.Context, time.Duration) { cancel() }

	result, err := runner.Run(ctx, Options{
		Companies: []types.Company{company("a"), company("b"), company("c"), company("d")},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result, "cancellation must still return partial results")
	assert.NotEmpty(t, result.Trail)
}
