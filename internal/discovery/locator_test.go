package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscout/internal/cache"
	"github.com/jonathan/jobscout/internal/fetch"
	"github.com/jonathan/jobscout/internal/types"
)

// fakeFetcher serves canned pages and counts calls.
type fakeFetcher struct {
	pages map[string]string // url -> text; absent means fetch failure
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, urlStr string, headOnly bool) (*fetch.Result, error) {
	f.calls++
	text, ok := f.pages[urlStr]
	if !ok {
		return nil, &fetch.Error{URL: urlStr, Kind: fetch.KindNetwork, Message: "unreachable"}
	}
	result := &fetch.Result{URL: urlStr, StatusCode: 200}
	if !headOnly {
		result.Text = text
	}
	return result, nil
}

// fakeSearcher returns a fixed result list.
type fakeSearcher struct {
	results []string
	calls   int
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, _ string, _ int) ([]string, error) {
	f.calls++
	return f.results, f.err
}

var acme = types.Company{ID: "c1", Name: "Acme", WebsiteURL: "https://acme.io"}

const careersPageText = "Open positions at Acme. Apply now for a job on our team. " +
	"We are hiring for remote and full-time roles with great benefits and salary."

func TestLocate_FallbackWithoutSearchCapability(t *testing.T) {
	locator := NewLocator(&fakeFetcher{}, nil, nil)

	result, err := locator.Locate(context.Background(), acme)
	require.NoError(t, err)
	assert.Equal(t, "https://acme.io/careers", result.URL)
	assert.Equal(t, 0.3, result.Confidence)
}

func TestLocate_FallbackWithoutWebsite(t *testing.T) {
	locator := NewLocator(&fakeFetcher{}, nil, nil)

	result, err := locator.Locate(context.Background(), types.Company{ID: "c2", Name: "Ghost"})
	require.NoError(t, err)
	assert.False(t, result.Found())
	assert.Equal(t, 0.0, result.Confidence)
}

func TestLocate_SelectsCareersOverAbout(t *testing.T) {
	searcher := &fakeSearcher{results: []string{"https://acme.io/careers", "https://acme.io/about"}}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://acme.io/careers": careersPageText,
		"https://acme.io/about":   "Acme was founded in 1999.",
	}}
	locator := NewLocator(fetcher, searcher, nil)

	result, err := locator.Locate(context.Background(), acme)
	require.NoError(t, err)
	assert.Equal(t, "https://acme.io/careers", result.URL)
	assert.Greater(t, result.Confidence, acceptThreshold)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestLocate_CacheHitIssuesNoExternalCalls(t *testing.T) {
	searcher := &fakeSearcher{results: []string{"https://acme.io/careers"}}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://acme.io/careers": careersPageText,
	}}
	locator := NewLocator(fetcher, searcher, nil)
	ctx := context.Background()

	first, err := locator.Locate(ctx, acme)
	require.NoError(t, err)

	searchCalls, fetchCalls := searcher.calls, fetcher.calls

	second, err := locator.Locate(ctx, acme)
	require.NoError(t, err)

	assert.Equal(t, first, second) // bit-identical cached result
	assert.Equal(t, searchCalls, searcher.calls)
	assert.Equal(t, fetchCalls, fetcher.calls)
}

func TestLocate_TTLExpiryAllowsNewCalls(t *testing.T) {
	searcher := &fakeSearcher{results: []string{"https://acme.io/careers"}}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://acme.io/careers": careersPageText,
	}}
	store := cache.NewMemory[types.CareerPageResult](time.Nanosecond)
	locator := NewLocator(fetcher, searcher, store)
	ctx := context.Background()

	_, err := locator.Locate(ctx, acme)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	_, err = locator.Locate(ctx, acme)
	require.NoError(t, err)
	assert.Equal(t, 2, searcher.calls)
}

func TestLocate_NoCandidatePassesValidation(t *testing.T) {
	searcher := &fakeSearcher{results: []string{"https://unrelated.example.com/blog"}}
	fetcher := &fakeFetcher{} // nothing reachable
	locator := NewLocator(fetcher, searcher, nil)

	result, err := locator.Locate(context.Background(), types.Company{ID: "c3", Name: "Voidcorp"})
	require.NoError(t, err)
	assert.False(t, result.Found())
	assert.Equal(t, 0.0, result.Confidence)
	assert.NotEmpty(t, result.Error)
}

func TestLocate_SearchFailureDegradesToPatterns(t *testing.T) {
	searcher := &fakeSearcher{err: assert.AnError}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://acme.io/careers": careersPageText,
	}}
	locator := NewLocator(fetcher, searcher, nil)

	result, err := locator.Locate(context.Background(), acme)
	require.NoError(t, err)
	assert.Equal(t, "https://acme.io/careers", result.URL)
}

func TestLocate_BlockedCandidateAcceptedOnStructure(t *testing.T) {
	// acme.io/careers is structurally strong (keyword + same domain = 0.7)
	// but every fetch fails; it should still be accepted at reduced confidence.
	searcher := &fakeSearcher{results: []string{"https://acme.io/careers"}}
	fetcher := &fakeFetcher{}
	locator := NewLocator(fetcher, searcher, nil)

	result, err := locator.Locate(context.Background(), acme)
	require.NoError(t, err)
	assert.Equal(t, "https://acme.io/careers", result.URL)
	assert.InDelta(t, 0.7, result.Confidence, 0.001)
}

func TestScoreCandidate_OrdersKeywordURLsFirst(t *testing.T) {
	careers := scoreCandidate("https://acme.io/careers", acme)
	about := scoreCandidate("https://acme.io/about", acme)
	assert.Greater(t, careers, about)
}

func TestScoreCandidate_DomainAndSlug(t *testing.T) {
	own := scoreCandidate("https://acme.io/careers", acme)
	board := scoreCandidate("https://boards.greenhouse.io/acme", acme)
	other := scoreCandidate("https://jobs.example.org/somewhere", acme)

	assert.Greater(t, own, board) // own domain beats job board
	assert.Greater(t, board, other)
}

func TestCompanySlug(t *testing.T) {
	assert.Equal(t, "acme", CompanySlug("Acme"))
	assert.Equal(t, "acme-labs", CompanySlug("Acme Labs!"))
	assert.Equal(t, "o-reilly-co", CompanySlug("O'Reilly & Co."))
}

func TestCompanyDomain(t *testing.T) {
	assert.Equal(t, "acme.io", CompanyDomain("https://www.acme.io/about"))
	assert.Equal(t, "acme.io", CompanyDomain("https://acme.io"))
	assert.Equal(t, "", CompanyDomain("not a url"))
}

func TestGenerateCandidates_AllSourcesAndDedup(t *testing.T) {
	candidates := generateCandidates(acme, []string{"https://acme.io/careers", "https://acme.io/careers"})

	var sources = map[types.CandidateSource]bool{}
	urls := map[string]int{}
	for _, c := range candidates {
		sources[c.Source] = true
		urls[c.URL]++
	}

	assert.True(t, sources[types.SourceExternalSearch])
	assert.True(t, sources[types.SourcePattern])
	assert.True(t, sources[types.SourceJobBoard])
	for u, count := range urls {
		assert.Equal(t, 1, count, "duplicate candidate %s", u)
	}
}

func TestContentScore_Density(t *testing.T) {
	assert.Equal(t, 0.0, contentScore(""))
	assert.Equal(t, 0.0, contentScore("nothing relevant here"))
	full := contentScore(careersPageText)
	assert.Greater(t, full, 0.3)
	assert.LessOrEqual(t, full, 1.0)
}
