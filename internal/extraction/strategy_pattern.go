package extraction

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/jobscout/internal/fetch"
	"github.com/jonathan/jobscout/internal/types"
)

// maxPatternJobs caps the deterministic fallback output. Anchor scanning is
// noisy; past this point more matches are navigation links, not jobs.
const maxPatternJobs = 10

const patternConfidence = 0.5

// maxAnchorTextLen filters out paragraph-length anchors that are clearly
// not job titles.
const maxAnchorTextLen = 120

var jobAnchorRe = regexp.MustCompile(`(?i)(engineer|developer|software|technical|frontend|backend|fullstack|devops|job|position|role|career|opportunity)`)

// PatternStrategy is the last-resort deterministic extractor: scan anchor
// tags for job-relevant keywords, take the link text as title and the href
// as application URL.
type PatternStrategy struct {
	fetcher fetch.Fetcher
}

// NewPatternStrategy creates the deterministic pattern fallback.
func NewPatternStrategy(fetcher fetch.Fetcher) *PatternStrategy {
	return &PatternStrategy{fetcher: fetcher}
}

// Name identifies the strategy in extraction results.
func (s *PatternStrategy) Name() string { return "pattern" }

// Extract scans anchors on the career page. Hrefs are resolved to absolute
// URLs against the page; duplicates by (title, url) are dropped.
func (s *PatternStrategy) Extract(ctx context.Context, company types.Company, careerPageURL string) ([]types.JobListing, float64, error) {
	result, err := s.fetcher.Fetch(ctx, careerPageURL, false)
	if err != nil {
		return nil, 0, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, 0, &ParseError{Strategy: "pattern", Message: "failed to parse HTML", Cause: err}
	}

	base, _ := url.Parse(careerPageURL)

	var raws []rawListing
	seen := map[string]bool{}
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" || len(text) > maxAnchorTextLen || !jobAnchorRe.MatchString(text) {
			return true
		}

		href, _ := sel.Attr("href")
		absolute := resolveHref(base, href)

		key := strings.ToLower(text) + "|" + absolute
		if seen[key] {
			return true
		}
		seen[key] = true

		raws = append(raws, rawListing{Title: text, ApplicationURL: absolute})
		return len(raws) < maxPatternJobs
	})

	return buildListings(company, raws), patternConfidence, nil
}

// resolveHref makes an anchor href absolute against the page URL.
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
