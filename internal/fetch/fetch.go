// Package fetch provides URL fetching and HTML-to-text processing for the
// discovery and extraction stages. Retrieval runs through an ordered list of
// strategies with a uniform result contract: direct HTTP, then the fetch
// proxy collaborator, then headless browser rendering for SPA pages.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobScout/1.0)"

// ErrorKind classifies a fetch failure.
type ErrorKind string

// Fetch failure kinds
const (
	KindStatus  ErrorKind = "status"
	KindTimeout ErrorKind = "timeout"
	KindNetwork ErrorKind = "network"
)

// Result holds the raw and processed content from a URL fetch.
type Result struct {
	URL        string
	HTML       string
	Text       string
	StatusCode int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// classifyError maps a transport error onto a failure kind.
func classifyError(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

// Options configures fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher retrieves page content for a URL. headOnly performs a reachability
// check without downloading the body.
type Fetcher interface {
	Fetch(ctx context.Context, urlStr string, headOnly bool) (*Result, error)
}

// Direct fetches URLs straight over HTTP.
type Direct struct {
	options *Options
	client  *http.Client
}

// NewDirect creates a direct HTTP fetcher.
func NewDirect(opts *Options) *Direct {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Direct{
		options: opts,
		client:  &http.Client{Timeout: opts.Timeout},
	}
}

// Fetch retrieves content from a URL. On non-2xx status the partial result
// is returned alongside the error so callers can inspect the status code.
func (d *Direct) Fetch(ctx context.Context, urlStr string, headOnly bool) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Kind: KindNetwork, Message: "invalid URL", Cause: err}
	}

	method := http.MethodGet
	if headOnly {
		method = http.MethodHead
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Kind: KindNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", d.options.UserAgent)
	for key, value := range d.options.Headers {
		req.Header.Set(key, value)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Kind: classifyError(err), Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	result := &Result{URL: urlStr, StatusCode: resp.StatusCode}

	if !headOnly {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &Error{URL: urlStr, Kind: KindNetwork, Message: "failed to read response body", Cause: err}
		}
		result.HTML = string(bodyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &Error{
			URL:     urlStr,
			Kind:    KindStatus,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	if !headOnly {
		result.Text = HTMLToText(result.HTML)
	}

	return result, nil
}

// Chain tries each fetcher in order until one succeeds. This models the
// proxy-fallback behavior as an explicit ordered strategy list instead of
// nested error handling.
type Chain struct {
	fetchers []Fetcher
}

// NewChain creates a fetcher that falls back through the given fetchers in order.
func NewChain(fetchers ...Fetcher) *Chain {
	return &Chain{fetchers: fetchers}
}

// Fetch tries each strategy in order, returning the first success.
// The last error is returned when all strategies fail.
func (c *Chain) Fetch(ctx context.Context, urlStr string, headOnly bool) (*Result, error) {
	var lastErr error
	for _, f := range c.fetchers {
		if ctx.Err() != nil {
			return nil, &Error{URL: urlStr, Kind: KindTimeout, Message: "fetch cancelled", Cause: ctx.Err()}
		}
		result, err := f.Fetch(ctx, urlStr, headOnly)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = &Error{URL: urlStr, Kind: KindNetwork, Message: "no fetch strategies configured"}
	}
	return nil, lastErr
}
