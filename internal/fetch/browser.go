// Package fetch - browser.go provides headless browser rendering for SPA sites.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length to consider a plain
// HTTP fetch successful. Shorter content usually means a JavaScript-rendered
// page that needs browser rendering.
const MinContentLength = 500

// ShouldUseBrowser returns true if the extracted text is too short,
// indicating the page is likely a JavaScript-rendered SPA.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Browser renders pages in a headless Chrome instance before extracting
// content. Requires Chrome/Chromium on the host.
type Browser struct {
	timeout time.Duration
}

// NewBrowser creates a browser-rendering fetcher.
func NewBrowser(timeout time.Duration) *Browser {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Browser{timeout: timeout}
}

// Fetch renders the page and returns its post-JavaScript HTML and text.
// headOnly is served by a plain navigation without HTML extraction.
func (b *Browser) Fetch(ctx context.Context, urlStr string, headOnly bool) (*Result, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.timeout)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
	}

	var html string
	if !headOnly {
		actions = append(actions,
			// Give client-side rendering a moment to settle
			chromedp.Sleep(2*time.Second),
			chromedp.OuterHTML("html", &html),
		)
	}

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return nil, &Error{
			URL:     urlStr,
			Kind:    classifyError(err),
			Message: fmt.Sprintf("browser rendering failed: %v", err),
			Cause:   err,
		}
	}

	result := &Result{URL: urlStr, StatusCode: 200, HTML: html}
	if !headOnly {
		result.Text = HTMLToText(html)
	}
	return result, nil
}
