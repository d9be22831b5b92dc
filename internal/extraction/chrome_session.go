package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// Per-attempt budget for one click query. Failed selectors must fail fast so
// the fallback chain stays within the step budget.
const clickAttemptTimeout = 3 * time.Second

// renderSettle gives client-side rendering a moment after a side-effecting
// action before the next screenshot.
const renderSettle = 2 * time.Second

// ChromeSession implements Session over a dedicated headless Chrome
// instance. One session spans one vision-navigation run.
type ChromeSession struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

// NewChromeSession starts a headless browser session. The caller must Close
// it; the session dies with ctx as well.
func NewChromeSession(ctx context.Context, timeout time.Duration) (Session, error) {
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)

	session := &ChromeSession{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelTimeout, cancelBrowser, cancelAlloc},
	}

	// Start the browser eagerly so failures surface here, not mid-loop.
	if err := chromedp.Run(browserCtx); err != nil {
		session.cancel()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}
	return session, nil
}

// Navigate loads a URL and waits for the body to be ready.
func (s *ChromeSession) Navigate(_ context.Context, urlStr string) error {
	return chromedp.Run(s.ctx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
	)
}

// Screenshot captures the current viewport as PNG.
func (s *ChromeSession) Screenshot(_ context.Context) ([]byte, error) {
	var buf []byte
	if err := chromedp.Run(s.ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return buf, nil
}

// Click finds an element by its visible text and clicks it, trying several
// selector shapes in order: exact text, partial text, anchors and buttons,
// then navigation containers.
func (s *ChromeSession) Click(_ context.Context, visibleText string) error {
	text := strings.TrimSpace(visibleText)
	if text == "" {
		return fmt.Errorf("empty click target")
	}
	lit := xpathLiteral(text)

	queries := []string{
		fmt.Sprintf(`//*[normalize-space(text())=%s]`, lit),
		fmt.Sprintf(`//*[contains(normalize-space(text()), %s)]`, lit),
		fmt.Sprintf(`//a[contains(., %s)] | //button[contains(., %s)]`, lit, lit),
		fmt.Sprintf(`//nav//*[contains(., %s)] | //header//*[contains(., %s)] | //*[contains(@class, "menu")]//*[contains(., %s)]`, lit, lit, lit),
	}

	var lastErr error
	for _, query := range queries {
		attemptCtx, cancel := context.WithTimeout(s.ctx, clickAttemptTimeout)
		err := chromedp.Run(attemptCtx, chromedp.Click(query, chromedp.BySearch))
		cancel()
		if err == nil {
			return chromedp.Run(s.ctx, chromedp.Sleep(renderSettle))
		}
		lastErr = err
	}
	return fmt.Errorf("no clickable element matched %q: %w", text, lastErr)
}

// Scroll advances the page by one viewport height.
func (s *ChromeSession) Scroll(_ context.Context) error {
	return chromedp.Run(s.ctx,
		chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil),
		chromedp.Sleep(renderSettle/2),
	)
}

// NextPage tries common pagination affordances.
func (s *ChromeSession) NextPage(ctx context.Context) error {
	var lastErr error
	for _, label := range []string{"Next", "More jobs", "Load more", "Show more"} {
		err := s.Click(ctx, label)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("no pagination control found: %w", lastErr)
}

// Close tears the browser session down.
func (s *ChromeSession) Close() error {
	s.cancel()
	return nil
}

func (s *ChromeSession) cancel() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// xpathLiteral quotes a string for embedding in an XPath expression. XPath
// 1.0 has no escape sequence inside literals, so strings containing both
// quote kinds are assembled with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if part != "" {
			quoted = append(quoted, `"`+part+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
