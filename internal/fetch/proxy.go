package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Proxy delegates retrieval to the external fetch collaborator so pipeline
// code never performs cross-origin fetches itself.
//
// Wire contract: POST {base}/fetch {"url": ..., "head_only": ...} ->
// {"success": ..., "html": ..., "error": ...}.
type Proxy struct {
	baseURL string
	client  *http.Client
}

// NewProxy creates a proxy-backed fetcher targeting the given collaborator base URL.
func NewProxy(baseURL string, timeout time.Duration) *Proxy {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Proxy{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type proxyRequest struct {
	URL      string `json:"url"`
	HeadOnly bool   `json:"head_only"`
}

type proxyResponse struct {
	Success bool   `json:"success"`
	HTML    string `json:"html,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Fetch retrieves content through the proxy collaborator.
func (p *Proxy) Fetch(ctx context.Context, urlStr string, headOnly bool) (*Result, error) {
	payload, err := json.Marshal(proxyRequest{URL: urlStr, HeadOnly: headOnly})
	if err != nil {
		return nil, &Error{URL: urlStr, Kind: KindNetwork, Message: "failed to encode proxy request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/fetch", bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{URL: urlStr, Kind: KindNetwork, Message: "failed to create proxy request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Kind: classifyError(err), Message: "proxy request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			URL:     urlStr,
			Kind:    KindStatus,
			Message: fmt.Sprintf("proxy returned HTTP status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Kind: KindNetwork, Message: "failed to read proxy response", Cause: err}
	}

	var parsed proxyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{URL: urlStr, Kind: KindNetwork, Message: "malformed proxy response", Cause: err}
	}
	if !parsed.Success {
		return nil, &Error{URL: urlStr, Kind: KindStatus, Message: "proxy fetch failed: " + parsed.Error}
	}

	result := &Result{URL: urlStr, StatusCode: http.StatusOK, HTML: parsed.HTML}
	if !headOnly {
		result.Text = HTMLToText(parsed.HTML)
	}
	return result, nil
}
