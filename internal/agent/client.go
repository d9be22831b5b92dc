// Package agent provides the client for the external browser-automation
// agent collaborator. The agent drives a real browser against a career page
// and returns a ranked job list; this package only speaks its wire contract.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds one agent search call. Agent runs drive a real
// browser and are much slower than plain fetches.
const DefaultTimeout = 2 * time.Minute

// SearchRequest describes one agent job-search task.
type SearchRequest struct {
	Company    string   `json:"company"`
	URL        string   `json:"url"`
	Keywords   []string `json:"keywords,omitempty"`
	Location   string   `json:"location,omitempty"`
	MaxResults int      `json:"max_results"`
}

// Job is one listing as reported by the agent. RelevanceScore orders the
// agent's own ranking and is consumed, not recomputed, by the pipeline.
type Job struct {
	Title          string  `json:"title"`
	Location       string  `json:"location,omitempty"`
	Description    string  `json:"description,omitempty"`
	ApplicationURL string  `json:"application_url,omitempty"`
	EmploymentType string  `json:"employment_type,omitempty"`
	RemoteType     string  `json:"remote_type,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
}

type searchResponse struct {
	Success bool   `json:"success"`
	Jobs    []Job  `json:"jobs"`
	Error   string `json:"error,omitempty"`
}

// Client calls the browser-automation agent service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an agent client targeting the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// SearchJobs asks the agent to extract job listings from a career page.
func (c *Client) SearchJobs(ctx context.Context, req SearchRequest) ([]Job, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode agent request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/agent-job-search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create agent request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("agent request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent returned HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read agent response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("malformed agent response: %w", err)
	}
	if !parsed.Success {
		return nil, fmt.Errorf("agent job search failed: %s", parsed.Error)
	}

	return parsed.Jobs, nil
}
