package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/prompts"
	"github.com/jonathan/jobscout/internal/types"
)

// Vision navigation actions.
const (
	ActionClickElement = "click_element"
	ActionScrollPage   = "scroll_page"
	ActionExtractJobs  = "extract_jobs"
	ActionNavigateNext = "navigate_next"
	ActionComplete     = "complete"
)

// PartialJob is what one extract_jobs step yields per listing. Missing
// fields receive defaults during normalization.
type PartialJob struct {
	Title          string `json:"title"`
	Location       string `json:"location,omitempty"`
	ApplicationURL string `json:"application_url,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	RemoteType     string `json:"remote_type,omitempty"`
}

// VisionAction is one navigation decision from the vision model.
type VisionAction struct {
	Action     string       `json:"action"`
	Element    string       `json:"element,omitempty"`
	Jobs       []PartialJob `json:"jobs,omitempty"`
	Reasoning  string       `json:"reasoning,omitempty"`
	Confidence float64      `json:"confidence"`
}

// Decider classifies a page screenshot and chooses the next navigation
// action. Injected so the step loop is testable without a model.
type Decider interface {
	NextAction(ctx context.Context, screenshot []byte, history []string) (*VisionAction, error)
}

// Session is the side-effecting browser surface the vision loop drives.
// Injected so the step loop is testable without a browser.
type Session interface {
	Navigate(ctx context.Context, urlStr string) error
	Screenshot(ctx context.Context) ([]byte, error)
	Click(ctx context.Context, visibleText string) error
	Scroll(ctx context.Context) error
	NextPage(ctx context.Context) error
	Close() error
}

// LLMDecider implements Decider over a vision-capable model.
type LLMDecider struct {
	client llm.Client
}

// NewLLMDecider creates a model-backed vision decider.
func NewLLMDecider(client llm.Client) *LLMDecider {
	return &LLMDecider{client: client}
}

// NextAction sends the screenshot plus step history to the vision model and
// parses its single-action JSON answer.
func (d *LLMDecider) NextAction(ctx context.Context, screenshot []byte, history []string) (*VisionAction, error) {
	template, err := prompts.Get("extraction.json", "vision-step")
	if err != nil {
		return nil, err
	}

	historyText := "(no steps taken yet)"
	if len(history) > 0 {
		historyText = strings.Join(history, "\n")
	}
	prompt := prompts.Format(template, map[string]string{"History": historyText})

	response, err := d.client.GenerateVisionJSON(ctx, prompt, screenshot)
	if err != nil {
		return nil, err
	}

	payload := llm.ExtractJSONObject(response)
	if payload == "" {
		return nil, &ParseError{Strategy: "vision", Message: "no JSON object in vision response"}
	}

	var action VisionAction
	if err := json.Unmarshal([]byte(payload), &action); err != nil {
		return nil, &ParseError{Strategy: "vision", Message: "malformed vision action", Cause: err}
	}
	action.Confidence = types.Clamp01(action.Confidence)

	switch action.Action {
	case ActionClickElement, ActionScrollPage, ActionExtractJobs, ActionNavigateNext, ActionComplete:
		return &action, nil
	default:
		return nil, &ParseError{Strategy: "vision", Message: fmt.Sprintf("unknown action %q", action.Action)}
	}
}
