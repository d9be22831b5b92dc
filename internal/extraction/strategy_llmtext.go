package extraction

import (
	"context"
	"encoding/json"

	"github.com/jonathan/jobscout/internal/fetch"
	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/prompts"
	"github.com/jonathan/jobscout/internal/schemas"
	"github.com/jonathan/jobscout/internal/types"
)

const textConfidence = 0.75

// TextStrategy fetches the career page as plain text and has an LLM emit a
// structured job array. Malformed model output surfaces as a ParseError so
// the cascade can fall through to the pattern strategy.
type TextStrategy struct {
	fetcher fetch.Fetcher
	client  llm.Client
}

// NewTextStrategy creates the AI text-parsing strategy.
func NewTextStrategy(fetcher fetch.Fetcher, client llm.Client) *TextStrategy {
	return &TextStrategy{fetcher: fetcher, client: client}
}

// Name identifies the strategy in extraction results.
func (s *TextStrategy) Name() string { return "llm-text" }

// Extract fetches, prompts, parses, and schema-validates. Page text is
// quoted as untrusted content before entering the prompt.
func (s *TextStrategy) Extract(ctx context.Context, company types.Company, careerPageURL string) ([]types.JobListing, float64, error) {
	result, err := s.fetcher.Fetch(ctx, careerPageURL, false)
	if err != nil {
		return nil, 0, err
	}

	template, err := prompts.Get("extraction.json", "parse-jobs")
	if err != nil {
		return nil, 0, err
	}
	pageText := fetch.TruncateText(result.Text, fetch.DefaultTextBudget)
	prompt := prompts.Format(template, map[string]string{
		"PageText": llm.QuoteExternalContent(pageText, "CAREER PAGE TEXT"),
	})

	response, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, 0, err
	}

	raws, err := parseListingArray(response)
	if err != nil {
		return nil, 0, err
	}

	return buildListings(company, raws), textConfidence, nil
}

// parseListingArray decodes a model response into raw listings, regex-
// extracting the array from surrounding prose before giving up.
func parseListingArray(response string) ([]rawListing, error) {
	var raws []rawListing
	payload := response
	if err := json.Unmarshal([]byte(payload), &raws); err != nil {
		payload = llm.ExtractJSONArray(response)
		if payload == "" {
			return nil, &ParseError{Strategy: "llm-text", Message: "no JSON array in response"}
		}
		if err := json.Unmarshal([]byte(payload), &raws); err != nil {
			return nil, &ParseError{Strategy: "llm-text", Message: "malformed job array", Cause: err}
		}
	}

	if err := schemas.ValidateJobListings(payload); err != nil {
		return nil, &ParseError{Strategy: "llm-text", Message: "job array failed schema validation", Cause: err}
	}
	return raws, nil
}
