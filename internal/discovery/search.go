package discovery

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Searcher is the external search capability used to seed career page
// candidates. Nil searcher means no search capability is configured and the
// locator falls back to its deterministic URL.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// GoogleSearcher implements Searcher over the Google Custom Search API.
type GoogleSearcher struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleSearcher creates a Google Custom Search backed searcher.
func NewGoogleSearcher(ctx context.Context, apiKey, cx string) (*GoogleSearcher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSearcher{svc: svc, cx: cx}, nil
}

// Search returns result links for a query, at most limit.
func (g *GoogleSearcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 || limit > 10 {
		limit = 10
	}
	resp, err := g.svc.Cse.List().Cx(g.cx).Q(query).Num(int64(limit)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	links := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		links = append(links, item.Link)
	}
	return links, nil
}
