package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/jobscout/internal/agent"
	"github.com/jonathan/jobscout/internal/cache"
	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/discovery"
	"github.com/jonathan/jobscout/internal/extraction"
	"github.com/jonathan/jobscout/internal/fetch"
	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/types"
)

// resolveAPIKey returns the Gemini key from the config or the environment.
func resolveAPIKey(cfg *config.Config) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or api_key in config)")
}

// buildFetcher assembles the ordered fetch strategy chain: direct HTTP,
// then the fetch proxy if configured, then browser rendering if enabled.
func buildFetcher(cfg *config.Config) fetch.Fetcher {
	fetchers := []fetch.Fetcher{fetch.NewDirect(nil)}
	if cfg.FetchProxyURL != "" {
		fetchers = append(fetchers, fetch.NewProxy(cfg.FetchProxyURL, 0))
	}
	if cfg.UseBrowser {
		fetchers = append(fetchers, fetch.NewBrowser(0))
	}
	return fetch.NewChain(fetchers...)
}

// buildLocator assembles the career page locator with its search capability
// and cache backend.
func buildLocator(ctx context.Context, cfg *config.Config, fetcher fetch.Fetcher, redisClient *redis.Client) (*discovery.Locator, error) {
	var searcher discovery.Searcher
	searchKey := cfg.SearchAPIKey
	if searchKey == "" {
		searchKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	searchCX := cfg.SearchCX
	if searchCX == "" {
		searchCX = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if searchKey != "" && searchCX != "" {
		gs, err := discovery.NewGoogleSearcher(ctx, searchKey, searchCX)
		if err != nil {
			return nil, fmt.Errorf("failed to create searcher: %w", err)
		}
		searcher = gs
	}

	var store cache.Store[types.CareerPageResult]
	if redisClient != nil {
		store = cache.NewRedis[types.CareerPageResult](redisClient, "career-page", discovery.CareerPageTTL)
	}
	return discovery.NewLocator(fetcher, searcher, store), nil
}

// buildCascade assembles the extraction strategy cascade in its fixed order.
// Strategies whose collaborators are not configured are left out.
func buildCascade(cfg *config.Config, fetcher fetch.Fetcher, client llm.Client, prefs types.UserPreferences, redisClient *redis.Client) *extraction.Cascade {
	var strategies []extraction.Strategy

	if cfg.AgentURL != "" {
		strategies = append(strategies, extraction.NewAgentStrategy(agent.NewClient(cfg.AgentURL, 0), prefs))
	}
	if cfg.UseVision {
		newSession := func(ctx context.Context) (extraction.Session, error) {
			return extraction.NewChromeSession(ctx, 0)
		}
		strategies = append(strategies, extraction.NewVisionStrategy(newSession, extraction.NewLLMDecider(client)))
	}
	strategies = append(strategies,
		extraction.NewTextStrategy(fetcher, client),
		extraction.NewPatternStrategy(fetcher),
	)

	var store cache.Store[extraction.Result]
	if redisClient != nil {
		store = cache.NewRedis[extraction.Result](redisClient, "extraction", extraction.ExtractionTTL)
	}
	return extraction.NewCascade(store, strategies...)
}

// buildRedis connects to Redis when a URL is configured; nil means
// in-memory caching.
func buildRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return client, nil
}
