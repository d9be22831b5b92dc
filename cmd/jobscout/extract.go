package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract job listings from a career page URL",
	Long:  "Runs the extraction strategy cascade against one career page URL and prints the extracted listings as JSON.",
	RunE:  runExtract,
}

var (
	extractURL        string
	extractName       string
	extractAPIKey     string
	extractAgentURL   string
	extractUseVision  bool
	extractUseBrowser bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractURL, "url", "u", "", "Career page URL (required)")
	extractCmd.Flags().StringVarP(&extractName, "name", "n", "", "Company name (required)")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	extractCmd.Flags().StringVar(&extractAgentURL, "agent-url", "", "Browser-automation agent base URL (optional)")
	extractCmd.Flags().BoolVar(&extractUseVision, "use-vision", false, "Enable the vision navigation strategy (requires Chrome)")
	extractCmd.Flags().BoolVar(&extractUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	_ = extractCmd.MarkFlagRequired("url")
	_ = extractCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := &config.Config{
		APIKey:     extractAPIKey,
		AgentURL:   extractAgentURL,
		UseVision:  extractUseVision,
		UseBrowser: extractUseBrowser,
	}
	apiKey, err := resolveAPIKey(cfg)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	fetcher := buildFetcher(cfg)
	cascade := buildCascade(cfg, fetcher, client, types.UserPreferences{}, nil)

	company := types.Company{ID: "adhoc", Name: extractName}
	result, err := cascade.Extract(ctx, company, extractURL)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
