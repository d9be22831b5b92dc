package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/ingestion"
	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/matching"
	"github.com/jonathan/jobscout/internal/observability"
	"github.com/jonathan/jobscout/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full discovery, extraction, and matching pipeline",
	Long: `Sequences career page discovery, job extraction, and relevance scoring across a company list.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath   string
	runCompanies    string
	runPreferences  string
	runProfile      string
	runOutput       string
	runAPIKey       string
	runAgentURL     string
	runProxyURL     string
	runRedisURL     string
	runUseBrowser   bool
	runUseVision    bool
	runVerbose      bool
	runBatchSize    int
	runMaxCompanies int
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runCompanies, "companies", "c", "", "Path to companies JSON file")
	runCommand.Flags().StringVarP(&runPreferences, "preferences", "p", "", "Path to user preferences JSON file")
	runCommand.Flags().StringVar(&runProfile, "profile", "", "Path to user profile JSON file (optional)")
	runCommand.Flags().StringVarP(&runOutput, "out", "o", "", "Path to write the match report JSON (defaults to stdout)")
	runCommand.Flags().StringVar(&runAgentURL, "agent-url", "", "Browser-automation agent base URL (optional)")
	runCommand.Flags().StringVar(&runProxyURL, "fetch-proxy-url", "", "Fetch proxy collaborator base URL (optional)")
	runCommand.Flags().StringVar(&runRedisURL, "redis-url", "", "Redis URL for shared caching (optional, defaults to in-memory)")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	runCommand.Flags().BoolVar(&runUseVision, "use-vision", false, "Enable the vision navigation strategy (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().IntVar(&runBatchSize, "batch-size", 0, "Companies per discovery batch")
	runCommand.Flags().IntVar(&runMaxCompanies, "max-companies", 0, "Cap on companies processed per run")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Companies == "" {
		return fmt.Errorf("companies file is required (use --companies or config)")
	}
	if cfg.Preferences == "" {
		return fmt.Errorf("preferences file is required (use --preferences or config)")
	}

	apiKey, err := resolveAPIKey(cfg)
	if err != nil {
		return err
	}

	companies, err := ingestion.LoadCompanies(cfg.Companies)
	if err != nil {
		return err
	}
	if cfg.MaxCompanies > 0 && len(companies) > cfg.MaxCompanies {
		companies = companies[:cfg.MaxCompanies]
	}
	prefs, err := ingestion.LoadPreferences(cfg.Preferences)
	if err != nil {
		return err
	}
	profile, err := ingestion.LoadProfile(cfg.Profile)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	redisClient, err := buildRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	fetcher := buildFetcher(cfg)
	locator, err := buildLocator(ctx, cfg, fetcher, redisClient)
	if err != nil {
		return err
	}
	cascade := buildCascade(cfg, fetcher, client, prefs, redisClient)
	scorer := matching.NewScorer(matching.NewLLMAnalyzer(client), nil)
	printer := observability.NewPrinter(os.Stdout)

	runner := pipeline.NewRunner(locator, cascade, scorer, printer)

	fmt.Printf("Processing %d companies...\n", len(companies))
	result, runErr := runner.Run(ctx, pipeline.Options{
		Companies:       companies,
		Profile:         profile,
		Preferences:     prefs,
		BatchSize:       cfg.BatchSize,
		ExtractionDelay: time.Duration(cfg.ExtractionDelay) * time.Second,
		Verbose:         cfg.Verbose,
		OnProgress: func(event pipeline.ProgressEvent) {
			fmt.Printf("[%3.0f%%] %-10s %s: %s\n", event.Percent, event.Step, event.Company, event.Message)
		},
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Run interrupted: %v (writing partial results)\n", runErr)
	}

	if err := writeReport(cfg.Output, result); err != nil {
		return err
	}

	fmt.Printf("Done: %d companies, %d matches.\n", len(result.Companies), len(result.Matches))
	return runErr
}

// loadRunConfig merges the config file with explicitly set CLI flags;
// flags win.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("companies") {
		cfg.Companies = runCompanies
	}
	if cmd.Flags().Changed("preferences") {
		cfg.Preferences = runPreferences
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = runProfile
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = runOutput
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("agent-url") {
		cfg.AgentURL = runAgentURL
	}
	if cmd.Flags().Changed("fetch-proxy-url") {
		cfg.FetchProxyURL = runProxyURL
	}
	if cmd.Flags().Changed("redis-url") {
		cfg.RedisURL = runRedisURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("use-vision") {
		cfg.UseVision = runUseVision
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.BatchSize = runBatchSize
	}
	if cmd.Flags().Changed("max-companies") {
		cfg.MaxCompanies = runMaxCompanies
	}

	return &cfg, nil
}

// writeReport serializes a run result to the output path, or stdout when
// no path is configured.
func writeReport(path string, result *pipeline.RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	fmt.Printf("Report written to %s\n", path)
	return nil
}
