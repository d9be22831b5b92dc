package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/ingestion"
	"github.com/jonathan/jobscout/internal/llm"
	"github.com/jonathan/jobscout/internal/matching"
	"github.com/jonathan/jobscout/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a job listings file against user preferences",
	Long:  "Scores each listing in a JSON file against the user's preferences and profile, printing ranked matches as JSON.",
	RunE:  runMatch,
}

var (
	matchJobsFile    string
	matchPreferences string
	matchProfile     string
	matchAPIKey      string
	matchNoAI        bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchJobsFile, "jobs", "j", "", "Path to job listings JSON file (required)")
	matchCmd.Flags().StringVarP(&matchPreferences, "preferences", "p", "", "Path to user preferences JSON file (required)")
	matchCmd.Flags().StringVar(&matchProfile, "profile", "", "Path to user profile JSON file (optional)")
	matchCmd.Flags().StringVar(&matchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	matchCmd.Flags().BoolVar(&matchNoAI, "no-ai", false, "Skip the AI overall-fit analysis (rule-based axes only)")
	_ = matchCmd.MarkFlagRequired("jobs")
	_ = matchCmd.MarkFlagRequired("preferences")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	data, err := os.ReadFile(matchJobsFile)
	if err != nil {
		return fmt.Errorf("failed to read jobs file: %w", err)
	}
	var jobs []types.JobListing
	if err := json.Unmarshal(data, &jobs); err != nil {
		return fmt.Errorf("failed to parse jobs JSON: %w", err)
	}

	prefs, err := ingestion.LoadPreferences(matchPreferences)
	if err != nil {
		return err
	}
	profile, err := ingestion.LoadProfile(matchProfile)
	if err != nil {
		return err
	}

	var analyzer matching.FitAnalyzer
	if !matchNoAI {
		apiKey, err := resolveAPIKey(&config.Config{APIKey: matchAPIKey})
		if err != nil {
			return err
		}
		client, err := llm.NewClient(ctx, nil, apiKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		analyzer = matching.NewLLMAnalyzer(client)
	}

	scorer := matching.NewScorer(analyzer, nil)
	matches := scorer.MatchJobs(ctx, jobs, profile, prefs)

	out, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode matches: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
