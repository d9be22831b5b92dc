package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/types"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Locate the career page for a single company",
	Long:  "Generates, scores, and validates career page candidates for one company and prints the confidence-scored result as JSON.",
	RunE:  runLocate,
}

var (
	locateName    string
	locateWebsite string
	locateProxy   string
)

func init() {
	locateCmd.Flags().StringVarP(&locateName, "name", "n", "", "Company name (required)")
	locateCmd.Flags().StringVarP(&locateWebsite, "website", "w", "", "Company website URL (optional)")
	locateCmd.Flags().StringVar(&locateProxy, "fetch-proxy-url", "", "Fetch proxy collaborator base URL (optional)")
	_ = locateCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(locateCmd)
}

func runLocate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := &config.Config{FetchProxyURL: locateProxy}
	fetcher := buildFetcher(cfg)
	locator, err := buildLocator(ctx, cfg, fetcher, nil)
	if err != nil {
		return err
	}

	company := types.Company{ID: "adhoc", Name: locateName, WebsiteURL: locateWebsite}
	result, err := locator.Locate(ctx, company)
	if err != nil {
		return fmt.Errorf("locate failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
