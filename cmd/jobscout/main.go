// Package main provides the entry point for the jobscout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Job discovery and matching pipeline",
	Long:  "jobscout discovers company career pages, extracts their job listings through an ordered strategy cascade, and scores every listing against your preferences.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
