// Package main provides the entry point for the creator onboarding HTTP API
// server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "onboard_agent",
	Short: "Creator Onboarding HTTP API Server",
	Long:  "Creator Onboarding runs the guided profile wizard for the social media automation dashboard: step-by-step draft editing, document import, public profile search, and validated profile submission via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
