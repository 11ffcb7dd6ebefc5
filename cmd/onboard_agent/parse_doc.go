package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/averyk/creator-onboard/internal/docparse"
)

var parseDocCmd = &cobra.Command{
	Use:   "parse-doc",
	Short: "Extract profile fields from a document",
	Long:  "Extract creator profile fields from a media kit, bio page, or press document and print them as JSON. Useful for debugging extraction without a running server.",
	RunE:  runParseDoc,
}

var (
	parseDocInput  string
	parseDocAPIKey string
)

func init() {
	parseDocCmd.Flags().StringVarP(&parseDocInput, "in", "i", "", "Path to document file (required)")
	parseDocCmd.Flags().StringVar(&parseDocAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var; omit for heuristics only)")
	_ = parseDocCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseDocCmd)
}

func runParseDoc(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(parseDocInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	apiKey := parseDocAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	parser := docparse.NewParser(apiKey)
	partial, err := parser.Parse(context.Background(), data, filepath.Base(parseDocInput))
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	out, err := json.MarshalIndent(partial, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
