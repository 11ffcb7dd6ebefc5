package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/averyk/creator-onboard/internal/smartsearch"
	"github.com/averyk/creator-onboard/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the web for a creator's public profile",
	Long:  "Search the web for a creator by name, handle, or website and print the extracted profile fields as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var searchKind string

func init() {
	searchCmd.Flags().StringVar(&searchKind, "kind", "name", "Search kind: name, handle, or website")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	apiKey := os.Getenv("SEARCH_API_KEY")
	cx := os.Getenv("SEARCH_CX")
	if apiKey == "" || cx == "" {
		return fmt.Errorf("SEARCH_API_KEY and SEARCH_CX environment variables are required")
	}

	var kind types.SearchKind
	switch searchKind {
	case "name":
		kind = types.SearchByName
	case "handle":
		kind = types.SearchByHandle
	case "website":
		kind = types.SearchByWebsite
	default:
		return fmt.Errorf("invalid kind %q: must be name, handle, or website", searchKind)
	}

	ctx := context.Background()
	searcher, err := smartsearch.NewSearcher(ctx, apiKey, cx)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	partial, err := searcher.Search(ctx, args[0], kind)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out, err := json.MarshalIndent(partial, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
