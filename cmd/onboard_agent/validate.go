package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/averyk/creator-onboard/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate [payload.json]",
	Short: "Validate a profile payload against the submit schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read payload file: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to parse payload JSON: %w", err)
	}

	if err := schemas.ValidateSubmitPayload(payload); err != nil {
		return err
	}

	fmt.Println("Payload is valid.")
	return nil
}
