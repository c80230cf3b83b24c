package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequirePath validates that exactly one path argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequirePath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <path>

Usage: %s

Example:
  %s ./dist`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireSourceAndDest validates that a source and a destination are provided.
func RequireSourceAndDest(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf(`missing required argument: <source> <dest>

Usage: %s

Example:
  %s ./build ./dist`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts 2 arg(s), received %d", len(args))
	}
	return nil
}
