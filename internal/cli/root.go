package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pubfs",
	Short: "Directory and file tree operations for publishing pipelines",
	Long: `pubfs creates, copies, moves, prunes and hashes directory trees.

Copies are content-aware: a destination that already holds the same bytes is
left untouched, and a destination with different bytes is only replaced when
overwrite is enabled.

Settings are read from pubfs.yaml and .env in the --config directory and from
PUBFS_* environment variables.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Source not found
  12 - Destination differs and overwrite is disabled
  13 - Retries exhausted`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress log output on stderr")
	rootCmd.PersistentFlags().String("config", ".", "Directory containing pubfs.yaml and .env")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func getQuietFlag(cmd *cobra.Command) bool {
	quiet, err := cmd.Flags().GetBool("quiet")
	return err == nil && quiet
}

func getConfigDir(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("config")
	if err != nil || dir == "" {
		return "."
	}
	return dir
}
