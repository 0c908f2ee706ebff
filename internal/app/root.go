package app

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath string

	// RootCmd is the root command for stringd
	RootCmd = &cobra.Command{
		Use:   "stringd",
		Short: "String analysis service with persistent storage",
		Long: `stringd analyzes strings (length, palindrome detection, word counts,
character frequencies) and stores the results in a local SQLite database.
Results are addressable by value and can be filtered by their computed
properties, including via simple natural-language queries.

The same store can be served over HTTP, queried from the command line, or
fed by a directory watcher that ingests dropped files.

Examples:
  # Analyze and store a string
  stringd analyze "racecar"

  # Look up a stored string
  stringd get "racecar"

  # List palindromes of at least 5 characters
  stringd list --palindromes --min-length 5

  # Ask in plain words
  stringd list --query "all palindromic strings longer than 4 characters"

  # Serve the REST API
  stringd serve --addr :8080

  # Ingest files dropped into a directory
  stringd watch --dir ./inbox

  # Dump the store to a compressed JSON file
  stringd export strings.json.gz`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("stringd: string analysis with persistent storage")
			fmt.Println()
			fmt.Println("Run 'stringd analyze <value>' to analyze a string.")
			fmt.Println("Run 'stringd serve' to start the REST API.")
			fmt.Println("Run 'stringd --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.stringd/stringd.db)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	dir, err := stringdDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "stringd.db"), nil
}
