package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stringd/internal/analyzer"
	"stringd/internal/output"
)

var (
	analyzeNoStore bool

	analyzeCmd = &cobra.Command{
		Use:   "analyze <value>",
		Short: "Analyze a string and store the result",
		Long: `Analyze a string and store the result in the database.

The analysis covers character length, palindrome detection (case-insensitive),
word count, unique character count, and per-character frequencies. Re-analyzing
a value that is already stored returns the existing record unchanged.`,
		Example: `  # Analyze and store
  stringd analyze "racecar"

  # Multi-word values are a single argument
  stringd analyze "never odd or even"

  # Analyze without touching the database
  stringd analyze --no-store "scratch value"`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "analyze without storing the result")

	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	value := args[0]

	if analyzeNoStore {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return fmt.Errorf("value cannot be empty")
		}
		fmt.Print(output.RenderRecordDetail(analyzer.Analyze(trimmed)))
		return nil
	}

	st, svc, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, created, err := svc.AnalyzeAndStore(value)
	if err != nil {
		return err
	}

	if !created {
		fmt.Println("Already stored; returning existing record.")
		fmt.Println()
	}
	fmt.Print(output.RenderRecordDetail(rec))
	return nil
}
