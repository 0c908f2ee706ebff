package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"stringd/internal/analyzer"
	"stringd/internal/output"
	"stringd/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics for the store",
	Example: `  # One-line summary of the stored strings
  stringd stats`,
	RunE: runStats,
}

func init() {
	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st, svc, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := svc.List(store.Filter{})
	if err != nil {
		return err
	}

	fmt.Println(output.RenderStatsSummary(collectStats(records)))
	return nil
}

// collectStats aggregates the per-record analysis into store-wide numbers.
func collectStats(records []*analyzer.Record) output.StoreStats {
	var stats output.StoreStats
	stats.Total = len(records)

	for _, rec := range records {
		if rec.IsPalindrome {
			stats.Palindromes++
		}
		stats.TotalLength += rec.Length
		if rec.Length > stats.MaxLength {
			stats.MaxLength = rec.Length
		}
	}

	return stats
}
