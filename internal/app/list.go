package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"stringd/internal/nlfilter"
	"stringd/internal/output"
	"stringd/internal/store"
)

var (
	listPalindromes bool
	listMinLength   int
	listMaxLength   int
	listWordCount   int
	listContains    string
	listQuery       string

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List stored strings",
		Long: `List stored strings in insertion order, optionally filtered by their
computed properties.

Flags combine with AND semantics. Alternatively, --query accepts a simple
plain-words filter ("all palindromic strings longer than 10 characters")
and cannot be combined with the other filter flags.`,
		Example: `  # List everything
  stringd list

  # Palindromes only
  stringd list --palindromes

  # Non-palindromes of 5 to 10 characters
  stringd list --palindromes=false --min-length 5 --max-length 10

  # Single-word strings containing the letter z
  stringd list --word-count 1 --contains z

  # Plain-words filtering
  stringd list --query "palindromic strings that contain the letter a"`,
		RunE: runList,
	}
)

func init() {
	listCmd.Flags().BoolVar(&listPalindromes, "palindromes", false, "filter by palindrome status")
	listCmd.Flags().IntVar(&listMinLength, "min-length", -1, "minimum character length")
	listCmd.Flags().IntVar(&listMaxLength, "max-length", -1, "maximum character length")
	listCmd.Flags().IntVar(&listWordCount, "word-count", -1, "exact word count")
	listCmd.Flags().StringVar(&listContains, "contains", "", "must contain this character")
	listCmd.Flags().StringVar(&listQuery, "query", "", "plain-words filter query")

	RootCmd.AddCommand(listCmd)
}

// buildListFilter assembles the store filter from the list flags. The
// palindrome flag is tri-state: untouched means no filtering.
func buildListFilter(cmd *cobra.Command) (store.Filter, error) {
	if listQuery != "" {
		if cmd.Flags().Changed("palindromes") || listMinLength >= 0 || listMaxLength >= 0 ||
			listWordCount >= 0 || listContains != "" {
			return store.Filter{}, fmt.Errorf("--query cannot be combined with other filter flags")
		}
		return nlfilter.Parse(listQuery)
	}

	var f store.Filter
	if cmd.Flags().Changed("palindromes") {
		v := listPalindromes
		f.IsPalindrome = &v
	}
	if listMinLength >= 0 {
		v := listMinLength
		f.MinLength = &v
	}
	if listMaxLength >= 0 {
		v := listMaxLength
		f.MaxLength = &v
	}
	if listWordCount >= 0 {
		v := listWordCount
		f.WordCount = &v
	}
	f.ContainsCharacter = listContains

	return f, nil
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := buildListFilter(cmd)
	if err != nil {
		return err
	}

	st, svc, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := svc.List(filter)
	if err != nil {
		return err
	}

	fmt.Print(output.RenderRecordTable(records))
	return nil
}
