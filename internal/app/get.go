package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"stringd/internal/output"
)

var getCmd = &cobra.Command{
	Use:   "get <value>",
	Short: "Show the stored analysis for a string",
	Example: `  # Look up a stored string by its exact value
  stringd get "racecar"`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	RootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	st, svc, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := svc.GetByValue(args[0])
	if err != nil {
		return err
	}

	fmt.Print(output.RenderRecordDetail(rec))
	return nil
}
