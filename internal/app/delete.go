package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <value>",
	Short: "Delete a stored string",
	Example: `  # Delete a stored string by its exact value
  stringd delete "racecar"`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	RootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	st, svc, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := svc.DeleteByValue(args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted %q.\n", args[0])
	return nil
}
