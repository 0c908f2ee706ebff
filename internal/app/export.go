package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"stringd/internal/export"
)

var (
	exportCmd = &cobra.Command{
		Use:   "export [path]",
		Short: "Dump the store to a compressed JSON file",
		Long: `Write every stored record to a gzip-compressed JSON file.

The dump contains the full analysis for each string and can be loaded into
another database with 'stringd import'.`,
		Example: `  # Dump to the default file name
  stringd export

  # Dump to a specific path
  stringd export /tmp/strings.json.gz`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}

	importCmd = &cobra.Command{
		Use:   "import <path>",
		Short: "Load a dump produced by export",
		Long: `Analyze and store every value from a dump file.

Values already in the database are skipped, so importing the same dump twice
is harmless.`,
		Example: `  stringd import /tmp/strings.json.gz`,
		Args:    cobra.ExactArgs(1),
		RunE:    runImport,
	}
)

func init() {
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	path := "strings-export.json.gz"
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, svc, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	exp := export.NewExporter(svc, newLogger(cfg))
	n, err := exp.Export(path)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d records to %s\n", n, path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, svc, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	exp := export.NewExporter(svc, newLogger(cfg))
	created, err := exp.Import(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d new records from %s\n", created, args[0])
	return nil
}
