package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"titanic-service/internal/app"
	"titanic-service/internal/config"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Create the schema and load the source CSV, then report the row count",
		Long: `Creates the pclass, port and passenger tables when they are missing and loads
them from DATA_PATH/DATA_FILE. Existing tables are left untouched, so running
import twice never duplicates rows.`,
		Args: cobra.NoArgs,
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := app.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.Repository.Count(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "passenger table holds %d rows\n", n)
	return nil
}
