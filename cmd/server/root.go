// server imports the Titanic passenger list and serves classifier training
// over HTTP.
//
// Usage:
//
//	server [serve]
//	server import
//	server train --model=<log_reg|svm|knn>
//	server train --all
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "server",
		Short: "Titanic survival training service",
		Long: "Imports the Titanic passenger CSV into a normalised schema and trains\n" +
			"logistic regression, SVM and KNN survival classifiers on it.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newTrainCmd())
	root.Version = version
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
