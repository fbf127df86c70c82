package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"titanic-service/internal/app"
	"titanic-service/internal/config"
	"titanic-service/internal/training"
)

func newTrainCmd() *cobra.Command {
	var (
		model string
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train one or all classifiers and print their metrics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrain(cmd, model, all)
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "model to train: log_reg, svm or knn")
	cmd.Flags().BoolVar(&all, "all", false, "train every model concurrently")
	cmd.MarkFlagsMutuallyExclusive("model", "all")
	cmd.MarkFlagsOneRequired("model", "all")
	return cmd
}

func runTrain(cmd *cobra.Command, model string, all bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := app.Bootstrap(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var result interface{}
	if all {
		metrics, err := a.Orchestrator.TrainAll(cmd.Context())
		if err != nil {
			return err
		}
		result = metrics
	} else {
		metrics, err := a.Orchestrator.Train(model)
		if err != nil {
			return err
		}
		result = map[training.ModelKind]training.Metrics{training.ModelKind(model): metrics}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
