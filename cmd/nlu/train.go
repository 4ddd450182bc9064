package main

import (
	"github.com/spf13/cobra"

	"github.com/neurlang/nlu/datasets/intents"
	"github.com/neurlang/nlu/engine"
	"github.com/neurlang/nlu/logger"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train on a dataset and persist the model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := intents.LoadFile(cfg.Dataset)
		if err != nil {
			return err
		}
		nlu := engine.New(engineConfig(cfg))
		if err := nlu.Fit(d); err != nil {
			return err
		}
		if err := nlu.Persist(cfg.Model); err != nil {
			return err
		}
		m := nlu.Manifest()
		logger.Logger.Infow("Model ready",
			"model", cfg.Model,
			"model_id", m.ModelID,
			"training_success", m.TrainingSuccess,
			"digest", m.Digest)
		return nil
	},
}

func init() {
	trainCmd.Flags().String("dataset", "dataset.json", "training dataset, snips json format")
	trainCmd.Flags().String("model", "../model", "model directory to write, replaced if it exists")
	trainCmd.Flags().Int("heads", 3, "hashtron heads per voting network")
	trainCmd.Flags().Uint32("premodulo-floor", 30011, "smallest premodulo prime of the heads")
	trainCmd.Flags().Int("threads", 0, "training threads, 0 for the number of cpus")
	trainCmd.Flags().Uint8("significance", 0, "evaluate on a sample sufficient at this significance, 0 for all utterances")
	trainCmd.Flags().Int("max-slot-span", 8, "most words a slot value may span")
}
