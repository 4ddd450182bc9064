package main

import (
	"github.com/spf13/cobra"

	"github.com/neurlang/nlu/datasets/intents"
)

var generateCmd = &cobra.Command{
	Use:   "generate-dataset <language> <yaml-pattern>...",
	Short: "Generate a json dataset from yaml intent and entity files",
	Long: `Merge the yaml files matched by the patterns into one dataset and print it as json.
Patterns support ** to match any number of directories.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := intents.GenerateDataset(args[0], args[1:]...)
		if err != nil {
			return err
		}
		return d.WriteJSON(cmd.OutOrStdout())
	},
}
