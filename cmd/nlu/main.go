// Package main is the nlu command: train models, parse sentences, generate datasets
// and review the parse log.
package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/neurlang/nlu/config"
	"github.com/neurlang/nlu/engine"
	"github.com/neurlang/nlu/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "nlu",
	Short: "Intent and slot parser trained with hashtron voting networks",
	Long: `nlu trains an intent and slot parser on a snips format dataset and runs it.

Settings come from flags, NLU_ environment variables and an nlu.toml file in the
config directory, in decreasing precedence.

Examples:
  nlu generate-dataset en intents/*.yaml > dataset.json
  nlu train --dataset dataset.json --model ../model
  nlu parse --model ../model "roll 2 dice"
  nlu parse --table --log-db parses.db < sentences.txt
  nlu history --log-db parses.db`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("config-dir")
		v, err := config.New(dir)
		if err != nil {
			return err
		}
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Name != "config-dir" {
				_ = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
			}
		})
		if cfg, err = config.LoadWithViper(v); err != nil {
			return err
		}
		if err := logger.Initialize(cfg.LogJSON, cfg.Verbose); err != nil {
			return errors.Wrap(err, "initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config-dir", ".", "directory of the optional nlu.toml")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().Bool("log-json", false, "log JSON lines instead of console output")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
}

func engineConfig(c *config.Config) engine.Config {
	return engine.Config{
		Heads:          c.Heads,
		PremoduloFloor: c.PremoduloFloor,
		Threads:        c.Threads,
		Significance:   c.Significance,
		MaxSlotSpan:    c.MaxSlotSpan,
		MinProbability: c.MinProbability,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Logger.Errorw("Command failed", "error", err)
		logger.Cleanup()
		os.Exit(1)
	}
}
