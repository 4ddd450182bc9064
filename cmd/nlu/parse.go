package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/neurlang/nlu/engine"
	"github.com/neurlang/nlu/logger"
	"github.com/neurlang/nlu/parser"
	"github.com/neurlang/nlu/store"
)

var parseCmd = &cobra.Command{
	Use:   "parse [sentence...]",
	Short: "Parse sentences with a trained model",
	Long: `Parse the sentences given as arguments, or every line of stdin when there are none.
Results are printed as JSON lines unless --table is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		nlu, err := engine.Load(cfg.Model)
		if err != nil {
			return err
		}
		filter, _ := cmd.Flags().GetStringSlice("intents")
		table, _ := cmd.Flags().GetBool("table")
		ranked, _ := cmd.Flags().GetBool("get-intents")

		var log *store.Store
		if cfg.LogDB != "" {
			if log, err = store.Open(cfg.LogDB); err != nil {
				return err
			}
			defer log.Close()
		}

		out := cmd.OutOrStdout()
		handle := func(sentence string) error {
			if ranked {
				intents, err := nlu.GetIntents(sentence)
				if err != nil {
					return err
				}
				if table {
					return renderIntents(out, sentence, intents)
				}
				return json.NewEncoder(out).Encode(intents)
			}
			result, err := nlu.Parse(sentence, filter...)
			if err != nil {
				return err
			}
			if log != nil {
				if _, err := log.LogParse(cmd.Context(), result, time.Now()); err != nil {
					logger.Logger.Warnw("Can't log parse", "error", err)
				}
			}
			if table {
				return renderResult(out, result)
			}
			return json.NewEncoder(out).Encode(result)
		}

		if len(args) > 0 {
			return handle(strings.Join(args, " "))
		}
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				if err := handle(line); err != nil {
					return err
				}
			}
		}
		return scanner.Err()
	},
}

func init() {
	parseCmd.Flags().String("model", "../model", "model directory")
	parseCmd.Flags().StringSlice("intents", nil, "only consider these intents")
	parseCmd.Flags().Bool("table", false, "print results as tables")
	parseCmd.Flags().Bool("get-intents", false, "print the probability of every intent instead")
	parseCmd.Flags().String("log-db", "", "sqlite database to log parses to")
}

func renderResult(w io.Writer, r parser.Result) error {
	intent, probability := "-", "-"
	if r.Intent != nil {
		intent = r.Intent.IntentName
		probability = fmt.Sprintf("%.2f", r.Intent.Probability)
	}
	data := pterm.TableData{{"Input", "Intent", "Probability"}, {r.Input, intent, probability}}
	if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render(); err != nil {
		return err
	}
	if len(r.Slots) == 0 {
		return nil
	}
	slots := pterm.TableData{{"Slot", "Entity", "Raw", "Value", "Range"}}
	for _, s := range r.Slots {
		slots = append(slots, []string{
			s.SlotName, s.Entity, s.RawValue, fmt.Sprint(s.Value.Value),
			fmt.Sprintf("%d-%d", s.Range.Start, s.Range.End),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(slots).Render()
}

func renderIntents(w io.Writer, input string, intents []parser.IntentResult) error {
	data := pterm.TableData{{"Intent", "Probability"}}
	for _, r := range intents {
		data = append(data, []string{r.IntentName, fmt.Sprintf("%.2f", r.Probability)})
	}
	fmt.Fprintln(w, input)
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}
