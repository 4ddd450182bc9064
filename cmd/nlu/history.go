package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/neurlang/nlu/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent logged parses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.LogDB == "" {
			return errors.New("no parse log, set --log-db")
		}
		limit, _ := cmd.Flags().GetInt("limit")
		log, err := store.Open(cfg.LogDB)
		if err != nil {
			return err
		}
		defer log.Close()

		messages, err := log.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		data := pterm.TableData{{"ID", "Posted", "Content", "Intent", "Probability", "Slots"}}
		for _, m := range messages {
			var slots []string
			for _, s := range m.Slots {
				slots = append(slots, s.SlotName+"="+s.Value.String)
			}
			data = append(data, []string{
				fmt.Sprint(m.ID),
				m.Posted.Local().Format("2006-01-02 15:04:05"),
				m.Content,
				m.IntentName,
				fmt.Sprintf("%.2f", m.Probability),
				strings.Join(slots, " "),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
	},
}

func init() {
	historyCmd.Flags().String("log-db", "", "sqlite database parses were logged to")
	historyCmd.Flags().Int("limit", 20, "number of parses to show")
}
