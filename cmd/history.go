// Package cmd implements the command-line interface for rko.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/style"
	"github.com/rko-cli/rko/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.PersistentFlags().StringP("backend", "b", "", "History backend to use (json, sqlite)")
	lo.Must0(viper.BindPFlag(key.HistoryBackend, historyCmd.PersistentFlags().Lookup("backend")))
}

// historyCmd manages the local log of download attempts.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the log of download attempts",
	Run: func(cmd *cobra.Command, args []string) {
		historyListCmd.Run(historyListCmd, args)
	},
}

// openHistory opens the configured backend regardless of history.enabled, which only governs writes.
func openHistory() history.Store {
	store, err := history.Open(viper.GetString(key.HistoryBackend))
	handleErr(err)
	return store
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	historyListCmd.Flags().IntP("limit", "n", 0, "Show only the most recent entries")
}

// historyListCmd prints recorded attempts, oldest first.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded download attempts",
	Run: func(cmd *cobra.Command, args []string) {
		store := openHistory()
		defer store.Close()

		attempts, err := store.List(context.Background())
		handleErr(err)

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(attempts) > limit {
			attempts = attempts[len(attempts)-limit:]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			if attempts == nil {
				attempts = []history.Attempt{}
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(attempts))
			return
		}

		if len(attempts) == 0 {
			fmt.Println(style.Faint(history.Placeholder))
			return
		}

		for _, a := range attempts {
			fmt.Printf(
				"%s %s\n  %s\n",
				outcomeGlyph(a.Outcome),
				style.Bold(a.Filename),
				style.Faint(fmt.Sprintf("%s · %s · %s · %s", a.Platform, a.Author, a.Timestamp.Local().Format("2006-01-02 15:04"), a.URL)),
			)
		}
	},
}

func outcomeGlyph(outcome history.Outcome) string {
	switch outcome {
	case history.OutcomeSuccess:
		return style.Fg(style.Green)(icon.Get(icon.Success))
	case history.OutcomeFallback:
		return style.Fg(style.Yellow)(icon.Get(icon.Fallback))
	default:
		return style.Fg(style.Red)(icon.Get(icon.Fail))
	}
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	historyClearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// historyClearCmd removes every recorded attempt.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every recorded download attempt",
	Run: func(cmd *cobra.Command, args []string) {
		store := openHistory()
		defer store.Close()

		attempts, err := store.List(context.Background())
		handleErr(err)

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			err := survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Remove %s?", util.Quantify(len(attempts), "entry", "entries")),
				Default: false,
			}, &confirmed)
			if errors.Is(err, errInterrupted) || !confirmed {
				return
			}
			handleErr(err)
		}

		handleErr(store.Clear(context.Background()))
		success("history cleared")
	},
}
