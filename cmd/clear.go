package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/style"
	"github.com/rko-cli/rko/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("all", "a", false, "Clear every location listed below")
	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

var clearCmd = &cobra.Command{
	Use:   "clear [location...]",
	Short: "Delete cached responses, recent queries, history and other rko artifacts",
	Long: "Delete rko artifacts from disk.\nLocations: " +
		fmt.Sprint(locationNames(true)),
	Example:   "  rko clear responses queries\n  rko clear --all --yes",
	Args:      cobra.OnlyValidArgs,
	ValidArgs: locationNames(true),
	Run: func(cmd *cobra.Command, args []string) {
		names := lo.Uniq(args)
		if lo.Must(cmd.Flags().GetBool("all")) {
			names = locationNames(true)
		}
		if len(names) == 0 {
			handleErr(cmd.Help())
			return
		}

		targets := lo.Map(names, func(name string, _ int) location {
			l, _ := findLocation(name)
			return l
		})

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			err := survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Delete %s?", util.Quantify(len(targets), "location", "locations")),
				Default: false,
			}, &confirmed)
			if errors.Is(err, errInterrupted) || !confirmed {
				return
			}
			handleErr(err)
		}

		for _, target := range targets {
			freed := footprint(target.path())
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := filesystem.API().RemoveAll(target.path())
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared %s\n",
				style.Fg(style.Green)(icon.Get(icon.Success)),
				target.name,
				style.Faint("("+util.FormatBytes(freed)+")"),
			)
		}
	},
}
