package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rko-cli/rko/color"
	"github.com/rko-cli/rko/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(whereCmd)
	whereCmd.Flags().BoolP("json", "j", false, "Print every location as a JSON object")
	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:       "where [location]",
	Short:     "Show where rko keeps its files",
	Long:      "Show where rko keeps its files.\nWith a location name only that path is printed, which suits shell scripts.",
	Example:   "  cd \"$(rko where downloads)\"",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: locationNames(false),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			l, _ := findLocation(args[0])
			cmd.Println(l.path())
			return
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			paths := lo.SliceToMap(locations, func(l location) (string, string) {
				return l.name, l.path()
			})
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(paths))
			return
		}

		name := style.New().Bold(true).Foreground(color.HiPurple).Render
		for _, l := range locations {
			cmd.Printf("%s %s\n  %s\n", name(fmt.Sprintf("%-10s", l.name)), style.Faint(l.about), l.path())
		}
	},
}
