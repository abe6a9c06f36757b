// Package cmd implements the command-line interface for rko.
package cmd

import (
	"fmt"

	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/inline"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/player"
	"github.com/rko-cli/rko/resolver"
	"github.com/rko-cli/rko/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("url", "u", "", "The video URL to play")
	playCmd.Flags().StringP("player", "p", "", "The external player to use (mpv, iina)")
	lo.Must0(viper.BindPFlag(key.Player, playCmd.Flags().Lookup("player")))
	lo.Must0(playCmd.RegisterFlagCompletionFunc("player", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"mpv", "iina"}, cobra.ShellCompDirectiveNoFileComp
	}))

	lo.Must0(playCmd.RegisterFlagCompletionFunc("url", completionURLs))
	playCmd.ValidArgsFunction = completionURLs
}

// playCmd streams a resolved video in an external player.
var playCmd = &cobra.Command{
	Use:   "play [url]",
	Short: "Resolve a video URL and stream it in an external player",
	Long: `Resolve a video URL and stream it in an external player.

Playable sources are tried in order until the player accepts one.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := player.New(viper.GetString(key.Player))
		handleErr(err)
		CheckDependency(p.Name())

		ctx, cancel := interruptible()
		defer cancel()

		output, err := inline.Resolve(ctx, resolver.FromConfig(), nil, sourceURL(cmd, args))
		handleErr(err)

		fmt.Printf("%s %s\n", icon.Get(icon.Play), style.Bold(output.Source.Title))

		target, err := player.PlayChain(ctx, p, output.Source.CandidateURLs, output.Source.Title)
		handleErr(err)

		fmt.Println(style.Faint("played " + target))
	},
}
