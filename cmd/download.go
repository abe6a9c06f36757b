// Package cmd implements the command-line interface for rko.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rko-cli/rko/download"
	"github.com/rko-cli/rko/feedback"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/inline"
	"github.com/rko-cli/rko/internal/ui"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/media"
	"github.com/rko-cli/rko/resolver"
	"github.com/rko-cli/rko/style"
	"github.com/rko-cli/rko/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringP("url", "u", "", "The video URL to download")
	downloadCmd.Flags().StringSliceP("quality", "q", []string{}, "Offers to download by quality, id or format (e.g. 720, mp3, dl-0)")
	downloadCmd.Flags().BoolP("all", "a", false, "Download every offer")
	downloadCmd.MarkFlagsMutuallyExclusive("quality", "all")

	downloadCmd.Flags().StringP("dir", "d", "", "Directory to save downloads to")
	lo.Must0(viper.BindPFlag(key.DownloadDir, downloadCmd.Flags().Lookup("dir")))

	downloadCmd.Flags().Bool("fallback", true, "Open the offer in the browser when the direct download fails")
	lo.Must0(viper.BindPFlag(key.DownloadFallback, downloadCmd.Flags().Lookup("fallback")))

	lo.Must0(downloadCmd.RegisterFlagCompletionFunc("url", completionURLs))
	lo.Must0(downloadCmd.RegisterFlagCompletionFunc("quality", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(media.Qualities, func(q media.Quality, _ int) string { return q.Key }), cobra.ShellCompDirectiveNoFileComp
	}))
	downloadCmd.ValidArgsFunction = completionURLs
}

// downloadCmd saves one or more offers of a video without the interactive interface.
var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Resolve a video URL and download selected offers",
	Long: `Resolve a video URL and download its offers without the interactive interface.

Offers are chosen with --quality, --all or an interactive picker.
Every attempt is recorded in the history.`,
	Example: "  rko download https://youtu.be/dQw4w9WgXcQ -q 720 -q mp3",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := interruptible()
		defer cancel()

		output, err := inline.Resolve(ctx, resolver.FromConfig(), nil, sourceURL(cmd, args))
		handleErr(err)

		offers, err := selectOffers(
			output.Offers,
			lo.Must(cmd.Flags().GetStringSlice("quality")),
			lo.Must(cmd.Flags().GetBool("all")),
		)
		handleErr(err)

		if len(offers) == 0 {
			return
		}

		store, err := history.FromConfig()
		handleErr(err)
		defer store.Close()

		notifier := feedback.FromConfig()
		notifier.Subscribe(func(m feedback.Message) {
			_, _ = fmt.Fprintln(os.Stderr, ui.Render(m))
		})

		orchestrator := download.New(output.Source, download.OptionsFromConfig(store, notifier))

		var (
			mu        sync.Mutex
			remaining = len(offers)
			saved     []string
			failed    int
		)
		orchestrator.Subscribe(func(e download.Event) {
			if e.State != download.Succeeded && e.State != download.Failed {
				return
			}

			mu.Lock()
			defer mu.Unlock()

			if e.State == download.Succeeded {
				saved = append(saved, e.Path)
			} else if e.Outcome != history.OutcomeFallback {
				failed++
			}

			remaining--
			if remaining == 0 {
				orchestrator.Close()
			}
		})

		for _, offer := range offers {
			handleErr(orchestrator.Start(ctx, offer))
		}
		orchestrator.Wait()

		for _, path := range saved {
			fmt.Printf("%s %s\n", style.Fg(style.Green)(icon.Get(icon.Success)), path)
		}
		fmt.Println(style.Faint(fmt.Sprintf("%s saved", util.Quantify(len(saved), "file", "files"))))

		if failed > 0 {
			handleErr(fmt.Errorf("%s failed", util.Quantify(failed, "download", "downloads")))
		}
	},
}

// selectOffers picks offers by flag, or asks interactively when no flag is given.
func selectOffers(offers []media.Offer, qualities []string, all bool) ([]media.Offer, error) {
	if all {
		return offers, nil
	}

	if len(qualities) > 0 {
		var selected []media.Offer
		for _, q := range qualities {
			offer, err := media.Match(offers, q)
			if err != nil {
				return nil, err
			}
			selected = append(selected, offer)
		}
		return lo.UniqBy(selected, func(o media.Offer) string { return o.ID }), nil
	}

	labels := lo.Map(offers, func(o media.Offer, _ int) string {
		if o.Size != "" {
			return fmt.Sprintf("%s (%s)", o.Label, o.Size)
		}
		return o.Label
	})

	var picked []int
	err := survey.AskOne(&survey.MultiSelect{
		Message: "Select offers to download",
		Options: labels,
	}, &picked)
	if errors.Is(err, errInterrupted) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return lo.Map(picked, func(i int, _ int) media.Offer { return offers[i] }), nil
}
