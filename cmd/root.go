// Package cmd implements the command-line interface for rko.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/rko-cli/rko/color"
	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/query"
	"github.com/rko-cli/rko/style"
	"github.com/rko-cli/rko/tui"
	"github.com/rko-cli/rko/util"
	"github.com/rko-cli/rko/version"
	"github.com/rko-cli/rko/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Record download attempts in the local history")
	lo.Must0(viper.BindPFlag(key.HistoryEnabled, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.Flags().StringP("url", "u", "", "Prefill the input with a video URL and resolve it")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("url", completionURLs))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(cmd.OutOrStdout())
	})

	// Leftover partial files of interrupted runs are removed on startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the rko application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "A terminal front-end for a remote video download resolver",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal front-end for a remote video download resolver"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		options := tui.Options{
			URL: lo.Must(cmd.Flags().GetString("url")),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// errInterrupted is returned by prompts cancelled with ctrl+c.
var errInterrupted = terminal.InterruptErr

// interruptible returns a context cancelled on the first interrupt signal.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func completionURLs(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
}

// sourceURL takes the URL from the first argument or the --url flag.
func sourceURL(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if f := cmd.Flags().Lookup("url"); f != nil {
		return f.Value.String()
	}
	return ""
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
