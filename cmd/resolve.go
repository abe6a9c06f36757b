// Package cmd implements the command-line interface for rko.
package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/inline"
	"github.com/rko-cli/rko/resolver"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("url", "u", "", "The video URL to resolve")
	resolveCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	resolveCmd.Flags().Bool("schema", false, "Print the JSON schema of the structured output and exit")
	resolveCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
	resolveCmd.Flags().IntP("width", "w", 0, "Wrap the readable output at this width")

	lo.Must0(resolveCmd.RegisterFlagCompletionFunc("url", completionURLs))
	resolveCmd.ValidArgsFunction = completionURLs
}

// resolveCmd describes a video URL without downloading anything.
var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Resolve a video URL and print its metadata and download offers",
	Long: `Resolve a video URL through the remote resolver in non-interactive, scriptable mode.

The readable output lists the title, author, platform and every download offer.
Use --json for a structured object and --schema for its JSON schema.`,
	Example: "  rko resolve https://youtu.be/dQw4w9WgXcQ --json",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(inline.Schema()))
			return
		}

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		ctx, cancel := interruptible()
		defer cancel()

		handleErr(inline.Run(ctx, &inline.Options{
			Out:      writer,
			URL:      sourceURL(cmd, args),
			Json:     lo.Must(cmd.Flags().GetBool("json")),
			Width:    lo.Must(cmd.Flags().GetInt("width")),
			Resolver: resolver.FromConfig(),
		}))
	},
}
