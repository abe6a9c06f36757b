// Package cmd implements the command-line interface for rko.
package cmd

import (
	"fmt"

	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/resolver"
	"github.com/rko-cli/rko/server"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (the PORT environment variable wins)")
	lo.Must0(viper.BindPFlag(key.ServerPort, serveCmd.Flags().Lookup("port")))

	serveCmd.Flags().String("host", "", "Interface to bind")
	lo.Must0(viper.BindPFlag(key.ServerHost, serveCmd.Flags().Lookup("host")))
}

// serveCmd runs the bundled web front-end.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web front-end and its JSON API",
	Long: `Serve the web front-end, its installable app manifest and a small JSON API.

  GET /api/resolve?url=<video url>   resolve a URL into its offers
  GET /api/history                   list recorded download attempts`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := history.Open(viper.GetString(key.HistoryBackend))
		handleErr(err)
		defer store.Close()

		ctx, cancel := interruptible()
		defer cancel()

		srv := server.New(server.Options{
			Resolver: resolver.FromConfig(),
			History:  store,
		})

		handleErr(srv.ListenAndServe(ctx, server.Addr(), func(addr string) {
			fmt.Printf("%s server running on http://%s\n", constant.DisplayName, addr)
		}))
	},
}
