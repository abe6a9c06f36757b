// Package cmd implements the command-line interface for rko.
package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rko-cli/rko/auth"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd manages the resolver API key kept in the system keyring.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the resolver API key stored in the system keyring",
}

func init() {
	authCmd.AddCommand(authSetCmd)
}

var authSetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the resolver API key in the system keyring",
	Long: `Store the resolver API key in the system keyring.

The stored key takes precedence over resolver.api_key.
Without an argument the key is read from a hidden prompt.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var apiKey string
		if len(args) > 0 {
			apiKey = args[0]
		} else {
			err := survey.AskOne(&survey.Password{Message: "Resolver API key"}, &apiKey, survey.WithValidator(survey.Required))
			if errors.Is(err, errInterrupted) {
				return
			}
			handleErr(err)
		}

		handleErr(auth.SetAPIKey(apiKey))
		success("API key saved to the keyring")
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

var authDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the resolver API key from the system keyring",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteAPIKey())
		success("API key removed from the keyring")
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether an API key is stored in the keyring",
	Run: func(cmd *cobra.Command, args []string) {
		if auth.APIKey().IsPresent() {
			fmt.Printf("%s an API key is stored in the keyring\n", icon.Get(icon.Key))
			return
		}
		fmt.Println(style.Faint("no API key in the keyring, resolver.api_key is used"))
	},
}
