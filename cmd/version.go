package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/rko-cli/rko/color"
	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/style"
	"github.com/rko-cli/rko/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
	versionCmd.Flags().BoolP("json", "j", false, "Print build details as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
	versionCmd.SetOut(os.Stdout)
}

// buildInfo is what "rko version" reports about the running binary.
type buildInfo struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"built_at"`
	BuiltBy  string `json:"built_by"`
	Platform string `json:"platform"`
	Resolver string `json:"resolver"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Resolver: viper.GetString(key.ResolverBaseURL),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rko version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		info := currentBuild()

		switch {
		case lo.Must(cmd.Flags().GetBool("short")):
			cmd.Println(info.Version)
			return
		case lo.Must(cmd.Flags().GetBool("json")):
			handleErr(json.NewEncoder(out).Encode(info))
			return
		}

		cmd.Printf("%s %s\n\n", style.Fg(color.Purple)("▇▇▇"), style.Bold(constant.DisplayName))
		for _, row := range [][2]string{
			{"Version", info.Version},
			{"Revision", info.Revision},
			{"Built", info.BuiltAt + " by " + info.BuiltBy},
			{"Platform", info.Platform},
			{"Resolver", info.Resolver},
		} {
			cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%-9s", row[0])), style.Bold(row[1]))
		}
		version.Notify(out)
	},
}
