package cmd

import (
	"os"
	"sort"

	"github.com/rko-cli/rko/color"
	"github.com/rko-cli/rko/config"
	"github.com/rko-cli/rko/server"
	"github.com/rko-cli/rko/style"
	"github.com/rko-cli/rko/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Show only variables defined in this process")
	envCmd.Flags().StringP("section", "S", "", "Show only variables of one config section, e.g. resolver")
	lo.Must0(envCmd.RegisterFlagCompletionFunc("section", completionSections))
	envCmd.SetOut(os.Stdout)
}

// envVar is an environment variable rko reads, with the setting it overrides.
type envVar struct {
	name    string
	setting string
}

func environment(section string) []envVar {
	vars := lo.FilterMap(config.EnvExposed, func(k string, _ int) (envVar, bool) {
		field := config.Default[k]
		return envVar{field.Env(), field.Key}, section == "" || field.Section() == section
	})
	if section == "" || section == "server" {
		vars = append(vars, envVar{server.EnvPort, "server.port"})
	}
	if section == "" {
		vars = append(vars, envVar{where.EnvConfigPath, "config directory"})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].name < vars[j].name })
	return vars
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables rko reads",
	Long:  "List the environment variables rko reads, together with the setting each one overrides.\nVariables from a .env file in the working directory are included.",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		section := lo.Must(cmd.Flags().GetString("section"))
		if section != "" && !lo.Contains(config.Sections(), section) {
			handleErr(errUnknownSection(section))
		}

		name := style.New().Bold(true).Foreground(color.Purple).Render
		for _, v := range environment(section) {
			value, present := os.LookupEnv(v.name)
			if setOnly && !present {
				continue
			}

			shown := style.Fg(color.Red)("unset")
			if present {
				shown = style.Fg(color.Green)(value)
			}
			cmd.Printf("%s=%s %s\n", name(v.name), shown, style.Faint("# "+v.setting))
		}
	},
}
