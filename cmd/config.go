package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/rko-cli/rko/color"
	"github.com/rko-cli/rko/config"
	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func errUnknownSection(section string) error {
	return fmt.Errorf("unknown section %s, expected one of %v", section, config.Sections())
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	keys := lo.Keys(config.Default)
	sort.Strings(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func completionSections(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return config.Sections(), cobra.ShellCompDirectiveNoFileComp
}

// selectFields resolves explicit keys, or every field of section when no key is
// given. The result is ordered by key, which keeps sections together.
func selectFields(keys []string, section string) ([]config.Field, error) {
	var fields []config.Field
	switch {
	case len(keys) > 0:
		for _, k := range keys {
			field, err := config.Lookup(k)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
	case section != "":
		if !lo.Contains(config.Sections(), section) {
			return nil, errUnknownSection(section)
		}
		fields = lo.Filter(lo.Values(config.Default), func(f config.Field, _ int) bool {
			return f.Section() == section
		})
	default:
		fields = lo.Values(config.Default)
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields, nil
}

// persist writes the in-memory settings, creating the config file on first use.
func persist() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfigAs(config.Path())
	}
	return err
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(style.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change rko settings",
	Long: "Inspect and change rko settings.\nSettings are grouped in sections such as resolver, download and history, and are stored in " +
		config.Path(),
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringP("section", "S", "", "Show only the settings of one section")
	configInfoCmd.Flags().BoolP("json", "j", false, "Print the settings as JSON")
	lo.Must0(configInfoCmd.RegisterFlagCompletionFunc("section", completionSections))
	configInfoCmd.SetOut(os.Stdout)
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe settings with their current and default values",
	Example:           "  rko config info --section resolver\n  rko config info download.dir history.backend",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fields, err := selectFields(args, lo.Must(cmd.Flags().GetString("section")))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(lo.ToSlicePtr(fields)))
			return
		}

		heading := style.New().Bold(true).Foreground(color.HiPurple).Render
		section := ""
		for i, field := range fields {
			if field.Section() != section {
				section = field.Section()
				if i > 0 {
					cmd.Println()
				}
				cmd.Println(heading("[" + section + "]"))
			}
			cmd.Println(field.Pretty())
			cmd.Println()
		}
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.SetOut(os.Stdout)
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the effective value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := config.Lookup(args[0])
		handleErr(err)
		cmd.Println(field.Current())
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value>",
	Short:             "Change a setting and save it to the config file",
	Example:           "  rko config set resolver.retries 6\n  rko config set history.backend sqlite",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		value, err := config.Parse(args[0], args[1:])
		handleErr(err)

		viper.Set(args[0], value)
		handleErr(persist())
		success("set %s to %s", style.Fg(color.Purple)(args[0]), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().StringP("section", "S", "", "Reset every setting of one section")
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every setting")
	configResetCmd.MarkFlagsMutuallyExclusive("section", "all")
	lo.Must0(configResetCmd.RegisterFlagCompletionFunc("section", completionSections))
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore settings to their defaults",
	Example:           "  rko config reset resolver.retries\n  rko config reset --section download",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		section := lo.Must(cmd.Flags().GetString("section"))
		all := lo.Must(cmd.Flags().GetBool("all"))
		if len(args) == 0 && section == "" && !all {
			handleErr(errors.New("name a key, a --section or pass --all"))
		}

		fields, err := selectFields(args, section)
		handleErr(err)

		for _, field := range fields {
			viper.Set(field.Key, field.Value)
		}
		handleErr(persist())

		if len(fields) == 1 {
			success("reset %s to %v", style.Fg(color.Purple)(fields[0].Key), fields[0].Value)
			return
		}
		success("reset %d settings", len(fields))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Replace an existing config file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Save the effective settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := config.Path()
		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfigAs(path))
		success("wrote config to %s", path)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the config file, falling back to defaults and the environment",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(config.Path()))
		success("deleted %s", config.Path())
	},
}
