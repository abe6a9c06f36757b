// Package cmd implements the command-line interface for rko.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/style"
)

// binaries maps player names to the executable that must be on PATH.
var binaries = map[string]string{
	"mpv":  "mpv",
	"iina": "open",
}

// CheckDependency verifies that the executable behind the named player is available.
func CheckDependency(playerName string) {
	bin, ok := binaries[playerName]
	if !ok {
		bin = playerName
	}

	if playerName == "iina" && runtime.GOOS != constant.Darwin {
		printMissingDependencyError("iina", "IINA is only available on macOS")
		os.Exit(1)
	}

	if _, err := exec.LookPath(bin); err != nil {
		printMissingDependencyError(bin, "")
		os.Exit(1)
	}
}

func installCommand(dep string) string {
	if dep != "mpv" {
		return ""
	}

	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install mpv"
	case constant.Linux:
		return "sudo apt install mpv"
	case constant.Windows:
		return "scoop install mpv"
	default:
		return ""
	}
}

func printMissingDependencyError(dep, hint string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))

	if hint == "" {
		hint = fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep)
	}
	body := style.New().Foreground(style.Text).Render(hint)

	suggestion := ""
	if installCmd := installCommand(dep); installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
