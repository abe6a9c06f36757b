// Package color names the ANSI colors used by CLI output.
package color

import "github.com/charmbracelet/lipgloss"

// ANSI colors follow the terminal's own theme.
var (
	Red      = lipgloss.Color("1")
	Green    = lipgloss.Color("2")
	Yellow   = lipgloss.Color("3")
	Blue     = lipgloss.Color("4")
	Purple   = lipgloss.Color("5")
	HiRed    = lipgloss.Color("9")
	HiPurple = lipgloss.Color("13")
)

// Orange marks the primary action in help lines.
var Orange = lipgloss.Color("#ffb703")

// Named maps the button colors of an offer (green, blue, red) to terminal
// colors. Anything else is passed to lipgloss as is, so hex values work.
func Named(value string) lipgloss.Color {
	switch value {
	case "green":
		return Green
	case "blue":
		return Blue
	case "red":
		return Red
	default:
		return lipgloss.Color(value)
	}
}
