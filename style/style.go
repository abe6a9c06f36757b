// Package style holds the rko color theme and small lipgloss render helpers.
package style

import "github.com/charmbracelet/lipgloss"

// Theme colors shared by the CLI and the TUI.
var (
	Base        = lipgloss.Color("#1e1e2e")
	Text        = lipgloss.Color("#cdd6f4")
	AccentColor = lipgloss.Color("#cba6f7")
	Green       = lipgloss.Color("#a6e3a1")
	Yellow      = lipgloss.Color("#f9e2af")
	Red         = lipgloss.Color("#f38ba8")
	HiRed       = lipgloss.Color("#ff5f87")
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer painting its input in c.
func Fg(c lipgloss.Color) func(string) string {
	s := New().Foreground(c)
	return func(text string) string { return s.Render(text) }
}

func Bold(s string) string  { return New().Bold(true).Render(s) }
func Faint(s string) string { return New().Faint(true).Render(s) }

// Title renders a section header such as "Offers" or "History".
func Title(s string) string {
	return banner(AccentColor)(s)
}

// ErrorTitle renders the header of the error screen.
func ErrorTitle(s string) string {
	return banner(Red)(s)
}

func banner(bg lipgloss.Color) func(string) string {
	s := New().Foreground(Base).Background(bg).Bold(true).Padding(0, 1)
	return func(text string) string { return s.Render(text) }
}
