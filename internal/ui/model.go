// Package ui renders the transient notification line shared by every terminal view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/rko-cli/rko/color"
	"github.com/rko-cli/rko/feedback"
	"github.com/rko-cli/rko/icon"
)

// Model displays the current message of a feedback.Notifier below the main content.
type Model struct {
	Notifier *feedback.Notifier
	Width    int
}

// ClearNotificationMsg expires the message with the given id.
type ClearNotificationMsg struct {
	ID uint64
}

// ClearNotification returns a tea.Cmd that fires when msg expires.
func ClearNotification(msg feedback.Message) tea.Cmd {
	return tea.Tick(time.Until(msg.Expires), func(time.Time) tea.Msg {
		return ClearNotificationMsg{ID: msg.ID}
	})
}

// Update schedules expiry for new messages and dismisses expired ones.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case feedback.Message:
		return ClearNotification(msg)
	case ClearNotificationMsg:
		m.Notifier.Dismiss(msg.ID)
	}
	return nil
}

// Inline returns the current inline error, if any.
func (m *Model) Inline() (feedback.Message, bool) {
	msg, ok := m.Notifier.Current()
	if !ok || !msg.Inline {
		return feedback.Message{}, false
	}
	return msg, true
}

// Render formats a message with the icon and color of its kind.
func Render(msg feedback.Message) string {
	var (
		fg    lipgloss.Color
		glyph string
	)

	switch msg.Kind {
	case feedback.Success:
		fg, glyph = color.Green, icon.Get(icon.Success)
	case feedback.Error:
		fg, glyph = color.Red, icon.Get(icon.Fail)
	default:
		fg, glyph = color.Blue, icon.Get(icon.Info)
	}

	return lipgloss.NewStyle().Foreground(fg).Render(glyph + " " + msg.Text)
}

// View appends the current toast to the last line of mainContent.
// Inline errors are left to the view that owns the input.
func (m *Model) View(mainContent string) string {
	msg, ok := m.Notifier.Current()
	if !ok || msg.Inline {
		return mainContent
	}

	toast := Render(msg)
	if m.Width > 0 {
		toast = truncate.StringWithTail(toast, uint(m.Width), "…")
	}

	lines := strings.Split(mainContent, "\n")
	lines = append(lines, "  "+toast)
	return strings.Join(lines, "\n")
}
