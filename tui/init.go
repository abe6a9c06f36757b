package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the notification pumps and resolves the prefilled URL, if any.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, b.waitForToast(), b.waitForEvent()}

	if url := strings.TrimSpace(b.options.URL); url != "" {
		cmds = append(cmds, b.submit(url))
	}

	return tea.Batch(cmds...)
}
