package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/internal/ui"
	"github.com/rko-cli/rko/media"
	"github.com/rko-cli/rko/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// headerHeight is the number of lines above the offers list.
const headerHeight = 6

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case searchState:
		output = b.viewSearch()
	case loadingState:
		output = b.viewLoading()
	case resultState:
		output = b.viewResult()
	case historyState:
		output = b.viewHistory()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title(constant.DisplayName),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, style.Faint(b.clip(fmt.Sprintf("%s %s", icon.Get(icon.Search), suggestion))))
	} else {
		lines = append(lines, "")
	}

	if msg, ok := b.notifier.Inline(); ok {
		lines = append(lines, "", wrap.String(ui.Render(msg), b.width))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Resolving"),
			"",
			style.Faint(b.clip(strings.TrimSpace(b.inputC.Value()))),
			"",
			b.loaderC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewResult() string {
	return lipgloss.JoinVertical(lipgloss.Left, b.viewHeader(), listExtraPaddingStyle.Render(b.offersC.View()))
}

// viewHeader renders exactly headerHeight lines describing the resolved item.
func (b *statefulBubble) viewHeader() string {
	if b.result == nil {
		return strings.Repeat("\n", headerHeight-1)
	}

	src := b.result.Source

	title := src.Title
	if title == "" {
		title = b.result.Query
	}

	meta := fmt.Sprintf("%s · %s", src.Author, src.Platform)
	if src.SizeLabel != "" {
		meta += " · " + src.SizeLabel
	}

	description := strings.Split(wordwrap.String(media.PlainText(src.Description), b.width), "\n")
	for len(description) < 2 {
		description = append(description, "")
	}

	lines := []string{
		style.Bold(b.clip(title)),
		style.Faint(b.clip(meta)),
		"",
		b.clip(description[0]),
		b.clip(description[1]),
		"",
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(lines, "\n"))
}

func (b *statefulBubble) viewHistory() string {
	if len(b.historyC.Items()) == 0 {
		return b.renderLines(true, []string{
			style.Title("History"),
			"",
			style.Faint(history.Placeholder),
		})
	}

	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)

	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

// clip truncates s to the content width.
func (b *statefulBubble) clip(s string) string {
	if b.width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(b.width), "…")
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
