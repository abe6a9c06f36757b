package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rko-cli/rko/download"
	"github.com/rko-cli/rko/feedback"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/internal/ui"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/query"
	"github.com/rko-cli/rko/resolver"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feedback.Message:
		return b, tea.Batch(b.notifier.Update(msg), b.waitForToast())
	case ui.ClearNotificationMsg:
		return b, b.notifier.Update(msg)
	case download.Event:
		// Captions are read from the live controls on render.
		return b, b.waitForEvent()
	case resolvedMsg:
		if msg.generation != b.dispatcher.Generation() {
			return b, nil
		}
		b.attach(msg.output)
		b.newState(resultState)
		return b, nil
	case resolveFailedMsg:
		return b, b.onResolveFailed(msg)
	case historyLoadedMsg:
		items := make([]list.Item, len(msg))
		for i, attempt := range msg {
			items[i] = &listItem{internal: attempt}
		}
		b.historyC.ResetSelected()
		cmd := b.historyC.SetItems(items)
		b.newState(historyState)
		return b, cmd
	case playedMsg:
		switch {
		case msg.err == nil:
			log.Infof("played %s", msg.target)
		case !errors.Is(msg.err, context.Canceled):
			b.options.Notifier.Notify(feedback.Error, fmt.Sprintf("Playback failed: %s", msg.err))
		}
		return b, nil
	case error:
		b.raiseError(msg)
		return b, nil
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case searchState:
		return b.updateSearch(msg)
	case loadingState:
		return b.updateLoading(msg)
	case resultState:
		return b.updateResult(msg)
	case historyState:
		return b.updateHistory(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

const busyMessage = "The previous request is still finishing, press enter again in a moment"

// submit validates raw locally and starts resolving it.
func (b *statefulBubble) submit(raw string) tea.Cmd {
	if strings.TrimSpace(raw) == "" {
		b.options.Notifier.Fail(resolver.InvalidInputMessage)
		return nil
	}

	// A superseded request keeps the dispatcher busy until its goroutine returns.
	if b.dispatcher.Busy() {
		b.options.Notifier.Notify(feedback.Info, busyMessage)
		return nil
	}

	b.progressStatus = "Fetching download links..."
	b.newState(loadingState)
	return tea.Batch(b.loaderC.Tick, b.resolve(raw))
}

func (b *statefulBubble) onResolveFailed(msg resolveFailedMsg) tea.Cmd {
	switch {
	case errors.Is(msg.err, resolver.ErrStale), errors.Is(msg.err, context.Canceled):
		return nil
	case errors.Is(msg.err, resolver.ErrBusy):
		b.options.Notifier.Notify(feedback.Info, msg.err.Error())
		return nil
	}

	if msg.generation != b.dispatcher.Generation() {
		return nil
	}

	if b.state == loadingState {
		b.previousState()
	}

	var netErr *resolver.NetworkError
	if errors.As(msg.err, &netErr) {
		b.options.Notifier.Fail(netErr.Cause())
	} else {
		b.options.Notifier.Fail(msg.err.Error())
	}

	return nil
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b, b.submit(b.inputC.Value())
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
				b.searchSuggestion = mo.None[string]()
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.history):
			return b, b.loadHistory()
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.SetValue("")
			b.searchSuggestion = mo.None[string]()
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	value := strings.TrimSpace(b.inputC.Value())
	if value == "" {
		b.searchSuggestion = mo.None[string]()
	} else if suggestion, ok := query.Suggest(value).Get(); ok && suggestion != value {
		b.searchSuggestion = mo.Some(suggestion)
	} else {
		b.searchSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.back) {
			b.dispatcher.Supersede()
			b.previousState()
			return b, nil
		}
	case spinner.TickMsg:
		b.loaderC, cmd = b.loaderC.Update(msg)
		return b, cmd
	}

	return b, nil
}

func (b *statefulBubble) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.download):
			if item, ok := b.offersC.SelectedItem().(*listItem); ok {
				if offer, ok := item.internal.(*offerItem); ok {
					b.startDownload(offer)
				}
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.play):
			if b.options.Player != nil {
				b.options.Notifier.Notify(feedback.Info, fmt.Sprintf("Opening %s...", b.options.Player.Name()))
			}
			return b, b.play()
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.result != nil {
				return b, openURL(b.result.Source.Origin)
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.history):
			return b, b.loadHistory()
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	b.offersC, cmd = b.offersC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.openURL), bubblesKey.Matches(msg, b.keymap.confirm):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				if attempt, ok := item.internal.(history.Attempt); ok {
					return b, openURL(attempt.URL)
				}
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	return b, nil
}
