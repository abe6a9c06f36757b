package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/inline"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/open"
	"github.com/rko-cli/rko/player"
)

type (
	resolvedMsg struct {
		generation uint64
		output     *inline.Output
	}

	resolveFailedMsg struct {
		generation uint64
		err        error
	}

	historyLoadedMsg []history.Attempt

	playedMsg struct {
		target string
		err    error
	}
)

// resolve dispatches raw to the resolver. The view stays responsive while it runs.
func (b *statefulBubble) resolve(raw string) tea.Cmd {
	dispatcher, in, ctx := b.dispatcher, b.options.Interpreter, b.ctx

	return func() tea.Msg {
		resp, gen, err := dispatcher.Dispatch(ctx, strings.TrimSpace(raw))
		if err != nil {
			return resolveFailedMsg{generation: gen, err: err}
		}

		output, err := inline.Describe(in, resp, raw)
		if err != nil {
			return resolveFailedMsg{generation: gen, err: err}
		}

		return resolvedMsg{generation: gen, output: output}
	}
}

// loadHistory reads the attempt log, newest first.
func (b *statefulBubble) loadHistory() tea.Cmd {
	store, ctx := b.options.History, b.ctx

	return func() tea.Msg {
		attempts, err := store.List(ctx)
		if err != nil {
			return err
		}

		attempts = slices.Clone(attempts)
		slices.Reverse(attempts)
		return historyLoadedMsg(attempts)
	}
}

// play walks the playback chain of the current result.
func (b *statefulBubble) play() tea.Cmd {
	if b.result == nil || b.options.Player == nil {
		return nil
	}

	p, ctx := b.options.Player, b.ctx
	chain, title := b.result.Source.CandidateURLs, b.result.Source.Title

	return func() tea.Msg {
		target, err := player.PlayChain(ctx, p, chain, title)
		return playedMsg{target: target, err: err}
	}
}

// startDownload begins the download of the selected offer. Controls that are not idle ignore the request.
func (b *statefulBubble) startDownload(item *offerItem) {
	if err := b.orchestrator.Start(b.ctx, item.offer); err != nil {
		log.Debugf("download %s: %s", item.offer.ID, err)
	}
}

func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		if err := open.Start(url); err != nil {
			return err
		}
		return nil
	}
}

func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-b.eventChannel
	}
}

func (b *statefulBubble) waitForToast() tea.Cmd {
	return func() tea.Msg {
		return <-b.toastChannel
	}
}
