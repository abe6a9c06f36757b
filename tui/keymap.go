package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/rko-cli/rko/color"
	"github.com/rko-cli/rko/style"
)

type statefulKeymap struct {
	state state

	quit, forceQuit,
	acceptSearchSuggestion,
	confirm,
	download,
	play,
	openURL,
	history,
	back,
	up, down, left, right,
	top, bottom,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

// bind creates a binding whose help shows the first key unless label overrides it.
func bind(label, desc string, keys ...string) key.Binding {
	if label == "" {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func newStatefulKeymap() *statefulKeymap {
	orange := style.Fg(color.Orange)
	return &statefulKeymap{
		quit:                   bind("", "quit", "q"),
		forceQuit:              bind("", "quit", "ctrl+c", "ctrl+d"),
		acceptSearchSuggestion: bind("", "accept suggestion", "tab"),
		confirm:                bind("", "resolve", "enter"),
		download:               bind(orange("enter"), orange("download"), "enter"),
		play:                   bind("", "play", "p"),
		openURL:                bind("", "open url", "o"),
		history:                bind("", "history", "ctrl+r"),
		back:                   bind("", "back", "esc"),
		up:                     bind("↑", "up", "up", "k"),
		down:                   bind("↓", "down", "down", "j"),
		left:                   bind("←", "prev page", "left", "h"),
		right:                  bind("→", "next page", "right", "l"),
		top:                    bind("", "top", "g"),
		bottom:                 bind("", "bottom", "G"),
		showHelp:               bind("", "help", "?"),
	}
}

// help returns the short and the full help of the active state.
func (k *statefulKeymap) help() (short, full []key.Binding) {
	switch k.state {
	case searchState:
		short = []key.Binding{k.confirm, k.acceptSearchSuggestion, k.history, k.forceQuit}
	case loadingState:
		short = []key.Binding{k.back, k.forceQuit}
	case resultState:
		return []key.Binding{k.download, k.play, k.back},
			[]key.Binding{k.download, k.play, k.openURL, k.history, k.back}
	case historyState:
		short = []key.Binding{k.openURL, k.back}
	case errorState:
		short = []key.Binding{k.back, k.quit}
	}
	return short, short
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

// forList maps the shared bindings onto the offers and history lists.
func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}
