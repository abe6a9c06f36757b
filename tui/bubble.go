package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/download"
	"github.com/rko-cli/rko/feedback"
	"github.com/rko-cli/rko/inline"
	"github.com/rko-cli/rko/internal/ui"
	"github.com/rko-cli/rko/resolver"
	"github.com/rko-cli/rko/style"
	"github.com/rko-cli/rko/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// statefulBubble encapsulates the application state, including component models and workflow tracking.
type statefulBubble struct {
	ctx context.Context

	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	inputC   textinput.Model
	offersC  list.Model
	historyC list.Model
	helpC    help.Model
	loaderC  spinner.Model

	dispatcher   *resolver.Dispatcher
	orchestrator *download.Orchestrator
	result       *inline.Output

	eventChannel chan download.Event
	toastChannel chan feedback.Message

	lastError        error
	progressStatus   string
	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, errorState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if previous, ok := b.statesHistory.Pop(); ok {
		b.setState(previous)
		return
	}
	b.setState(searchState)
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.offersC.SetSize(listWidth, util.Max(listHeight-headerHeight, 4))
	b.offersC.Help.Width = listWidth

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.inputC.Width = util.Max(width-x-4, 10)

	b.width = width - x
	// One line is kept for the toast.
	b.height = height - y - 1
	b.helpC.Width = listWidth
	b.notifier.Width = b.width
}

// attach replaces the current result and its orchestrator.
func (b *statefulBubble) attach(output *inline.Output) {
	if b.orchestrator != nil {
		b.orchestrator.Close()
	}

	opts := *b.options.Download
	opts.History = b.options.History
	opts.Notifier = b.options.Notifier

	orchestrator := download.New(output.Source, opts)
	orchestrator.Subscribe(func(e download.Event) {
		select {
		case b.eventChannel <- e:
		default:
		}
	})

	b.result = output
	b.orchestrator = orchestrator

	items := make([]list.Item, len(output.Offers))
	for i, offer := range output.Offers {
		items[i] = &listItem{internal: &offerItem{offer: offer, button: orchestrator.Button(offer.ID)}}
	}

	b.offersC.SetItems(items)
	b.offersC.ResetSelected()
	b.offersC.Title = fmt.Sprintf("Offers - %s", output.Source.Platform)
}

// shutdown skips pending control resets and waits for running downloads.
func (b *statefulBubble) shutdown() {
	b.dispatcher.Supersede()
	if b.orchestrator != nil {
		b.orchestrator.Close()
		b.orchestrator.Wait()
	}
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(ctx context.Context, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		ctx:           ctx,
		statesHistory: util.Stack[state]{Limit: 16},
		keymap:        keymap,
		dispatcher:    resolver.NewDispatcher(options.Resolver),
		eventChannel:  make(chan download.Event, 64),
		toastChannel:  make(chan feedback.Message, 16),
		notifier:      &ui.Model{Notifier: options.Notifier},
		options:       options,
	}

	options.Notifier.Subscribe(func(m feedback.Message) {
		select {
		case bubble.toastChannel <- m:
		default:
		}
	})

	makeList := func(title string, titleStyle lipgloss.Style) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = titleStyle
		listC.Styles.NoItems = paddingStyle
		listC.SetFilteringEnabled(false)
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.loaderC = spinner.New()
	bubble.loaderC.Spinner = spinner.Dot
	bubble.loaderC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Paste a video URL (v%s)", constant.Version)
	bubble.inputC.CharLimit = 2048
	bubble.inputC.Prompt = "> "

	bubble.offersC = makeList("Offers", lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1))
	bubble.offersC.SetStatusBarItemName("offer", "offers")

	bubble.historyC = makeList("History", lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1))
	bubble.historyC.SetStatusBarItemName("attempt", "attempts")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.SetValue(options.URL)
	bubble.inputC.Focus()

	return &bubble
}
