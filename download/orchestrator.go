// Package download drives the per-offer fetch and save lifecycle.
package download

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rko-cli/rko/feedback"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/media"
	"github.com/rko-cli/rko/network"
	"github.com/rko-cli/rko/where"
	"github.com/spf13/viper"
)

// Options configures an Orchestrator. Zero durations fall back to the defaults.
type Options struct {
	Client       *http.Client
	Dir          string
	Timeout      time.Duration
	ResetDelay   time.Duration
	ReleaseDelay time.Duration
	// Fallback is used when the direct download fails. Nil disables it.
	Fallback Fallback
	History  history.Store
	Notifier *feedback.Notifier
}

// OptionsFromConfig returns options built from the active settings.
func OptionsFromConfig(store history.Store, notifier *feedback.Notifier) Options {
	opts := Options{
		Client:     network.New(viper.GetBool(key.NetworkTLSFingerprint)),
		Dir:        where.Downloads(),
		Timeout:    time.Duration(viper.GetInt(key.DownloadTimeoutMs)) * time.Millisecond,
		ResetDelay: time.Duration(viper.GetInt(key.DownloadResetDelayMs)) * time.Millisecond,
		History:    store,
		Notifier:   notifier,
	}
	if viper.GetBool(key.DownloadFallback) {
		opts.Fallback = Browser{App: viper.GetString(key.DownloadFallbackApp)}
	}
	return opts
}

// Event reports a state transition of one offer.
type Event struct {
	Offer   media.Offer
	State   State
	Outcome history.Outcome
	Path    string
	Err     error
}

// Orchestrator runs downloads for the offers of one resolved item.
// Offers are independent; only the history log and the notifier are shared.
type Orchestrator struct {
	source *media.Source
	opts   Options

	mu        sync.Mutex
	buttons   map[string]*Button
	listeners []func(Event)

	wg     sync.WaitGroup
	closed chan struct{}
	once   sync.Once
}

// New returns an orchestrator for the offers of src.
func New(src *media.Source, opts Options) *Orchestrator {
	if src == nil {
		src = &media.Source{Platform: "Other", Author: media.UnknownAuthor}
	}
	if opts.Client == nil {
		opts.Client = network.Client
	}
	if opts.Dir == "" {
		opts.Dir = where.Downloads()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Minute
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = 3 * time.Second
	}
	if opts.ReleaseDelay <= 0 {
		opts.ReleaseDelay = time.Second
	}
	if opts.History == nil {
		opts.History = history.Discard{}
	}
	if opts.Notifier == nil {
		opts.Notifier = feedback.New(4*time.Second, 8*time.Second)
	}

	return &Orchestrator{
		source:  src,
		opts:    opts,
		buttons: make(map[string]*Button),
		closed:  make(chan struct{}),
	}
}

// Subscribe registers fn to receive every state transition.
func (o *Orchestrator) Subscribe(fn func(Event)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, fn)
}

// Button returns the control of the offer with the given id.
func (o *Orchestrator) Button(offerID string) *Button {
	o.mu.Lock()
	defer o.mu.Unlock()

	b, ok := o.buttons[offerID]
	if !ok {
		b = &Button{}
		o.buttons[offerID] = b
	}
	return b
}

// Start begins downloading offer in the background.
// It returns ErrPending while the offer's control is not idle.
func (o *Orchestrator) Start(ctx context.Context, offer media.Offer) error {
	b := o.Button(offer.ID)
	if !b.begin() {
		return ErrPending
	}

	o.wg.Add(1)
	go o.run(ctx, offer, b)
	return nil
}

// Wait blocks until every started download has finished and its control has reset.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Close skips pending control resets. Running downloads still complete.
func (o *Orchestrator) Close() {
	o.once.Do(func() { close(o.closed) })
}

func (o *Orchestrator) run(ctx context.Context, offer media.Offer, b *Button) {
	defer o.wg.Done()

	o.opts.Notifier.Notify(feedback.Info, fmt.Sprintf("%s: preparing download...", offer.Label))
	o.emit(Event{Offer: offer, State: Pending})

	event := Event{Offer: offer}
	path, err := o.save(ctx, offer)
	switch {
	case err == nil:
		event.State, event.Outcome, event.Path = Succeeded, history.OutcomeSuccess, path
		o.opts.Notifier.Notify(feedback.Success, fmt.Sprintf("%s downloaded successfully! 🎉", offer.Label))
	default:
		event.Err = &Failure{OfferID: offer.ID, Err: err}
		log.Warnf("download: %s", event.Err)
		event.State, event.Outcome = Failed, o.fallback(offer, err)
	}

	attempt := history.NewAttempt(offer.Filename, o.source.Platform, o.source.Author, offer.URL, event.Outcome)
	if err := o.opts.History.Append(context.WithoutCancel(ctx), attempt); err != nil {
		log.Errorf("history: append: %s", err)
	}

	b.finish(event.State, event.Outcome)
	o.emit(event)

	timer := time.NewTimer(o.opts.ResetDelay)
	select {
	case <-timer.C:
	case <-o.closed:
		timer.Stop()
	}

	b.reset()
	o.emit(Event{Offer: offer, State: Idle})
}

// fallback hands offer to the fallback agent and returns the recorded outcome.
func (o *Orchestrator) fallback(offer media.Offer, cause error) history.Outcome {
	if o.opts.Fallback == nil {
		o.opts.Notifier.Notify(feedback.Error, fmt.Sprintf("%s download failed: %s", offer.Label, cause))
		return history.OutcomeFailed
	}

	if err := o.opts.Fallback.Open(offer.URL, offer.Filename); err != nil {
		log.Errorf("download: fallback for %s: %s", offer.ID, err)
		o.opts.Notifier.Notify(feedback.Error, fmt.Sprintf("%s download failed: %s", offer.Label, err))
		return history.OutcomeFailed
	}

	o.opts.Notifier.Notify(feedback.Info, fmt.Sprintf("%s download started via fallback", offer.Label))
	return history.OutcomeFallback
}

func (o *Orchestrator) emit(e Event) {
	o.mu.Lock()
	listeners := append([]func(Event){}, o.listeners...)
	o.mu.Unlock()

	for _, fn := range listeners {
		fn(e)
	}
}
