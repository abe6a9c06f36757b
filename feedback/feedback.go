// Package feedback implements the single-slot transient notifier shared by every view.
package feedback

import (
	"strings"
	"sync"
	"time"

	"github.com/rko-cli/rko/key"
	"github.com/spf13/viper"
)

// Kind is the visual category of a message.
type Kind int

const (
	Info Kind = iota
	Success
	Error
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Classify derives a Kind from message text for callers that have no typed outcome.
func Classify(text string) Kind {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "success"), strings.Contains(lower, "completed"), strings.Contains(text, "🎉"):
		return Success
	case strings.Contains(lower, "error"), strings.Contains(lower, "failed"):
		return Error
	default:
		return Info
	}
}

// Message is one notification.
type Message struct {
	ID      uint64    `json:"id"`
	Text    string    `json:"text"`
	Kind    Kind      `json:"kind"`
	Inline  bool      `json:"inline"`
	Expires time.Time `json:"expires"`
}

// Notifier holds at most one visible message. A new message replaces the current one.
type Notifier struct {
	toast  time.Duration
	inline time.Duration
	clock  func() time.Time

	mu        sync.Mutex
	seq       uint64
	current   *Message
	listeners []func(Message)
}

// New returns a notifier with the given toast and inline error lifetimes.
func New(toast, inline time.Duration) *Notifier {
	return &Notifier{toast: toast, inline: inline, clock: time.Now}
}

// FromConfig returns a notifier with lifetimes from the active settings.
func FromConfig() *Notifier {
	return New(
		time.Duration(viper.GetInt(key.FeedbackToastMs))*time.Millisecond,
		time.Duration(viper.GetInt(key.FeedbackErrorMs))*time.Millisecond,
	)
}

// Subscribe registers fn to receive every posted message.
func (n *Notifier) Subscribe(fn func(Message)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

// Notify shows a toast of the given kind.
func (n *Notifier) Notify(kind Kind, text string) Message {
	return n.post(kind, text, false, n.toast)
}

// Post shows a toast whose kind is derived from its text.
func (n *Notifier) Post(text string) Message {
	return n.Notify(Classify(text), text)
}

// Fail shows an inline error, which stays longer than a toast.
func (n *Notifier) Fail(text string) Message {
	return n.post(Error, text, true, n.inline)
}

func (n *Notifier) post(kind Kind, text string, inline bool, lifetime time.Duration) Message {
	n.mu.Lock()
	n.seq++
	msg := Message{
		ID:      n.seq,
		Text:    text,
		Kind:    kind,
		Inline:  inline,
		Expires: n.clock().Add(lifetime),
	}
	n.current = &msg
	listeners := append([]func(Message){}, n.listeners...)
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(msg)
	}
	return msg
}

// Current returns the visible message, if it has not expired.
func (n *Notifier) Current() (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil || !n.clock().Before(n.current.Expires) {
		return Message{}, false
	}
	return *n.current, true
}

// Dismiss hides the message with the given id. Newer messages are left alone.
func (n *Notifier) Dismiss(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current != nil && n.current.ID == id {
		n.current = nil
	}
}
