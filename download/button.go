package download

import (
	"sync"

	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/media"
)

// State is the transient state of one offer's download control.
type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Button tracks idle → pending → (success | failed) → idle for one offer.
type Button struct {
	mu      sync.Mutex
	state   State
	outcome history.Outcome
}

// State returns the current state.
func (b *Button) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Caption returns the text the control shows for offer in its current state.
func (b *Button) Caption(offer media.Offer) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Pending:
		return "⏳ Downloading..."
	case Succeeded:
		return "✅ Downloaded"
	case Failed:
		if b.outcome == history.OutcomeFallback {
			return "📥 Downloaded"
		}
		return "❌ Failed"
	default:
		return offer.Label
	}
}

// begin moves an idle button to pending. It reports false while a download is running
// or the control has not reset yet.
func (b *Button) begin() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Idle {
		return false
	}
	b.state = Pending
	b.outcome = ""
	return true
}

func (b *Button) finish(state State, outcome history.Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = state
	b.outcome = outcome
}

func (b *Button) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = Idle
}
