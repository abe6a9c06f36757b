// Package history provides the durable, append-only log of download attempts.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/where"
	"github.com/spf13/viper"
)

// Placeholder is rendered in place of an empty history.
const Placeholder = "No downloads yet."

// Outcome tells how a download attempt ended.
type Outcome string

const (
	// OutcomeSuccess means the file was saved locally.
	OutcomeSuccess Outcome = "success"
	// OutcomeFallback means the download was handed to the browser and could not be confirmed.
	OutcomeFallback Outcome = "fallback"
	// OutcomeFailed means neither the direct download nor the fallback could be started.
	OutcomeFailed Outcome = "failed"
)

// Attempt is one history record.
type Attempt struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Platform  string    `json:"platform"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Outcome   Outcome   `json:"outcome"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAttempt returns a record stamped with a fresh id and the current time.
func NewAttempt(filename, platform, author, url string, outcome Outcome) Attempt {
	return Attempt{
		ID:        uuid.New(),
		Filename:  filename,
		Platform:  platform,
		Author:    author,
		URL:       url,
		Outcome:   outcome,
		Timestamp: time.Now(),
	}
}

// Store is an append-only log. List returns records in insertion order.
type Store interface {
	Append(ctx context.Context, attempt Attempt) error
	List(ctx context.Context) ([]Attempt, error)
	Clear(ctx context.Context) error
	Close() error
}

// Backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open returns the store for backend at its default location.
func Open(backend string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSON(where.History()), nil
	case BackendSQLite:
		return NewSQLite(where.HistoryDB())
	default:
		return nil, fmt.Errorf("unknown history backend %q, available options are: %s, %s", backend, BackendJSON, BackendSQLite)
	}
}

// FromConfig opens the configured store, or a discarding one when history is disabled.
func FromConfig() (Store, error) {
	if !viper.GetBool(key.HistoryEnabled) {
		return Discard{}, nil
	}
	return Open(viper.GetString(key.HistoryBackend))
}

// Discard is a Store that keeps nothing.
type Discard struct{}

func (Discard) Append(context.Context, Attempt) error { return nil }

func (Discard) List(context.Context) ([]Attempt, error) { return nil, nil }

func (Discard) Clear(context.Context) error { return nil }

func (Discard) Close() error { return nil }
