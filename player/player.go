// Package player launches an external media player over the ordered source chain of a resolved media item.
package player

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rko-cli/rko/log"
)

// ErrChainExhausted is returned when no source of the chain could be played.
var ErrChainExhausted = errors.New("no playable source left in the chain")

// Player encapsulates the required capabilities for a media playback backend.
type Player interface {
	// Name returns the backend identifier.
	Name() string

	// Play blocks until the player exits. A non-nil error means the target could not be played.
	Play(ctx context.Context, target, title string) error
}

// New returns the backend registered under name.
func New(name string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mpv":
		return NewMPV(), nil
	case "iina":
		return NewIINA(), nil
	default:
		return nil, fmt.Errorf("unknown player %q, available options are: mpv, iina", name)
	}
}

// PlayChain tries each source in order and returns the first one the player accepted.
// Sources are tried strictly in the given order; cancellation stops the walk.
func PlayChain(ctx context.Context, p Player, chain []string, title string) (string, error) {
	var errs []error
	for i, target := range chain {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		log.Infof("player: trying source %d/%d with %s", i+1, len(chain), p.Name())
		if err := p.Play(ctx, target, title); err != nil {
			log.Warnf("player: source %d failed: %s", i+1, err)
			errs = append(errs, err)
			continue
		}

		return target, nil
	}

	return "", errors.Join(append([]error{ErrChainExhausted}, errs...)...)
}
