// Package tui is the interactive rko front-end: paste a link, pick an offer, watch it download.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rko-cli/rko/download"
	"github.com/rko-cli/rko/feedback"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/media"
	"github.com/rko-cli/rko/player"
	"github.com/rko-cli/rko/resolver"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
// Nil dependencies are built from the active settings.
type Options struct {
	// URL prefills the input and resolves it right away.
	URL string

	Resolver    resolver.Resolver
	Interpreter *media.Interpreter
	History     history.Store
	Notifier    *feedback.Notifier
	// Download configures the per-result orchestrators. History and Notifier are overridden.
	Download *download.Options
	Player   player.Player
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	if options.Resolver == nil {
		options.Resolver = resolver.FromConfig()
	}
	if options.Interpreter == nil {
		options.Interpreter = media.Default
	}
	if options.Notifier == nil {
		options.Notifier = feedback.FromConfig()
	}
	if options.History == nil {
		store, err := history.FromConfig()
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Error(err)
			}
		}()
		options.History = store
	}
	if options.Download == nil {
		opts := download.OptionsFromConfig(options.History, options.Notifier)
		options.Download = &opts
	}
	if options.Player == nil {
		if p, err := player.New(viper.GetString(key.Player)); err == nil {
			options.Player = p
		} else {
			log.Warn(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bubble := newBubble(ctx, options)
	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()

	cancel()
	bubble.shutdown()
	return err
}
