package tui

import (
	"fmt"

	"github.com/rko-cli/rko/color"
	"github.com/rko-cli/rko/download"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/media"
	"github.com/rko-cli/rko/style"
)

// offerItem ties an offer to the live control of its download.
type offerItem struct {
	offer  media.Offer
	button *download.Button
}

// listItem implements the list.Item interface, wrapping domain models for terminal display.
type listItem struct {
	internal interface{}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case *offerItem:
		glyph := icon.Get(icon.Video)
		if e.offer.Quality == "mp3" {
			glyph = icon.Get(icon.Audio)
		}
		return fmt.Sprintf("%s %s", glyph, style.Fg(color.Named(e.offer.Color))(e.button.Caption(e.offer)))
	case history.Attempt:
		return fmt.Sprintf("%s %s", outcomeIcon(e.Outcome), e.Filename)
	case string:
		return e
	default:
		return t.FilterValue()
	}
}

// Description retrieves the secondary metadata for the list item.
func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *offerItem:
		if e.offer.Size != "" {
			return style.Faint(e.offer.Filename + " · " + e.offer.Size)
		}
		return style.Faint(e.offer.Filename)
	case history.Attempt:
		return style.Faint(fmt.Sprintf(
			"%s · %s · %s · %s",
			e.Platform,
			e.Author,
			e.Outcome,
			e.Timestamp.Local().Format("2006-01-02 15:04"),
		))
	default:
		return ""
	}
}

// FilterValue returns the text used for fuzzy matching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *offerItem:
		return e.offer.Label
	case history.Attempt:
		return e.Filename
	case string:
		return e
	default:
		return ""
	}
}

func outcomeIcon(outcome history.Outcome) string {
	switch outcome {
	case history.OutcomeSuccess:
		return icon.Get(icon.Success)
	case history.OutcomeFallback:
		return icon.Get(icon.Fallback)
	default:
		return icon.Get(icon.Fail)
	}
}
