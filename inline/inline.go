package inline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rko-cli/rko/color"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/media"
	"github.com/rko-cli/rko/query"
	"github.com/rko-cli/rko/resolver"
	"github.com/rko-cli/rko/style"
	"github.com/rko-cli/rko/util"
)

// Run resolves options.URL and writes the result as JSON or as a readable summary.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	output, err := Resolve(ctx, options.Resolver, options.Interpreter, options.URL)
	if err != nil {
		return err
	}

	if options.Json {
		return writeJson(options.Out, output)
	}

	width := options.Width
	if width <= 0 {
		if w, _, err := util.TerminalSize(); err == nil && w > 0 {
			width = w
		} else {
			width = 80
		}
	}

	_, err = fmt.Fprint(options.Out, Render(output, width))
	return err
}

// Resolve fetches the resolver description of rawURL and derives its display model and offers.
func Resolve(ctx context.Context, r resolver.Resolver, in *media.Interpreter, rawURL string) (*Output, error) {
	if r == nil {
		r = resolver.FromConfig()
	}

	rawURL = strings.TrimSpace(rawURL)

	resp, err := r.Resolve(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return Describe(in, resp, rawURL)
}

// Describe derives the display model and offers of a resolver response.
// Successfully described URLs are remembered for suggestions.
func Describe(in *media.Interpreter, resp *resolver.Response, rawURL string) (*Output, error) {
	if in == nil {
		in = media.Default
	}

	src, err := in.Interpret(resp, rawURL)
	if err != nil {
		return nil, err
	}

	offers, err := in.Offers(src, resp)
	if err != nil {
		return nil, err
	}

	if err := query.Remember(rawURL, 1); err != nil {
		log.Warnf("could not remember %s: %v", rawURL, err)
	}

	return &Output{
		Query:  strings.TrimSpace(rawURL),
		Source: src,
		Offers: offers,
	}, nil
}

// Render formats output for a terminal of the given width.
func Render(output *Output, width int) string {
	var b strings.Builder
	src := output.Source

	title := src.Title
	if title == "" {
		title = output.Query
	}

	b.WriteString(style.Bold(wordwrap.String(title, width)))
	b.WriteString("\n")
	b.WriteString(style.Faint(fmt.Sprintf("%s · %s", src.Author, src.Platform)))
	if src.SizeLabel != "" {
		b.WriteString(style.Faint(" · " + src.SizeLabel))
	}
	b.WriteString("\n")

	if text := media.PlainText(src.Description); text != "" {
		b.WriteString("\n")
		b.WriteString(indent.String(wordwrap.String(text, util.Max(width-2, 20)), 2))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, offer := range output.Offers {
		glyph := icon.Get(icon.Video)
		if offer.Quality == "mp3" {
			glyph = icon.Get(icon.Audio)
		}

		b.WriteString(fmt.Sprintf(
			"%s %s\n  %s\n",
			glyph,
			style.Fg(color.Named(offer.Color))(offer.Label),
			style.Faint(offer.URL),
		))
	}

	return b.String()
}
