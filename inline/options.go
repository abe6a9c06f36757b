// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"io"

	"github.com/rko-cli/rko/media"
	"github.com/rko-cli/rko/resolver"
)

type Options struct {
	Out io.Writer
	// URL is the source media URL to resolve.
	URL  string
	Json bool
	// Width wraps pretty output. Zero means the terminal width.
	Width       int
	Resolver    resolver.Resolver
	Interpreter *media.Interpreter
}
