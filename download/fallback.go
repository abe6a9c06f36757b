package download

import (
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/open"
)

// Fallback hands a download to an external agent when the direct path fails.
// Completion cannot be observed; a nil error only means the hand-off started.
type Fallback interface {
	Open(url, filename string) error
}

// Browser opens the media URL with an external application, which usually saves it.
type Browser struct {
	// App names the application to use. Empty means the system handler.
	App string
	// Start launches the application. It defaults to open.StartWith.
	Start func(input, app string) error
}

// Open implements Fallback. The browser picks the filename from the response.
func (b Browser) Open(url, filename string) error {
	start := b.Start
	if start == nil {
		start = open.StartWith
	}

	if b.App == "" {
		log.Infof("download: handing %s to the system handler", filename)
	} else {
		log.Infof("download: handing %s to %s", filename, b.App)
	}
	return start(url, b.App)
}
