package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/media"
	"github.com/spf13/afero"
)

// save fetches offer into the download directory and returns the final path.
// The body is streamed to a temporary file that is renamed once complete.
func (o *Orchestrator) save(ctx context.Context, offer media.Offer) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, offer.URL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := o.opts.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{Status: resp.StatusCode}
	}

	fs := filesystem.API()
	if err := fs.MkdirAll(o.opts.Dir, os.ModePerm); err != nil {
		return "", err
	}

	name := safeName(offer.Filename)
	tmp, err := afero.TempFile(fs, o.opts.Dir, "."+name+".*.part")
	if err != nil {
		return "", err
	}

	written, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		o.release(tmp.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	final, err := uniquePath(fs, filepath.Join(o.opts.Dir, name))
	if err != nil {
		o.release(tmp.Name())
		return "", err
	}

	if err := fs.Rename(tmp.Name(), final); err != nil {
		o.release(tmp.Name())
		return "", err
	}

	log.Infof("download: saved %d bytes to %s", written, final)
	return final, nil
}

// release removes a partial file after the release delay.
func (o *Orchestrator) release(path string) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		timer := time.NewTimer(o.opts.ReleaseDelay)
		select {
		case <-timer.C:
		case <-o.closed:
			timer.Stop()
		}

		if err := filesystem.API().Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warnf("download: release %s: %s", path, err)
		}
	}()
}

// safeName keeps only the last path element so a filename cannot escape the directory.
func safeName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return "download.mp4"
	}
	return name
}

// uniquePath appends " (n)" before the extension until path does not exist.
func uniquePath(fs afero.Afero, path string) (string, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	candidate := path
	for i := 1; ; i++ {
		exists, err := fs.Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
	}
}
