package player

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rko-cli/rko/constant"
)

// MPV plays media with the mpv command line player.
type MPV struct {
	binary string
}

// NewMPV creates a new MPV player instance (does not start playback).
func NewMPV() *MPV {
	return &MPV{binary: "mpv"}
}

// Name implements Player.
func (m *MPV) Name() string {
	return "mpv"
}

// Play implements Player.
func (m *MPV) Play(ctx context.Context, target, title string) error {
	args, err := mpvArgs(target, title)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, m.binary, args...)
	supervise(cmd)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mpv: %w", err)
	}
	return nil
}

// mpvArgs builds the argument list for a single playback.
// Only title and target are passed so the user's mpv.conf stays in charge.
func mpvArgs(target, title string) ([]string, error) {
	safeURL, err := sanitizeMediaTarget(target)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	safeTitle := sanitizeTitle(title)

	return []string{
		"--no-terminal",
		"--really-quiet",
		"--force-window=yes",
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--user-agent=%s", constant.UserAgent),
		"--",
		safeURL,
	}, nil
}

var (
	errEmptyTarget   = errors.New("empty URL")
	errControlChars  = errors.New("control characters in URL")
	errFlagLikeInput = errors.New("target starts with '-' and would be read as a flag")
)

// sanitizeMediaTarget accepts http(s) URLs and local paths. Resolver output is
// untrusted, so anything mpv could parse as an option is refused.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	switch {
	case l == "":
		return "", errEmptyTarget
	case strings.ContainsAny(l, "\x00\n\r"):
		return "", errControlChars
	case strings.HasPrefix(l, "-"):
		return "", errFlagLikeInput
	case !strings.Contains(l, "://"):
		return filepath.Clean(l), nil
	}

	u, err := url.Parse(l)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	return l, nil
}

// sanitizeTitle flattens the title into a single printable line.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	t = strings.TrimSpace(t)
	if t == "" {
		return constant.DisplayName
	}
	return t
}
