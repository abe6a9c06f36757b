package player

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/rko-cli/rko/constant"
)

// IINA plays media with the macOS IINA application through LaunchServices.
type IINA struct{}

func NewIINA() *IINA {
	return &IINA{}
}

// Name implements Player.
func (i *IINA) Name() string {
	return "iina"
}

// Play implements Player. LaunchServices returns as soon as IINA accepted the file,
// so only launch failures are reported.
func (i *IINA) Play(ctx context.Context, target, title string) error {
	if runtime.GOOS != constant.Darwin {
		return fmt.Errorf("IINA is only supported on macOS")
	}

	safeURL, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	args := []string{
		"-W", "-a", "IINA", safeURL,
		"--args", fmt.Sprintf("--mpv-force-media-title=%s", sanitizeTitle(title)),
	}

	if err := exec.CommandContext(ctx, "open", args...).Run(); err != nil {
		return fmt.Errorf("LaunchServices failed to invoke IINA: %w", err)
	}
	return nil
}
