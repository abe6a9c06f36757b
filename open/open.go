// Package open hands URLs to the platform opener or to a named application.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rko-cli/rko/constant"
)

// Start opens input with the system default handler and returns without waiting.
func Start(input string) error {
	return StartWith(input, "")
}

// StartWith opens input with app, or with the default handler when app is empty.
func StartWith(input, app string) error {
	cmd, err := command(runtime.GOOS, input, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, input, app string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		if app == "" {
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
		}
		// cmd's start treats & as a separator, and media URLs are full of them.
		return exec.Command("cmd", "/C", "start", "", app, strings.ReplaceAll(input, "&", "^&")), nil
	case constant.Darwin:
		if app == "" {
			return exec.Command("open", input), nil
		}
		return exec.Command("open", "-a", app, input), nil
	case constant.Linux:
		if app == "" {
			return exec.Command("xdg-open", input), nil
		}
		return exec.Command(app, input), nil
	case constant.Android:
		if app == "" {
			return exec.Command("termux-open", input), nil
		}
		return exec.Command("termux-open", "--choose", input), nil
	default:
		return nil, fmt.Errorf("no opener for %s", goos)
	}
}
