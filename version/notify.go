package version

import (
	"fmt"
	"io"

	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/icon"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/style"
	"github.com/rko-cli/rko/util"
	"github.com/spf13/viper"
)

// Update describes a published release newer than the running build.
type Update struct {
	Latest  string
	Current string
	URL     string
}

// Available looks up the latest release. ok is false when the build is current
// or the lookup failed.
func Available() (update Update, ok bool) {
	latest, err := Latest()
	if err != nil {
		log.Warnf("version: release lookup failed: %s", err)
		return Update{}, false
	}

	newer, err := Compare(latest, constant.Version)
	if err != nil {
		log.Warnf("version: %s", err)
		return Update{}, false
	}
	if newer <= 0 {
		return Update{}, false
	}

	return Update{
		Latest:  latest,
		Current: constant.Version,
		URL:     fmt.Sprintf("https://github.com/%s/%s/releases/tag/v%s", constant.RepoOwner, constant.RepoName, latest),
	}, true
}

// Notify writes an upgrade notice to w when cli.version_check is on and a newer release exists.
func Notify(w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a newer rko...", icon.Get(icon.Progress)))
	update, ok := Available()
	erase()
	if !ok {
		return
	}

	_, _ = fmt.Fprintf(w, "\n%s rko %s is out %s\n%s\n\n",
		style.Fg(style.Green)(icon.Get(icon.Download)),
		style.Bold(update.Latest),
		style.Faint("(this is "+update.Current+")"),
		style.Faint(update.URL),
	)
}
