package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func todaysLog() string {
	raw, err := afero.ReadFile(filesystem.API(), filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log"))
	if err != nil {
		return ""
	}
	return string(raw)
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Warnf("resolver: attempt %d failed", 1)
		So(todaysLog(), ShouldNotContainSubstring, "attempt 1 failed")
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "info")
		defer viper.Set(key.LogsWrite, false)

		Convey("Messages at or above the level reach the daily file", func() {
			viper.Set(key.LogsJson, false)
			So(Setup(), ShouldBeNil)

			Infof("download: saved %d bytes", 42)
			Debugf("cache: hidden below info")

			content := todaysLog()
			So(content, ShouldContainSubstring, "download: saved 42 bytes")
			So(content, ShouldContainSubstring, "app=rko")
			So(content, ShouldNotContainSubstring, "hidden below info")
		})

		Convey("The JSON formatter is used when requested", func() {
			viper.Set(key.LogsJson, true)
			defer viper.Set(key.LogsJson, false)
			So(Setup(), ShouldBeNil)

			Errorf("server: %s", "boom")
			So(todaysLog(), ShouldContainSubstring, `"msg":"server: boom"`)
		})
	})
}
