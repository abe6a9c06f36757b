package where

import (
	"path/filepath"
	"testing"

	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Responses() lives under the cache", func() {
			So(filepath.Dir(Responses()), ShouldEqual, Cache())
		})

		Convey("History files live under the config", func() {
			So(filepath.Dir(History()), ShouldEqual, Config())
			So(filepath.Dir(HistoryDB()), ShouldEqual, Config())
		})
	})
}

func TestDownloads(t *testing.T) {
	Convey("Given a configured download directory", t, func() {
		viper.Set(key.DownloadDir, "/tmp/rko-downloads")
		defer viper.Set(key.DownloadDir, "")

		Convey("Downloads() returns it and creates it", func() {
			So(Downloads(), ShouldEqual, "/tmp/rko-downloads")
			So(lo.Must(filesystem.API().IsDir("/tmp/rko-downloads")), ShouldBeTrue)
		})
	})
}
