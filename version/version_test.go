package version

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCompare(t *testing.T) {
	Convey("Compare orders semantic versions", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"1.0.0", "1.0.0", 0},
			{"v1.2.0", "1.1.9", 1},
			{"0.3.0", "0.10.0", -1},
			{"2.0.0", "v10.0.0", -1},
			{"1.2.0-rc1", "1.2.0", 0},
			{"1.2.1+build.7", "1.2.0", 1},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}
	})

	Convey("Compare rejects garbage", t, func() {
		_, err := Compare("latest", "1.0.0")
		So(err, ShouldNotBeNil)
		_, err = Compare("1.0", "1.0.0")
		So(err, ShouldNotBeNil)
		_, err = Compare("1.0.0", "1.-1.0")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a release endpoint", t, func() {
		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			_, _ = fmt.Fprint(w, `{"tag_name":"v1.4.2"}`)
		}))
		defer server.Close()

		previous := ReleasesURL
		ReleasesURL = server.URL
		defer func() { ReleasesURL = previous }()

		Convey("The tag is stripped of its prefix and cached", func() {
			_ = versionCacher().Set("")

			v, err := Latest()
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "1.4.2")

			v, err = Latest()
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "1.4.2")
			So(hits, ShouldEqual, 1)
		})
	})
}

func TestNotify(t *testing.T) {
	Convey("Given a cached release", t, func() {
		viper.Set(key.CliVersionCheck, true)
		defer viper.Set(key.CliVersionCheck, false)

		Convey("A newer release is announced with its tag URL", func() {
			So(versionCacher().Set("99.0.0"), ShouldBeNil)

			update, ok := Available()
			So(ok, ShouldBeTrue)
			So(update.Current, ShouldEqual, constant.Version)
			So(update.URL, ShouldEndWith, "/releases/tag/v99.0.0")

			var out bytes.Buffer
			Notify(&out)
			So(out.String(), ShouldContainSubstring, "99.0.0")
		})

		Convey("The running release is not announced", func() {
			So(versionCacher().Set(constant.Version), ShouldBeNil)

			_, ok := Available()
			So(ok, ShouldBeFalse)

			var out bytes.Buffer
			Notify(&out)
			So(out.Len(), ShouldEqual, 0)
		})

		Convey("Nothing is printed when the check is off", func() {
			So(versionCacher().Set("99.0.0"), ShouldBeNil)
			viper.Set(key.CliVersionCheck, false)

			var out bytes.Buffer
			Notify(&out)
			So(out.Len(), ShouldEqual, 0)
		})
	})
}
