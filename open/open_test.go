package open

import (
	"testing"

	"github.com/rko-cli/rko/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a media URL", t, func() {
		url := "https://cdn.example/v.mp4?a=1&b=2"

		Convey("The default handler is used without an app", func() {
			cmd, err := command(constant.Linux, url, "")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", url})

			cmd, err = command(constant.Darwin, url, "")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", url})
		})

		Convey("A named app receives the URL", func() {
			cmd, err := command(constant.Linux, url, "firefox")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"firefox", url})

			cmd, err = command(constant.Darwin, url, "Safari")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", "-a", "Safari", url})
		})

		Convey("Ampersands are escaped for cmd start", func() {
			cmd, err := command(constant.Windows, url, "chrome")
			So(err, ShouldBeNil)
			So(cmd.Args[len(cmd.Args)-1], ShouldEqual, "https://cdn.example/v.mp4?a=1^&b=2")
		})

		Convey("Unknown platforms are rejected", func() {
			_, err := command("plan9", url, "")
			So(err, ShouldNotBeNil)
		})
	})
}
