package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDetectPlatform(t *testing.T) {
	Convey("DetectPlatform", t, func() {
		So(DetectPlatform("https://www.youtube.com/watch?v=dQw4w9WgXcQ"), ShouldEqual, "YouTube")
		So(DetectPlatform("https://youtu.be/dQw4w9WgXcQ"), ShouldEqual, "YouTube")
		So(DetectPlatform("https://m.facebook.com/watch/?v=1"), ShouldEqual, "Facebook")
		So(DetectPlatform("https://x.com/user/status/1"), ShouldEqual, "Twitter")
		So(DetectPlatform("https://box.example/video"), ShouldEqual, "Other")
		So(DetectPlatform("::"), ShouldEqual, "Other")
	})
}

func TestExtractAuthor(t *testing.T) {
	Convey("ExtractAuthor", t, func() {
		Convey("Prefers the reported author", func() {
			So(ExtractAuthor("<b>Channel</b>", "https://www.tiktok.com/@someone/video/1"), ShouldEqual, "Channel")
		})

		Convey("Falls back to handles found in the URL", func() {
			So(ExtractAuthor("", "https://www.tiktok.com/@someone/video/1"), ShouldEqual, "someone")
			So(ExtractAuthor("", "https://x.com/Jack/status/20"), ShouldEqual, "Jack")
			So(ExtractAuthor("", "https://www.instagram.com/natgeo/reel/abc"), ShouldEqual, "natgeo")
		})

		Convey("Ignores path segments that are not handles", func() {
			So(ExtractAuthor("", "https://www.instagram.com/p/abc"), ShouldEqual, UnknownAuthor)
			So(ExtractAuthor("", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"), ShouldEqual, UnknownAuthor)
		})
	})
}
