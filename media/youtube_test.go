package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExtractYouTubeID(t *testing.T) {
	Convey("ExtractYouTubeID", t, func() {
		Convey("Non YouTube hosts yield nothing", func() {
			for _, raw := range []string{
				"https://vimeo.com/12345678901",
				"https://example.com/watch?v=dQw4w9WgXcQ",
				"https://youtube.com.evil.example/watch?v=dQw4w9WgXcQ",
				"https://m.youtube.com/watch?v=dQw4w9WgXcQ",
				"not a url",
				"",
			} {
				So(ExtractYouTubeID(raw).IsAbsent(), ShouldBeTrue)
			}
		})

		Convey("Short links need exactly 11 characters", func() {
			So(ExtractYouTubeID("https://youtu.be/dQw4w9WgXcQ").MustGet(), ShouldEqual, "dQw4w9WgXcQ")
			So(ExtractYouTubeID("https://youtu.be/dQw4w9WgXc").IsAbsent(), ShouldBeTrue)
			So(ExtractYouTubeID("https://youtu.be/dQw4w9WgXcQQ").IsAbsent(), ShouldBeTrue)
		})

		Convey("Watch links read the v parameter", func() {
			So(ExtractYouTubeID("https://www.youtube.com/watch?v=dQw4w9WgXcQ").MustGet(), ShouldEqual, "dQw4w9WgXcQ")
			So(ExtractYouTubeID("https://youtube.com/watch?feature=share&v=dQw4w9WgXcQ").MustGet(), ShouldEqual, "dQw4w9WgXcQ")
			So(ExtractYouTubeID("https://www.youtube.com/watch?v=short").IsAbsent(), ShouldBeTrue)
			So(ExtractYouTubeID("https://www.youtube.com/watch").IsAbsent(), ShouldBeTrue)
		})

		Convey("Shorts read the second path segment", func() {
			So(ExtractYouTubeID("https://www.youtube.com/shorts/dQw4w9WgXcQ").MustGet(), ShouldEqual, "dQw4w9WgXcQ")
			So(ExtractYouTubeID("https://www.youtube.com/shorts/dQw4w9WgXcQ?feature=share").MustGet(), ShouldEqual, "dQw4w9WgXcQ")
			So(ExtractYouTubeID("https://www.youtube.com/shorts/abc").IsAbsent(), ShouldBeTrue)
		})

		Convey("Ids with characters outside the id alphabet are rejected", func() {
			So(ExtractYouTubeID("https://youtu.be/dQw4w9W%20cQ").IsAbsent(), ShouldBeTrue)
		})
	})
}
