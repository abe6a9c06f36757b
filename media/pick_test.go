package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMatch(t *testing.T) {
	offers := []Offer{
		{ID: "yt-mp3", Label: "🎵 Audio MP3", Quality: "mp3"},
		{ID: "yt-720", Label: "💻 720p HD", Quality: "720"},
		{ID: "dl-0", Label: "hd - 10MB", Format: "hd", Size: "10MB"},
	}

	Convey("Match", t, func() {
		Convey("Finds offers by quality, id or format", func() {
			So(must(Match(offers, "720")).ID, ShouldEqual, "yt-720")
			So(must(Match(offers, "YT-MP3")).ID, ShouldEqual, "yt-mp3")
			So(must(Match(offers, " hd ")).ID, ShouldEqual, "dl-0")
		})

		Convey("Suggests the closest label otherwise", func() {
			_, err := Match(offers, "mp4")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "Audio MP3")
		})

		Convey("Reports an empty offer list", func() {
			_, err := Match(nil, "720")
			So(err, ShouldEqual, ErrNoOffers)
		})
	})
}

func must(o Offer, err error) Offer {
	So(err, ShouldBeNil)
	return o
}
