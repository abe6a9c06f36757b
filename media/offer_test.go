package media

import (
	"net/url"
	"strings"
	"testing"

	"github.com/rko-cli/rko/resolver"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeStem(t *testing.T) {
	Convey("SanitizeStem", t, func() {
		Convey("Strips forbidden characters", func() {
			stem := SanitizeStem(`My:Video/Title*2024`)
			So(strings.ContainsAny(stem, forbiddenChars), ShouldBeFalse)
			So(stem, ShouldEqual, "MyVideoTitle2024")
		})

		Convey("Truncates to 50 characters", func() {
			stem := SanitizeStem(strings.Repeat("ab<>", 40))
			So(len([]rune(stem)), ShouldBeLessThanOrEqualTo, 50)
			So(strings.ContainsAny(stem, forbiddenChars), ShouldBeFalse)
		})

		Convey("Counts characters, not bytes", func() {
			stem := SanitizeStem(strings.Repeat("é", 60))
			So(len([]rune(stem)), ShouldEqual, 50)
		})

		Convey("Defaults to Untitled", func() {
			So(SanitizeStem(""), ShouldEqual, "Untitled")
			So(SanitizeStem(`<>:"/\|?*`), ShouldEqual, "Untitled")
		})
	})
}

func TestFormatColor(t *testing.T) {
	Convey("FormatColor", t, func() {
		So(FormatColor("https://v.example/x?itag=18"), ShouldEqual, ColorGreen)
		So(FormatColor("https://v.example/x?itag=140"), ShouldEqual, ColorBlue)
		So(FormatColor("https://v.example/x?itag=137"), ShouldEqual, ColorDefault)
		So(FormatColor("https://v.example/x"), ShouldEqual, ColorDefault)
	})
}

func TestOffers(t *testing.T) {
	in := newTestInterpreter()

	Convey("Given a YouTube item with one resolver download", t, func() {
		input := "https://youtu.be/dQw4w9WgXcQ"
		resp := &resolver.Response{Data: &resolver.Data{
			Description: "My:Video/Title*2024",
			Source:      resolver.Text(input),
			Downloads:   downloads("https://rr.googlevideo.example/v?itag=22"),
		}}
		src, err := in.Interpret(resp, input)
		So(err, ShouldBeNil)

		offers, err := in.Offers(src, resp)
		So(err, ShouldBeNil)

		Convey("Quality offers precede the resolver entries", func() {
			So(offers, ShouldHaveLength, 5)
			So(offers[0].Label, ShouldEqual, "🎵 Audio MP3")
			So(offers[3].Quality, ShouldEqual, "1080")
			So(offers[4].Color, ShouldEqual, ColorGreen)
		})

		Convey("Quality offers go through the proxy", func() {
			u, err := url.Parse(offers[1].URL)
			So(err, ShouldBeNil)
			So(u.Path, ShouldEqual, "/server/dl.php")
			So(u.Query().Get("q"), ShouldEqual, "360")
			So(u.Query().Get("vkr"), ShouldEqual, input)
		})

		Convey("Filenames carry the stem, suffix and timestamp", func() {
			So(offers[0].Filename, ShouldEqual, "MyVideoTitle2024_mp3_1700000000000.mp3")
			So(offers[2].Filename, ShouldEqual, "MyVideoTitle2024_720_1700000000000.mp4")
			So(offers[4].Filename, ShouldEqual, "MyVideoTitle2024_18_3 MB_1700000000000.mp4")
		})

		Convey("Every offer URL is absolute", func() {
			for _, o := range offers {
				u, err := url.Parse(o.URL)
				So(err, ShouldBeNil)
				So(u.IsAbs(), ShouldBeTrue)
				So(u.Host, ShouldNotBeEmpty)
			}
		})
	})

	Convey("Given a generic item with unusable entries", t, func() {
		resp := &resolver.Response{Data: &resolver.Data{
			Source:    "https://box.example/v",
			Downloads: downloads("", "ftp://files.example/a.mp4", "/rel.mp4"),
		}}
		src, err := in.Interpret(resp, "https://box.example/v")
		So(err, ShouldBeNil)

		offers, err := in.Offers(src, resp)
		So(err, ShouldBeNil)

		Convey("Empty and non-web URLs are dropped, relative ones resolved", func() {
			So(offers, ShouldHaveLength, 1)
			So(offers[0].URL, ShouldEqual, "https://resolver.example/rel.mp4")
			So(offers[0].Label, ShouldEqual, "140 - 3 MB")
		})
	})

	Convey("Given a generic item without downloads", t, func() {
		resp := &resolver.Response{Data: &resolver.Data{Source: "https://box.example/v"}}
		src, _ := in.Interpret(resp, "https://box.example/v")

		Convey("Offers reports that nothing is downloadable", func() {
			_, err := in.Offers(src, resp)
			So(err, ShouldEqual, ErrNoOffers)
		})
	})
}
