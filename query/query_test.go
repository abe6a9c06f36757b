package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given remembered URLs", t, func() {
		So(store().Set(nil), ShouldBeNil)
		q1 := "https://youtu.be/dQw4w9WgXcQ"
		q2 := "https://vimeo.com/76979871"

		So(Remember(q1, 1), ShouldBeNil)
		So(Remember(q2, 10), ShouldBeNil)

		Convey("Suggestions match fuzzily and are sorted by use", func() {
			So(SuggestMany("vimeo"), ShouldResemble, []string{q2})
			So(SuggestMany("https"), ShouldResemble, []string{q2, q1})
		})

		Convey("Matching ignores case but results keep it", func() {
			So(Suggest("DQW4").MustGet(), ShouldEqual, q1)
		})

		Convey("Equal use counts prefer the most recent URL", func() {
			q3 := "https://youtu.be/aaaaaaaaaaa"
			previous := now
			defer func() { now = previous }()
			now = func() time.Time { return time.Now().Add(time.Hour) }

			So(Remember(q3, 1), ShouldBeNil)
			So(SuggestMany("youtu"), ShouldResemble, []string{q3, q1})
		})

		Convey("Suggestions can be turned off", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)
			So(SuggestMany("vimeo"), ShouldBeEmpty)
		})

		Convey("Blank input is not remembered", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(SuggestMany(""), ShouldHaveLength, 2)
		})

		Convey("Only the best used URLs are kept", func() {
			for i := 0; i < Limit; i++ {
				So(Remember(fmt.Sprintf("https://x.example/v/%d", i), 2), ShouldBeNil)
			}
			So(load(), ShouldHaveLength, Limit)
			So(SuggestMany("dQw4"), ShouldBeEmpty)
			So(SuggestMany("vimeo"), ShouldResemble, []string{q2})
		})
	})
}
