package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/rko-cli/rko/feedback"
	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		n := feedback.New(time.Minute, time.Minute)
		m := &Model{Notifier: n}

		Convey("Without a message the content is untouched", func() {
			So(m.View("body"), ShouldEqual, "body")
		})

		Convey("A toast is appended below the content", func() {
			msg := n.Notify(feedback.Success, "clip downloaded successfully! 🎉")
			So(m.Update(msg), ShouldNotBeNil)
			So(strings.Count(m.View("body"), "\n"), ShouldEqual, 1)
			So(m.View("body"), ShouldContainSubstring, "clip downloaded")
		})

		Convey("Inline errors are not shown as toasts", func() {
			n.Fail("Please enter a valid video URL")
			So(m.View("body"), ShouldEqual, "body")

			msg, ok := m.Inline()
			So(ok, ShouldBeTrue)
			So(msg.Kind, ShouldEqual, feedback.Error)
		})

		Convey("Expiry dismisses only the matching message", func() {
			first := n.Notify(feedback.Info, "first")
			second := n.Notify(feedback.Info, "second")

			m.Update(ClearNotificationMsg{ID: first.ID})
			current, ok := n.Current()
			So(ok, ShouldBeTrue)
			So(current.ID, ShouldEqual, second.ID)

			m.Update(ClearNotificationMsg{ID: second.ID})
			_, ok = n.Current()
			So(ok, ShouldBeFalse)
		})
	})
}
