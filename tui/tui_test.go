package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rko-cli/rko/download"
	"github.com/rko-cli/rko/feedback"
	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/media"
	"github.com/rko-cli/rko/resolver"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

var runs atomic.Int32

type stubResolver struct {
	resp *resolver.Response
	err  error
}

func (s stubResolver) Resolve(context.Context, string) (*resolver.Response, error) {
	return s.resp, s.err
}

// lingeringResolver ignores cancellation until release is closed.
type lingeringResolver struct {
	started chan struct{}
	release chan struct{}
}

func (l lingeringResolver) Resolve(context.Context, string) (*resolver.Response, error) {
	close(l.started)
	<-l.release
	return nil, context.Canceled
}

func youtubeResponse() *resolver.Response {
	var resp resolver.Response
	So(json.Unmarshal([]byte(`{"data":{"title":"Clip","description":"A short clip","source":"https://youtu.be/dQw4w9WgXcQ","downloads":[]}}`), &resp), ShouldBeNil)
	return &resp
}

func newTestBubble(r resolver.Resolver, base string) (*statefulBubble, history.Store) {
	in, err := media.NewInterpreter(base)
	So(err, ShouldBeNil)

	run := runs.Add(1)
	store := history.NewJSON(fmt.Sprintf("/history/run-%d.json", run))
	notifier := feedback.New(time.Minute, time.Minute)

	b := newBubble(context.Background(), &Options{
		Resolver:    r,
		Interpreter: in,
		History:     store,
		Notifier:    notifier,
		Download: &download.Options{
			Dir:        fmt.Sprintf("/downloads/run-%d", run),
			ResetDelay: 10 * time.Millisecond,
		},
	})
	b.resize(100, 40)
	return b, store
}

func TestSearch(t *testing.T) {
	Convey("Given a bubble", t, func() {
		b, _ := newTestBubble(stubResolver{resp: youtubeResponse()}, "https://resolver.example/server")

		Convey("An empty submission shows the inline error without a request", func() {
			So(b.submit("   "), ShouldBeNil)
			So(b.state, ShouldEqual, searchState)

			msg, ok := b.notifier.Inline()
			So(ok, ShouldBeTrue)
			So(msg.Text, ShouldEqual, resolver.InvalidInputMessage)
			So(b.dispatcher.Generation(), ShouldEqual, 0)
		})

		Convey("A resolved URL shows its offers", func() {
			b.newState(loadingState)
			msg := b.resolve("https://youtu.be/dQw4w9WgXcQ")()

			b.Update(msg)
			So(b.state, ShouldEqual, resultState)
			So(b.offersC.Items(), ShouldHaveLength, len(media.Qualities))
			So(b.result.Source.VideoID, ShouldEqual, "dQw4w9WgXcQ")

			Convey("And going back returns to the input", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, searchState)
			})
		})

		Convey("A superseded completion is discarded", func() {
			b.newState(loadingState)
			msg := b.resolve("https://youtu.be/dQw4w9WgXcQ")()
			b.dispatcher.Supersede()

			b.Update(msg)
			So(b.result, ShouldBeNil)
		})
	})

	Convey("Submitting while a superseded request is finishing", t, func() {
		lingering := lingeringResolver{started: make(chan struct{}), release: make(chan struct{})}
		b, _ := newTestBubble(lingering, "https://resolver.example/server")

		done := make(chan tea.Msg, 1)
		b.newState(loadingState)
		resolve := b.resolve("https://youtu.be/dQw4w9WgXcQ")
		go func() { done <- resolve() }()
		<-lingering.started

		b.Update(tea.KeyMsg{Type: tea.KeyEsc})
		So(b.state, ShouldEqual, searchState)
		So(b.dispatcher.Busy(), ShouldBeTrue)

		Reset(func() {
			close(lingering.release)
			<-done
		})

		Convey("Tells the user to retry instead of doing nothing", func() {
			So(b.submit("https://youtu.be/dQw4w9WgXcQ"), ShouldBeNil)
			So(b.state, ShouldEqual, searchState)

			msg, ok := b.options.Notifier.Current()
			So(ok, ShouldBeTrue)
			So(msg.Kind, ShouldEqual, feedback.Info)
			So(msg.Text, ShouldEqual, busyMessage)
		})
	})

	Convey("Network failures surface their cause inline", t, func() {
		cause := &resolver.NetworkError{Status: 429, Attempts: 5}
		b, _ := newTestBubble(stubResolver{err: cause}, "https://resolver.example/server")

		b.newState(loadingState)
		b.Update(b.resolve("https://x.example/v")())

		So(b.state, ShouldEqual, searchState)
		msg, ok := b.notifier.Inline()
		So(ok, ShouldBeTrue)
		So(msg.Text, ShouldEqual, cause.Cause())
	})
}

func TestDownloadAndHistory(t *testing.T) {
	Convey("Given a proxy serving media", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("media"))
		}))
		defer server.Close()

		b, store := newTestBubble(stubResolver{resp: youtubeResponse()}, server.URL+"/server")
		b.newState(loadingState)
		b.Update(b.resolve("https://youtu.be/dQw4w9WgXcQ")())
		So(b.state, ShouldEqual, resultState)

		Convey("Confirming an offer downloads it and records the attempt", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			b.orchestrator.Wait()

			attempts, err := store.List(context.Background())
			So(err, ShouldBeNil)
			So(attempts, ShouldHaveLength, 1)
			So(attempts[0].Outcome, ShouldEqual, history.OutcomeSuccess)

			Convey("And the history view lists it", func() {
				b.Update(b.loadHistory()())
				So(b.state, ShouldEqual, historyState)
				So(b.historyC.Items(), ShouldHaveLength, 1)
			})
		})
	})

	Convey("An empty history shows the placeholder", t, func() {
		b, _ := newTestBubble(stubResolver{}, "https://resolver.example/server")
		b.Update(b.loadHistory()())

		So(b.state, ShouldEqual, historyState)
		So(b.View(), ShouldContainSubstring, history.Placeholder)
	})
}
