package download

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rko-cli/rko/feedback"
	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/media"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func init() {
	filesystem.SetMemMapFs()
}

var runs atomic.Int32

type fakeFallback struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (f *fakeFallback) Open(url, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, url)
	return f.err
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) terminal(offerID string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.Filter(r.events, func(e Event, _ int) bool {
		return e.Offer.ID == offerID && (e.State == Succeeded || e.State == Failed)
	})
}

type memoryStore struct {
	mu       sync.Mutex
	attempts []history.Attempt
}

func (m *memoryStore) Append(_ context.Context, a history.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *memoryStore) List(context.Context) ([]history.Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]history.Attempt{}, m.attempts...), nil
}

func (m *memoryStore) Clear(context.Context) error { return nil }

func (m *memoryStore) Close() error { return nil }

func TestOrchestrator(t *testing.T) {
	Convey("Given a media server and an orchestrator", t, func() {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/slow.mp4":
				<-release
				_, _ = fmt.Fprint(w, "slow-bytes")
			case "/ok.mp3":
				_, _ = fmt.Fprint(w, "audio-bytes")
			default:
				w.WriteHeader(http.StatusInternalServerError)
			}
		}))
		defer srv.Close()

		dir := fmt.Sprintf("/downloads/run-%d", runs.Add(1))
		store := &memoryStore{}
		fb := &fakeFallback{}
		rec := &recorder{}
		notifier := feedback.New(time.Minute, time.Minute)

		o := New(&media.Source{Platform: "YouTube", Author: "someone"}, Options{
			Client:       srv.Client(),
			Dir:          dir,
			ResetDelay:   10 * time.Millisecond,
			ReleaseDelay: time.Millisecond,
			Fallback:     fb,
			History:      store,
			Notifier:     notifier,
		})
		o.Subscribe(rec.record)

		audio := media.Offer{ID: "yt-mp3", Label: "🎵 Audio MP3", URL: srv.URL + "/ok.mp3", Filename: "clip_mp3_1.mp3"}
		broken := media.Offer{ID: "dl-0", Label: "18 - 3 MB", URL: srv.URL + "/broken.mp4", Filename: "clip_18_1.mp4"}
		slow := media.Offer{ID: "dl-1", Label: "22 - 9 MB", URL: srv.URL + "/slow.mp4", Filename: "clip_22_1.mp4"}

		Convey("A successful download is saved under its filename", func() {
			close(release)
			So(o.Start(context.Background(), audio), ShouldBeNil)
			o.Wait()

			data, err := afero.ReadFile(filesystem.API(), filepath.Join(dir, audio.Filename))
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "audio-bytes")

			terminal := rec.terminal(audio.ID)
			So(terminal, ShouldHaveLength, 1)
			So(terminal[0].State, ShouldEqual, Succeeded)
			So(terminal[0].Outcome, ShouldEqual, history.OutcomeSuccess)
			So(o.Button(audio.ID).State(), ShouldEqual, Idle)

			attempts, _ := store.List(context.Background())
			So(attempts, ShouldHaveLength, 1)
			So(attempts[0].Platform, ShouldEqual, "YouTube")
			So(attempts[0].Author, ShouldEqual, "someone")
		})

		Convey("A failing download falls back and leaves no partial file", func() {
			close(release)
			So(o.Start(context.Background(), broken), ShouldBeNil)
			o.Wait()

			terminal := rec.terminal(broken.ID)
			So(terminal, ShouldHaveLength, 1)
			So(terminal[0].State, ShouldEqual, Failed)
			So(terminal[0].Outcome, ShouldEqual, history.OutcomeFallback)

			var httpErr *HTTPError
			So(errors.As(terminal[0].Err, &httpErr), ShouldBeTrue)
			So(httpErr.Status, ShouldEqual, http.StatusInternalServerError)
			So(fb.opened, ShouldResemble, []string{broken.URL})

			entries, _ := afero.ReadDir(filesystem.API(), dir)
			So(entries, ShouldBeEmpty)
		})

		Convey("A re-entrant start while pending is rejected", func() {
			So(o.Start(context.Background(), slow), ShouldBeNil)
			So(errors.Is(o.Start(context.Background(), slow), ErrPending), ShouldBeTrue)
			So(o.Button(slow.ID).State(), ShouldEqual, Pending)

			close(release)
			o.Wait()
			So(rec.terminal(slow.ID), ShouldHaveLength, 1)
		})

		Convey("Two concurrent offers both reach their own terminal state", func() {
			So(o.Start(context.Background(), slow), ShouldBeNil)
			So(o.Start(context.Background(), broken), ShouldBeNil)
			close(release)
			o.Wait()

			So(rec.terminal(slow.ID), ShouldHaveLength, 1)
			So(rec.terminal(slow.ID)[0].State, ShouldEqual, Succeeded)
			So(rec.terminal(broken.ID), ShouldHaveLength, 1)
			So(rec.terminal(broken.ID)[0].State, ShouldEqual, Failed)

			attempts, _ := store.List(context.Background())
			So(attempts, ShouldHaveLength, 2)
		})

		Convey("Without a fallback the failure is recorded as failed", func() {
			close(release)
			o.opts.Fallback = nil
			So(o.Start(context.Background(), broken), ShouldBeNil)
			o.Wait()

			attempts, _ := store.List(context.Background())
			So(attempts, ShouldHaveLength, 1)
			So(attempts[0].Outcome, ShouldEqual, history.OutcomeFailed)

			msg, ok := notifier.Current()
			So(ok, ShouldBeTrue)
			So(msg.Kind, ShouldEqual, feedback.Error)
		})
	})
}

func TestUniquePath(t *testing.T) {
	Convey("uniquePath avoids overwriting existing files", t, func() {
		fs := filesystem.API()
		So(afero.WriteFile(fs, "/unique/a.mp4", []byte("x"), 0o644), ShouldBeNil)
		So(afero.WriteFile(fs, "/unique/a (1).mp4", []byte("x"), 0o644), ShouldBeNil)

		path, err := uniquePath(fs, "/unique/a.mp4")
		So(err, ShouldBeNil)
		So(path, ShouldEqual, "/unique/a (2).mp4")
	})

	Convey("safeName strips directories", t, func() {
		So(safeName("../../etc/passwd"), ShouldEqual, "passwd")
		So(safeName(`..\..\win.ini`), ShouldEqual, "win.ini")
		So(safeName(""), ShouldEqual, "download.mp4")
		So(safeName(".."), ShouldEqual, "download.mp4")
		So(safeName("a/.."), ShouldEqual, "download.mp4")
		So(filepath.Join("/downloads", safeName("..")), ShouldEqual, "/downloads/download.mp4")
	})
}

func TestBrowser(t *testing.T) {
	Convey("Browser hands the URL to the configured app", t, func() {
		var gotURL, gotApp string
		b := Browser{App: "firefox", Start: func(input, app string) error {
			gotURL, gotApp = input, app
			return nil
		}}

		So(b.Open("https://cdn.example/v.mp4", "v.mp4"), ShouldBeNil)
		So(gotURL, ShouldEqual, "https://cdn.example/v.mp4")
		So(gotApp, ShouldEqual, "firefox")

		b.App = ""
		So(b.Open("https://cdn.example/v.mp4", "v.mp4"), ShouldBeNil)
		So(gotApp, ShouldBeEmpty)
	})
}

func TestCaption(t *testing.T) {
	Convey("Button captions follow the state", t, func() {
		offer := media.Offer{Label: "📺 1080p Full HD"}
		b := &Button{}
		So(b.Caption(offer), ShouldEqual, offer.Label)

		So(b.begin(), ShouldBeTrue)
		So(b.Caption(offer), ShouldEqual, "⏳ Downloading...")
		So(b.begin(), ShouldBeFalse)

		b.finish(Failed, history.OutcomeFallback)
		So(b.Caption(offer), ShouldEqual, "📥 Downloaded")

		b.reset()
		So(b.State(), ShouldEqual, Idle)
	})
}
