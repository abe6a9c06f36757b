package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/internal/cache"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

var runs atomic.Int32

// recorder hands out timers that fire at once and remembers every requested delay.
type recorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recorder) timer() backoff.Timer {
	return &instantTimer{rec: r, c: make(chan time.Time, 1)}
}

type instantTimer struct {
	rec *recorder
	c   chan time.Time
}

func (t *instantTimer) Start(d time.Duration) {
	t.rec.mu.Lock()
	t.rec.delays = append(t.rec.delays, d)
	t.rec.mu.Unlock()
	t.c <- time.Now()
}

func (t *instantTimer) Stop() {}

func (t *instantTimer) C() <-chan time.Time { return t.c }

func newTestClient(srv *httptest.Server, rec *recorder, retries int) *Client {
	return NewClient(Options{
		BaseURL:    srv.URL + "/server",
		Retries:    retries,
		RetryDelay: 2 * time.Second,
		Timeout:    time.Second,
		HTTPClient: srv.Client(),
		NewTimer:   rec.timer,
	})
}

func TestBackoff(t *testing.T) {
	Convey("Backoff doubles from the base delay", t, func() {
		base := 2000 * time.Millisecond
		So(Backoff(base, 0), ShouldEqual, 0)
		So(Backoff(base, 1), ShouldEqual, 2000*time.Millisecond)
		So(Backoff(base, 2), ShouldEqual, 4000*time.Millisecond)
		So(Backoff(base, 3), ShouldEqual, 8000*time.Millisecond)
		So(Backoff(base, 4), ShouldEqual, 16000*time.Millisecond)
		So(Backoff(base, 6), ShouldEqual, 64000*time.Millisecond)
	})
}

func TestResolve(t *testing.T) {
	Convey("Given a resolver endpoint", t, func() {
		var hits atomic.Int32
		var lastQuery atomic.Value
		status := http.StatusOK
		body := `{"data":{"title":"Clip","source":"https://example.com/v","downloads":[{"url":"https://cdn.example.com/a.mp4","format_id":18,"size":"3 MB"}]}}`

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			lastQuery.Store(r.URL.Query())
			w.WriteHeader(status)
			_, _ = fmt.Fprint(w, body)
		}))
		defer srv.Close()

		rec := &recorder{}
		client := newTestClient(srv, rec, 4)

		Convey("Empty input fails without a request", func() {
			_, err := client.Resolve(context.Background(), "   ")
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 0)
		})

		Convey("A successful response is decoded on the first attempt", func() {
			resp, err := client.Resolve(context.Background(), " https://example.com/v?x=1&y=2 ")
			So(err, ShouldBeNil)
			So(resp.Data, ShouldNotBeNil)
			So(resp.Data.Title.String(), ShouldEqual, "Clip")
			So(resp.Data.Downloads[0].FormatID.String(), ShouldEqual, "18")
			So(hits.Load(), ShouldEqual, 1)
			So(rec.delays, ShouldBeEmpty)

			Convey("And the source is sent percent-encoded with the api key", func() {
				q := lastQuery.Load().(url.Values)
				So(q["vkr"], ShouldResemble, []string{"https://example.com/v?x=1&y=2"})
				So(q["api_key"], ShouldResemble, []string{"vkrdownloader"})
			})
		})

		Convey("A permanently failing endpoint", func() {
			status = http.StatusTooManyRequests
			_, err := client.Resolve(context.Background(), "https://example.com/v")

			Convey("Is tried exactly five times", func() {
				So(hits.Load(), ShouldEqual, 5)
			})

			Convey("With doubling delays between attempts", func() {
				So(rec.delays, ShouldResemble, []time.Duration{
					2000 * time.Millisecond,
					4000 * time.Millisecond,
					8000 * time.Millisecond,
					16000 * time.Millisecond,
				})
			})

			Convey("And reports a classified NetworkError", func() {
				var netErr *NetworkError
				So(errors.As(err, &netErr), ShouldBeTrue)
				So(netErr.Status, ShouldEqual, http.StatusTooManyRequests)
				So(netErr.Attempts, ShouldEqual, 5)
				So(netErr.Cause(), ShouldEqual, "Too Many Requests: You are being rate-limited.")
			})
		})

		Convey("An undecodable successful body is not retried", func() {
			body = "<html>oops</html>"
			_, err := client.Resolve(context.Background(), "https://example.com/v")
			So(errors.Is(err, ErrMalformedResponse), ShouldBeTrue)
			var netErr *NetworkError
			So(errors.As(err, &netErr), ShouldBeFalse)
			So(hits.Load(), ShouldEqual, 1)
			So(rec.delays, ShouldBeEmpty)
		})

		Convey("An undecodable error body is still retried", func() {
			status = http.StatusBadGateway
			body = "<html>oops</html>"
			_, err := client.Resolve(context.Background(), "https://example.com/v")
			var netErr *NetworkError
			So(errors.As(err, &netErr), ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 5)
		})

		Convey("Fields of an unexpected shape are left empty", func() {
			body = `{"data":{"title":{"text":"Clip"},"size":["3 MB"],"source":"https://example.com/v","downloads":[{"url":"https://cdn.example.com/a.mp4","format_id":{"id":18}}]}}`
			resp, err := client.Resolve(context.Background(), "https://example.com/v")
			So(err, ShouldBeNil)
			So(hits.Load(), ShouldEqual, 1)
			So(resp.Data.Title.String(), ShouldBeEmpty)
			So(resp.Data.Size.String(), ShouldBeEmpty)
			So(resp.Data.Source.String(), ShouldEqual, "https://example.com/v")
			So(resp.Data.Downloads[0].URL.String(), ShouldEqual, "https://cdn.example.com/a.mp4")
			So(resp.Data.Downloads[0].FormatID.String(), ShouldBeEmpty)
		})

		Convey("A response without data is returned as is", func() {
			body = `{}`
			resp, err := client.Resolve(context.Background(), "https://example.com/v")
			So(err, ShouldBeNil)
			So(resp.Data, ShouldBeNil)
		})

		Convey("A cancelled context stops retrying", func() {
			status = http.StatusServiceUnavailable
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := client.Resolve(ctx, "https://example.com/v")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("With a response cache", func() {
			client.opts.Cache = cache.New(fmt.Sprintf("/cache/responses-%d", runs.Add(1)), time.Hour)
			_, err := client.Resolve(context.Background(), "https://example.com/cached")
			So(err, ShouldBeNil)
			_, err = client.Resolve(context.Background(), "https://example.com/cached")
			So(err, ShouldBeNil)

			Convey("The second resolve is served from disk", func() {
				So(hits.Load(), ShouldEqual, 1)
			})
		})
	})

	Convey("An unreachable server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		rec := &recorder{}
		client := newTestClient(srv, rec, 1)
		_, err := client.Resolve(context.Background(), "https://example.com/v")

		var netErr *NetworkError
		So(errors.As(err, &netErr), ShouldBeTrue)
		So(netErr.Status, ShouldEqual, 0)
		So(netErr.Cause(), ShouldEqual, "Network Error: The server is unreachable.")
		So(rec.delays, ShouldHaveLength, 1)
	})
}

func TestCause(t *testing.T) {
	Convey("NetworkError.Cause classifies statuses", t, func() {
		cases := map[int]string{
			400: "Bad Request: The input URL might be incorrect.",
			401: "Unauthorized: Please check the API key.",
			503: "Service Unavailable: The server is temporarily overloaded.",
			502: "Unexpected Error: HTTP 502: Bad Gateway",
		}
		for status, want := range cases {
			So((&NetworkError{Status: status}).Cause(), ShouldEqual, want)
		}
	})
}
