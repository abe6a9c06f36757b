package network

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given the fingerprint setting", t, func() {
		Convey("When disabled, the shared client is returned", func() {
			So(New(false), ShouldEqual, Client)
		})

		Convey("When enabled, a Chrome transport is used", func() {
			client := New(true)
			So(client, ShouldNotEqual, Client)
			_, ok := client.Transport.(*chromeTransport)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestChromeTransportPlainHTTP(t *testing.T) {
	Convey("Given a plain http server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}))
		defer srv.Close()

		Convey("The Chrome transport serves it over the h1 path", func() {
			resp, err := New(true).Get(srv.URL)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, "ok")
		})
	})
}
