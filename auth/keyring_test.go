package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestAPIKey(t *testing.T) {
	Convey("Given an empty keyring", t, func() {
		_ = DeleteAPIKey()

		Convey("APIKey is absent", func() {
			So(APIKey().IsAbsent(), ShouldBeTrue)
		})

		Convey("An empty key is rejected", func() {
			So(SetAPIKey(""), ShouldNotBeNil)
		})

		Convey("When a key is stored", func() {
			So(SetAPIKey("secret"), ShouldBeNil)

			Convey("APIKey returns it", func() {
				So(APIKey().MustGet(), ShouldEqual, "secret")
			})

			Convey("And deleting it removes it", func() {
				So(DeleteAPIKey(), ShouldBeNil)
				So(APIKey().IsAbsent(), ShouldBeTrue)
			})
		})
	})
}
