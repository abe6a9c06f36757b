package icon

import (
	"testing"

	"github.com/rko-cli/rko/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Download

		Convey("It renders correctly for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					result := Get(target)
					So(result, ShouldNotBeEmpty)
				})
			}
		})

		Convey("An unknown variant falls back to plain", func() {
			viper.Set(key.IconsVariant, "wingdings")
			So(Get(target), ShouldEqual, "v")
			So(Get(Fail), ShouldEqual, "x")
		})

		Convey("An unregistered icon renders nothing", func() {
			So(Get(Icon(-1)), ShouldBeEmpty)
		})
	})

	Convey("Every icon is registered", t, func() {
		for i := Success; i <= Key; i++ {
			_, ok := icons[i]
			So(ok, ShouldBeTrue)
		}
	})
}
