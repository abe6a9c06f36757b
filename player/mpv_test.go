package player

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type fakePlayer struct {
	playable map[string]bool
	tried    []string
}

func (f *fakePlayer) Name() string { return "fake" }

func (f *fakePlayer) Play(_ context.Context, target, _ string) error {
	f.tried = append(f.tried, target)
	if f.playable[target] {
		return nil
	}
	return errors.New("cannot open " + target)
}

func TestMpvArgs(t *testing.T) {
	Convey("mpvArgs", t, func() {
		Convey("Ends with the target after a flag terminator", func() {
			args, err := mpvArgs("https://example.com/video.mp4", "Test\nVideo")
			So(err, ShouldBeNil)
			So(args[len(args)-2], ShouldEqual, "--")
			So(args[len(args)-1], ShouldEqual, "https://example.com/video.mp4")
			So(args, ShouldContain, "--force-media-title=Test Video")
		})

		Convey("Rejects flag-looking targets", func() {
			_, err := mpvArgs("--script=evil.lua", "x")
			So(err, ShouldNotBeNil)
		})

		Convey("Rejects unsupported schemes", func() {
			_, err := mpvArgs("file:///etc/passwd", "x")
			So(err, ShouldNotBeNil)
		})

		Convey("Falls back to the display name for empty titles", func() {
			So(sanitizeTitle(" \t "), ShouldNotBeEmpty)
		})
	})
}

func TestPlayChain(t *testing.T) {
	Convey("Given a chain of sources", t, func() {
		chain := []string{"https://a.example/1", "https://b.example/2", "https://c.example/3"}

		Convey("The first playable source wins and order is kept", func() {
			p := &fakePlayer{playable: map[string]bool{chain[1]: true, chain[2]: true}}
			played, err := PlayChain(context.Background(), p, chain, "title")
			So(err, ShouldBeNil)
			So(played, ShouldEqual, chain[1])
			So(p.tried, ShouldResemble, chain[:2])
		})

		Convey("An unplayable chain is exhausted", func() {
			p := &fakePlayer{}
			_, err := PlayChain(context.Background(), p, chain, "title")
			So(errors.Is(err, ErrChainExhausted), ShouldBeTrue)
			So(p.tried, ShouldResemble, chain)
		})

		Convey("A cancelled context stops the walk", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			p := &fakePlayer{}
			_, err := PlayChain(ctx, p, chain, "title")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(p.tried, ShouldBeEmpty)
		})
	})

	Convey("New", t, func() {
		p, err := New("mpv")
		So(err, ShouldBeNil)
		So(p.Name(), ShouldEqual, "mpv")

		_, err = New("winamp")
		So(err, ShouldNotBeNil)
	})
}
