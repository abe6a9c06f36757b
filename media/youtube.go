package media

import (
	"net/url"
	"strings"

	"github.com/samber/mo"
)

// videoIDLength is the exact length of a YouTube video id.
const videoIDLength = 11

var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"youtu.be":        true,
}

// ExtractYouTubeID returns the video id carried by a YouTube URL.
// Anything that is not exactly an 11 character id on a recognized host yields None;
// a missed id is acceptable, a guessed one is not.
func ExtractYouTubeID(raw string) mo.Option[string] {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return mo.None[string]()
	}

	host := strings.ToLower(u.Hostname())
	if !youtubeHosts[host] {
		return mo.None[string]()
	}

	var id string
	switch {
	case host == "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
	case strings.HasPrefix(u.Path, "/shorts/"):
		if parts := strings.Split(u.Path, "/"); len(parts) > 2 {
			id = parts[2]
		}
	default:
		id = u.Query().Get("v")
	}

	if !isVideoID(id) {
		return mo.None[string]()
	}
	return mo.Some(id)
}

func isVideoID(id string) bool {
	if len(id) != videoIDLength {
		return false
	}

	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
