package media

import (
	"net/url"
	"regexp"
	"strings"
)

// UnknownAuthor is recorded when no author can be derived.
const UnknownAuthor = "Unknown"

var platforms = []struct {
	name  string
	hosts []string
}{
	{"YouTube", []string{"youtube.com", "youtu.be"}},
	{"Instagram", []string{"instagram.com"}},
	{"TikTok", []string{"tiktok.com"}},
	{"Facebook", []string{"facebook.com", "fb.watch"}},
	{"Twitter", []string{"twitter.com", "x.com"}},
	{"Vimeo", []string{"vimeo.com"}},
	{"Dailymotion", []string{"dailymotion.com", "dai.ly"}},
	{"Reddit", []string{"reddit.com", "redd.it"}},
	{"Twitch", []string{"twitch.tv"}},
	{"SoundCloud", []string{"soundcloud.com"}},
	{"Pinterest", []string{"pinterest.com", "pin.it"}},
}

// DetectPlatform names the site a media URL belongs to, or "Other".
func DetectPlatform(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "Other"
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, p := range platforms {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p.name
			}
		}
	}
	return "Other"
}

var authorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:twitter\.com|x\.com)/([^/?#]+)/status`),
	regexp.MustCompile(`(?i)instagram\.com/(?:stories/)?([^/?#]+)`),
	regexp.MustCompile(`(?i)tiktok\.com/@([^/?#]+)`),
	regexp.MustCompile(`(?i)youtube\.com/(?:@|c/|user/)([^/?#]+)`),
	regexp.MustCompile(`(?i)reddit\.com/(?:u|user)/([^/?#]+)`),
	regexp.MustCompile(`(?i)vimeo\.com/([^/?#0-9][^/?#]*)`),
}

// reservedSegments are first path segments that never name an author.
var reservedSegments = map[string]bool{
	"p": true, "reel": true, "reels": true, "watch": true, "shorts": true,
	"video": true, "videos": true, "status": true, "i": true, "tv": true,
}

// ExtractAuthor prefers the author reported by the resolver, then a handle found in the URL.
func ExtractAuthor(reported, rawURL string) string {
	if author := PlainText(reported); author != "" {
		return author
	}

	for _, re := range authorPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) > 1 {
			handle := strings.Trim(m[1], "@")
			if handle != "" && !reservedSegments[strings.ToLower(handle)] {
				return handle
			}
		}
	}

	return UnknownAuthor
}
