package constant

// Resolver defaults. The remote service is a black box that maps a source
// media URL to a JSON description of downloadable items.
const (
	ResolverBaseURL = "https://vkrdownloader.xyz/server"
	ResolverAPIKey  = "vkrdownloader"

	// ProxyDownloadPath streams raw media bytes for ?vkr=<url>[&q=<quality>].
	ProxyDownloadPath = "dl.php"

	// ProxyRedirectPath redirects to a playable stream for ?vkr=<url>.
	ProxyRedirectPath = "redirect.php"

	// YouTubeThumbnailFormat is formatted with a video id.
	YouTubeThumbnailFormat = "https://i.ytimg.com/vi/%s/hqdefault.jpg"

	// YouTubeShortLinkFormat is formatted with a video id.
	YouTubeShortLinkFormat = "https://youtu.be/%s"
)
