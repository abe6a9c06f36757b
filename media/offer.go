package media

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/resolver"
	"github.com/samber/lo"
)

// ErrNoOffers is returned when a resolved item yields nothing downloadable.
// In practice the resolver answers this way when it is rate limiting.
var ErrNoOffers = errors.New("server down due to too many requests, please try again later")

const (
	maxFilenameStem = 50
	defaultStem     = "Untitled"
	forbiddenChars  = `<>:"/\|?*`
)

// Offer is one downloadable quality or format.
// URL is always absolute.
type Offer struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Color    string `json:"color"`
	Quality  string `json:"quality,omitempty"`
	Format   string `json:"format,omitempty"`
	Size     string `json:"size,omitempty"`
}

// Quality is a fixed YouTube offer served through the resolver proxy.
type Quality struct {
	Key   string
	Label string
	Color string
}

// Audio reports whether the quality yields an audio-only file.
func (q Quality) Audio() bool {
	return q.Key == "mp3"
}

// Qualities lists the proxy offers for YouTube videos in display order.
var Qualities = []Quality{
	{Key: "mp3", Label: "🎵 Audio MP3", Color: "#ff6b6b"},
	{Key: "360", Label: "📱 360p Video", Color: "#4ecdc4"},
	{Key: "720", Label: "💻 720p HD", Color: "#45b7d1"},
	{Key: "1080", Label: "📺 1080p Full HD", Color: "#96ceb4"},
}

var (
	greenFormats = []string{"17", "18", "22"}
	blueFormats  = []string{"139", "140", "141", "249", "250", "251", "599", "600"}
)

// Format colors.
const (
	ColorGreen   = "green"
	ColorBlue    = "#3800ff"
	ColorDefault = "#9e0cf2"
)

// Offers returns the default interpreter's offers for src.
func Offers(src *Source, resp *resolver.Response) ([]Offer, error) {
	return Default.Offers(src, resp)
}

// Offers builds the ordered offers for src: YouTube qualities first, then one per
// resolver download entry with a usable URL.
func (in *Interpreter) Offers(src *Source, resp *resolver.Response) ([]Offer, error) {
	if src == nil || resp == nil || resp.Data == nil {
		return nil, ErrNoData
	}

	stem := SanitizeStem(PlainText(resp.Data.Description.String()))
	stamp := in.clock().UnixMilli()

	var offers []Offer
	if src.Kind == KindYouTube {
		for _, q := range Qualities {
			ext := "mp4"
			if q.Audio() {
				ext = "mp3"
			}
			offers = append(offers, Offer{
				ID:       "yt-" + q.Key,
				Label:    q.Label,
				URL:      in.proxy(constant.ProxyDownloadPath, src.Origin, q.Key),
				Filename: fmt.Sprintf("%s_%s_%d.%s", stem, q.Key, stamp, ext),
				Color:    q.Color,
				Quality:  q.Key,
			})
		}
	}

	for i, d := range resp.Data.Downloads {
		abs, ok := in.absolute(d.URL.String())
		if !ok {
			continue
		}

		format := PlainText(d.FormatID.String())
		size := PlainText(d.Size.String())
		suffix := stripForbidden(format + "_" + size)

		offers = append(offers, Offer{
			ID:       fmt.Sprintf("dl-%d", i),
			Label:    strings.TrimSpace(format + " - " + size),
			URL:      abs,
			Filename: fmt.Sprintf("%s_%s_%d.mp4", stem, suffix, stamp),
			Color:    FormatColor(abs),
			Format:   format,
			Size:     size,
		})
	}

	if len(offers) == 0 {
		return nil, ErrNoOffers
	}
	return offers, nil
}

// FormatColor maps the itag query parameter of a download URL to its display color.
func FormatColor(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ColorDefault
	}

	itag := u.Query().Get("itag")
	switch {
	case lo.Contains(greenFormats, itag):
		return ColorGreen
	case lo.Contains(blueFormats, itag):
		return ColorBlue
	default:
		return ColorDefault
	}
}

// SanitizeStem strips characters forbidden in filenames and truncates to 50 characters.
// An empty result becomes "Untitled".
func SanitizeStem(description string) string {
	stem := stripForbidden(description)
	stem = strings.Join(strings.Fields(stem), " ")

	if utf8.RuneCountInString(stem) > maxFilenameStem {
		stem = string([]rune(stem)[:maxFilenameStem])
	}

	stem = strings.TrimSpace(stem)
	if stem == "" {
		return defaultStem
	}
	return stem
}

func stripForbidden(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenChars, r) || r < 0x20 {
			return -1
		}
		return r
	}, s)
}
