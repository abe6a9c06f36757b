// Package media turns resolver documents into display models, fallback chains and download offers.
package media

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/resolver"
	"github.com/samber/mo"
)

// ErrNoData is returned for a resolver document without a data payload.
// It is terminal for the request and never retried.
var ErrNoData = errors.New("unable to retrieve the download link, please check the URL")

// Kind distinguishes YouTube media, which gets fixed quality offers, from everything else.
type Kind string

const (
	KindYouTube Kind = "youtube"
	KindGeneric Kind = "generic"
)

// goodDownloadIndex is the resolver download entry that most often plays directly.
const goodDownloadIndex = 5

// Source is the display model of a resolved media item.
// Text fields are sanitized; CandidateURLs is the ordered playback fallback chain.
type Source struct {
	Kind          Kind     `json:"kind"`
	VideoID       string   `json:"video_id,omitempty"`
	Input         string   `json:"input"`
	Origin        string   `json:"origin,omitempty"`
	ThumbnailURL  string   `json:"thumbnail_url,omitempty"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	SizeLabel     string   `json:"size_label,omitempty"`
	Author        string   `json:"author"`
	Platform      string   `json:"platform"`
	CandidateURLs []string `json:"candidate_urls"`
}

// YouTubeID returns the video id when the item is a YouTube video.
func (s *Source) YouTubeID() mo.Option[string] {
	if s.VideoID == "" {
		return mo.None[string]()
	}
	return mo.Some(s.VideoID)
}

// Interpreter derives display models and offers for one resolver deployment.
type Interpreter struct {
	base  *url.URL
	clock func() time.Time
}

// NewInterpreter returns an interpreter whose proxy endpoints hang off base.
func NewInterpreter(base string) (*Interpreter, error) {
	if base == "" {
		base = constant.ResolverBaseURL
	}

	u, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("resolver base: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("resolver base %q is not an absolute URL", base)
	}

	return &Interpreter{base: u, clock: time.Now}, nil
}

// Default is the interpreter for the built-in resolver.
var Default = func() *Interpreter {
	in, err := NewInterpreter(constant.ResolverBaseURL)
	if err != nil {
		panic(err)
	}
	return in
}()

// Interpret derives the display model with the default interpreter.
func Interpret(resp *resolver.Response, inputURL string) (*Source, error) {
	return Default.Interpret(resp, inputURL)
}

// Interpret derives the display model of resp, resolved from inputURL.
// It never mutates resp and returns ErrNoData when there is nothing to show.
func (in *Interpreter) Interpret(resp *resolver.Response, inputURL string) (*Source, error) {
	if resp == nil || resp.Data == nil {
		return nil, ErrNoData
	}

	data := resp.Data
	inputURL = strings.TrimSpace(inputURL)
	origin := data.Source.String()
	if origin == "" {
		origin = inputURL
	}

	src := &Source{
		Kind:         KindGeneric,
		Input:        inputURL,
		Origin:       origin,
		ThumbnailURL: data.Thumbnail.String(),
		Title:        PlainText(Sanitize(data.Title.String())),
		Description:  Sanitize(data.Description.String()),
		SizeLabel:    PlainText(Sanitize(data.Size.String())),
		Platform:     DetectPlatform(origin),
	}
	src.Author = ExtractAuthor(data.Author.String(), origin)

	if id, ok := ExtractYouTubeID(origin).Get(); ok {
		src.Kind = KindYouTube
		src.VideoID = id
		src.ThumbnailURL = fmt.Sprintf(constant.YouTubeThumbnailFormat, id)
	}

	src.CandidateURLs = in.chain(src, data.Downloads)
	return src, nil
}

// chain builds the ordered playback fallback chain.
func (in *Interpreter) chain(src *Source, downloads []resolver.Download) []string {
	var raw []string

	if src.Kind == KindYouTube {
		raw = append(raw,
			in.proxy(constant.ProxyRedirectPath, fmt.Sprintf(constant.YouTubeShortLinkFormat, src.VideoID), ""),
			in.proxy(constant.ProxyDownloadPath, src.Input, ""),
		)
		for _, d := range downloads {
			raw = append(raw, d.URL.String())
		}
	} else {
		if len(downloads) > goodDownloadIndex {
			raw = append(raw, downloads[goodDownloadIndex].URL.String())
		}
		for _, d := range downloads {
			raw = append(raw, d.URL.String())
		}
		raw = append(raw, in.proxy(constant.ProxyDownloadPath, src.Input, ""))
	}

	seen := make(map[string]bool, len(raw))
	chain := make([]string, 0, len(raw))
	for _, candidate := range raw {
		abs, ok := in.absolute(candidate)
		if !ok || seen[abs] {
			continue
		}
		seen[abs] = true
		chain = append(chain, abs)
	}
	return chain
}

// proxy returns a resolver-hosted endpoint URL for target.
func (in *Interpreter) proxy(path, target, quality string) string {
	query := url.Values{}
	if quality != "" {
		query.Set("q", quality)
	}
	query.Set("vkr", target)

	u := in.base.ResolveReference(&url.URL{Path: path})
	u.RawQuery = query.Encode()
	return u.String()
}

// absolute resolves raw against the resolver base.
// Only http(s) URLs with a host are accepted.
func (in *Interpreter) absolute(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	u := in.base.ResolveReference(ref)
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return u.String(), true
}
