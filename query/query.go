// Package query remembers the video URLs a user resolved and suggests them while typing.
package query

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Limit is the number of URLs kept. The least used ones are forgotten first.
const Limit = 200

type record struct {
	URL      string    `json:"url"`
	Uses     int       `json:"uses"`
	LastUsed time.Time `json:"last_used"`
}

type registry = map[string]*record

var (
	mu    sync.Mutex
	store = sync.OnceValue(func() *gache.Cache[registry] {
		return gache.New[registry](&gache.Options{
			Path:       where.Queries(),
			FileSystem: &filesystem.GacheFs{},
		})
	})
	now = time.Now
)

func load() registry {
	remembered, expired, err := store().Get()
	if err != nil || expired || remembered == nil {
		return make(registry)
	}
	return remembered
}

// ranked orders records by use count, then by recency.
func ranked(records []*record) []*record {
	slices.SortFunc(records, func(a, b *record) int {
		if c := cmp.Compare(b.Uses, a.Uses); c != 0 {
			return c
		}
		if c := b.LastUsed.Compare(a.LastUsed); c != 0 {
			return c
		}
		return strings.Compare(a.URL, b.URL)
	})
	return records
}

// Remember records a resolved URL, adding weight to its use count.
func Remember(rawURL string, weight int) error {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	remembered := load()
	r, ok := remembered[u]
	if !ok {
		r = &record{URL: u}
		remembered[u] = r
	}
	r.Uses += weight
	r.LastUsed = now()

	if len(remembered) > Limit {
		for _, stale := range ranked(lo.Values(remembered))[Limit:] {
			delete(remembered, stale.URL)
		}
	}
	return store().Set(remembered)
}

// SuggestMany returns remembered URLs fuzzily matching the partial input, best first.
// Matching ignores case; video ids keep theirs in the result.
func SuggestMany(partial string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}
	partial = strings.TrimSpace(partial)

	mu.Lock()
	remembered := load()
	mu.Unlock()

	matches := lo.Filter(lo.Values(remembered), func(r *record, _ int) bool {
		return fuzzy.MatchFold(partial, r.URL)
	})
	return lo.Map(ranked(matches), func(r *record, _ int) string { return r.URL })
}

// Suggest returns the best suggestion for the partial input.
func Suggest(partial string) mo.Option[string] {
	suggestions := SuggestMany(partial)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}
