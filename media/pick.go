package media

import (
	"fmt"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// Match returns the offer whose id, quality, format or label equals want, ignoring case.
// Without an exact match the error names the closest label.
func Match(offers []Offer, want string) (Offer, error) {
	want = strings.ToLower(strings.TrimSpace(want))
	if len(offers) == 0 {
		return Offer{}, ErrNoOffers
	}

	for _, offer := range offers {
		for _, candidate := range offerKeys(offer) {
			if candidate == want {
				return offer, nil
			}
		}
	}

	closest := lo.MinBy(offers, func(a, b Offer) bool {
		return distance(want, a) < distance(want, b)
	})

	return Offer{}, fmt.Errorf("no offer matches %q, did you mean %q?", want, closest.Label)
}

func offerKeys(offer Offer) []string {
	keys := []string{offer.ID, offer.Quality, offer.Format, offer.Label}
	return lo.FilterMap(keys, func(k string, _ int) (string, bool) {
		k = strings.ToLower(strings.TrimSpace(k))
		return k, k != ""
	})
}

func distance(want string, offer Offer) int {
	return lo.Min(lo.Map(offerKeys(offer), func(k string, _ int) int {
		return levenshtein.Distance(want, k)
	}))
}
