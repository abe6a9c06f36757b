package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

type semver [3]int

// parse reads MAJOR.MINOR.PATCH, tolerating a "v" prefix. Pre-release and
// build suffixes are dropped, so 1.2.0-rc1 orders equal to 1.2.0.
func parse(s string) (semver, error) {
	core := strings.TrimPrefix(strings.TrimSpace(s), "v")
	core, _, _ = strings.Cut(core, "+")
	core, _, _ = strings.Cut(core, "-")

	var v semver
	parts := strings.Split(core, ".")
	if len(parts) != len(v) {
		return v, fmt.Errorf("version %q: expected MAJOR.MINOR.PATCH", s)
	}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return v, fmt.Errorf("version %q: bad component %q", s, part)
		}
		v[i] = n
	}
	return v, nil
}

// Compare returns 1 when a is newer than b, -1 when it is older and 0 when both name the same release.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}
	bv, err := parse(b)
	if err != nil {
		return 0, err
	}
	for i := range av {
		if c := cmp.Compare(av[i], bv[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}
