package cmd

import (
	"io/fs"
	"os"

	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/where"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// location is a file or directory rko keeps on disk.
type location struct {
	name      string
	about     string
	path      func() string
	clearable bool
}

// locations backs both "rko where" and "rko clear".
var locations = []location{
	{"config", "configuration file directory", where.Config, false},
	{"logs", "daily log files", where.Logs, true},
	{"downloads", "default download directory", where.Downloads, false},
	{"cache", "every cached artifact", where.Cache, true},
	{"responses", "cached resolver responses", where.Responses, true},
	{"queries", "recently resolved URLs", where.Queries, true},
	{"history", "download history (json backend)", where.History, true},
	{"history-db", "download history (sqlite backend)", where.HistoryDB, true},
	{"temp", "partial downloads of interrupted runs", where.Temp, true},
}

func locationNames(onlyClearable bool) []string {
	return lo.FilterMap(locations, func(l location, _ int) (string, bool) {
		return l.name, l.clearable || !onlyClearable
	})
}

func findLocation(name string) (location, bool) {
	return lo.Find(locations, func(l location) bool { return l.name == name })
}

// footprint sums the size of every regular file under path. Missing paths weigh nothing.
func footprint(path string) int64 {
	var total int64
	_ = afero.Walk(filesystem.API(), path, func(_ string, info fs.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total
}
