package history

import (
	"context"
	"sync"

	"github.com/metafates/gache"
	"github.com/rko-cli/rko/filesystem"
)

// JSON stores the whole log as one JSON list in a single file.
// Each append reads, extends and rewrites the list; concurrent processes race and the last writer wins.
type JSON struct {
	mu     sync.Mutex
	cacher *gache.Cache[[]Attempt]
}

// NewJSON returns a store backed by the file at path.
func NewJSON(path string) *JSON {
	return &JSON{
		cacher: gache.New[[]Attempt](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Append implements Store.
func (s *JSON) Append(_ context.Context, attempt Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.list()
	if err != nil {
		return err
	}

	return s.cacher.Set(append(saved, attempt))
}

// List implements Store.
func (s *JSON) List(_ context.Context) ([]Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list()
}

func (s *JSON) list() ([]Attempt, error) {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return []Attempt{}, nil
	}
	return cached, nil
}

// Clear implements Store.
func (s *JSON) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cacher.Set([]Attempt{})
}

// Close implements Store.
func (s *JSON) Close() error {
	return nil
}
