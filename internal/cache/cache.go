// Package cache provides filesystem-backed caching of resolver responses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/log"
)

// Cache stores one JSON document per key under a directory on the virtual filesystem.
type Cache struct {
	dir string
	ttl time.Duration
}

// New returns a cache rooted at dir whose entries expire after ttl.
func New(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl}
}

// GenerateKey derives a deterministic SHA-256 identifier from a source URL.
func GenerateKey(source string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(source)))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) entry(key string) *gache.Cache[json.RawMessage] {
	return gache.New[json.RawMessage](&gache.Options{
		Path:       filepath.Join(c.dir, key+".json"),
		Lifetime:   c.ttl,
		FileSystem: &filesystem.GacheFs{},
	})
}

// Read decodes the cached document for key into target.
// It reports false when the entry is missing, expired or undecodable.
func (c *Cache) Read(key string, target any) bool {
	raw, expired, err := c.entry(key).Get()
	if err != nil || expired || len(raw) == 0 {
		return false
	}

	if err := json.Unmarshal(raw, target); err != nil {
		log.Warnf("cache: discarding undecodable entry %s: %s", key, err)
		return false
	}

	return true
}

// Write persists data under key.
func (c *Cache) Write(key string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return c.entry(key).Set(raw)
}

// CollectGarbage removes entries older than the cache lifetime.
func (c *Cache) CollectGarbage() error {
	api := filesystem.API()
	return api.Walk(c.dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if time.Since(info.ModTime()) > c.ttl {
			log.Debugf("cache: removing expired %s", path)
			_ = api.Remove(path)
		}
		return nil
	})
}
