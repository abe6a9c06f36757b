// Package filesystem routes every file access of rko through a swappable afero backend,
// so tests can run against memory instead of the real home directory.
package filesystem

import (
	"io"
	"os"
	"sync"

	"github.com/spf13/afero"
)

var (
	mu      sync.RWMutex
	backend = afero.Afero{Fs: afero.NewOsFs()}
)

// API returns the active backend.
func API() afero.Afero {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

func use(fs afero.Fs) {
	mu.Lock()
	backend = afero.Afero{Fs: fs}
	mu.Unlock()
}

// SetOsFs switches to the operating system's filesystem.
func SetOsFs() { use(afero.NewOsFs()) }

// SetMemMapFs switches to a fresh in-memory filesystem.
func SetMemMapFs() { use(afero.NewMemMapFs()) }

// GacheFs lets gache caches store their files on the active backend.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
