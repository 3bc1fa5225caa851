// Package storage writes and reads generated cell assets.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Asset file name parts: <Prefix>-<variant key>.<ext>
const (
	Prefix = "prismatic-cell"
	ExtSVG = "svg"
	ExtPNG = "png"
)

// DefaultDir is the asset directory relative to the project root.
const DefaultDir = "assets"

// Store persists generated assets inside a single directory.
type Store struct {
	baseDir string
	mu      sync.Mutex
}

// New creates a new Store instance rooted at dir.
func New(dir string) *Store {
	return &Store{baseDir: dir}
}

// Dir returns the asset directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// EnsureDirs creates the asset directory if it does not exist yet.
func (s *Store) EnsureDirs() error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "create asset directory"), "path", s.baseDir)
	}
	return nil
}

// AssetName returns the file name for a variant key.
func AssetName(key, ext string) string {
	return fmt.Sprintf("%s-%s.%s", Prefix, key, ext)
}

// AssetPath returns the full path of a variant's asset.
func (s *Store) AssetPath(key, ext string) string {
	return filepath.Join(s.baseDir, AssetName(key, ext))
}

// WriteAsset replaces the asset for key with data and returns its path. The
// content goes to a temporary file first and is renamed into place.
func (s *Store) WriteAsset(key, ext string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.AssetPath(key, ext)

	f, err := os.CreateTemp(s.baseDir, "."+AssetName(key, ext)+".*.tmp")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "create temp asset"), "path", path)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", zerr.With(zerr.Wrap(err, "write asset"), "path", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", zerr.With(zerr.Wrap(err, "close asset"), "path", path)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return "", zerr.With(zerr.Wrap(err, "chmod asset"), "path", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", zerr.With(zerr.Wrap(err, "rename asset"), "path", path)
	}
	return path, nil
}

// ReadAsset returns the stored content for key.
func (s *Store) ReadAsset(key, ext string) ([]byte, error) {
	path := s.AssetPath(key, ext)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "read asset"), "path", path)
	}
	return data, nil
}

// Exists reports whether the asset for key is present.
func (s *Store) Exists(key, ext string) (bool, error) {
	_, err := os.Stat(s.AssetPath(key, ext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "stat asset"), "path", s.AssetPath(key, ext))
}

// Missing returns the file names of every key whose asset is absent, in the
// order the keys were given.
func (s *Store) Missing(keys []string, ext string) ([]string, error) {
	var missing []string
	for _, key := range keys {
		ok, err := s.Exists(key, ext)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, AssetName(key, ext))
		}
	}
	return missing, nil
}

// Digest is the hex xxhash64 of data, used for ETags and change detection.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
