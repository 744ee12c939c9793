package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"

	"github.com/spf13/afero"
)

// LocalStore writes files to an afero filesystem and serves them under baseURL
type LocalStore struct {
	fs      afero.Fs
	baseURL string
}

// NewLocalStore creates a store on fsys. Keys become paths relative to its root.
func NewLocalStore(fsys afero.Fs, baseURL string) *LocalStore {
	return &LocalStore{fs: fsys, baseURL: baseURL}
}

// NewDiskStore creates a store rooted at dir on the OS filesystem
func NewDiskStore(dir, baseURL string) (*LocalStore, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root %s: %w", dir, err)
	}
	return NewLocalStore(afero.NewBasePathFs(osFs, dir), baseURL), nil
}

// Save writes r to key, creating parent directories
func (s *LocalStore) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := afero.WriteReader(s.fs, key, r); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *LocalStore) Delete(_ context.Context, key string) error {
	err := s.fs.Remove(key)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// URL returns baseURL joined with key
func (s *LocalStore) URL(key string) string {
	return joinURL(s.baseURL, key)
}

// Exists reports whether key is stored
func (s *LocalStore) Exists(key string) (bool, error) {
	return afero.Exists(s.fs, key)
}

// FileSystem exposes the store for static file serving
func (s *LocalStore) FileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs)
}
