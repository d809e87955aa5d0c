// Package storage is a path-addressed file store for uploaded media.
// Files live under a root on an afero filesystem and are served at
// PublicPrefix.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"aparecida-web/app/logger"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// PublicPrefix is the URL prefix uploads are served under.
const PublicPrefix = "/uploads/"

var (
	ErrInvalidPath = errors.New("invalid storage path")
	ErrNotFound    = errors.New("file not found")
)

// Store keeps files on an afero filesystem.
type Store struct {
	fs afero.Fs
}

// NewOS stores files below root on the local disk.
func NewOS(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

// NewMemory returns a store that never touches disk.
func NewMemory() *Store {
	return New(afero.NewMemMapFs())
}

func New(fsys afero.Fs) *Store {
	return &Store{fs: fsys}
}

// Clean normalizes p to a relative slash path inside the store. Paths that
// would escape the root are rejected.
func Clean(p string) (string, error) {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	p = strings.TrimPrefix(p, PublicPrefix)
	if p == "" {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", ErrInvalidPath
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

// URL returns the public URL of a stored path.
func URL(p string) string {
	if p == "" {
		return ""
	}
	return PublicPrefix + strings.TrimPrefix(p, "/")
}

// Upload writes r to p, replacing any existing file, and returns the public
// URL.
func (s *Store) Upload(ctx context.Context, p string, r io.Reader) (string, error) {
	name, err := Clean(p)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if dir := path.Dir(name); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	f, err := s.fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(name)
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	logger.Named("storage").Info("file uploaded", zap.String("path", name), zap.Int64("bytes", n))
	return URL(name), nil
}

// Open returns a reader for p. The caller closes it.
func (s *Store) Open(p string) (afero.File, error) {
	name, err := Clean(p)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}
	return f, nil
}

// Delete removes p. Deleting a missing file is not an error.
func (s *Store) Delete(p string) error {
	name, err := Clean(p)
	if err != nil {
		return err
	}
	err = s.fs.Remove(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List returns the stored file paths under prefix in lexical order.
func (s *Store) List(prefix string) ([]string, error) {
	dir, err := Clean(prefix)
	if err != nil {
		return nil, err
	}
	files := []string{}
	err = afero.Walk(s.fs, dir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			files = append(files, strings.TrimPrefix(filepath.ToSlash(p), "/"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// HTTP exposes the store read-only for file serving. Directories and
// invalid paths read as missing.
func (s *Store) HTTP() http.FileSystem {
	return httpFS{s}
}

type httpFS struct{ s *Store }

func (h httpFS) Open(name string) (http.File, error) {
	f, err := h.s.Open(name)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidPath) {
		return nil, fs.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
