package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore stores blobs as files under a single directory. Blob names map
// directly to file names, so callers must supply names that are already
// sanitized (the documents service does).
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns a DiskStore.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) path(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	// Reject anything that could escape the upload directory.
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

func (s *DiskStore) Put(_ context.Context, name string, content io.Reader) (int64, error) {
	p, err := s.path(name)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(p)
	if err != nil {
		return 0, fmt.Errorf("creating blob file: %w", err)
	}

	n, err := io.Copy(f, content)
	if err != nil {
		f.Close()
		os.Remove(p)
		return 0, fmt.Errorf("writing blob file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return 0, fmt.Errorf("closing blob file: %w", err)
	}
	return n, nil
}

func (s *DiskStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("opening blob file: %w", err)
	}
	return f, nil
}

func (s *DiskStore) Delete(_ context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("removing blob file: %w", err)
	}
	return nil
}

// URL returns the path the server mounts for local uploads.
func (s *DiskStore) URL(_ context.Context, name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	return "/uploads/" + name, nil
}
