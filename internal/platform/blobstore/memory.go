package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore is a thread-safe in-memory Store for tests and development.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns a ready-to-use MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, name string, content io.Reader) (int64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return 0, fmt.Errorf("reading content: %w", err)
	}

	s.mu.Lock()
	s.blobs[name] = data
	s.mu.Unlock()

	return int64(len(data)), nil
}

func (s *MemoryStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	s.mu.RLock()
	data, ok := s.blobs[name]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[name]; !ok {
		return ErrNotFound
	}
	delete(s.blobs, name)
	return nil
}

func (s *MemoryStore) URL(_ context.Context, name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	return "/uploads/" + name, nil
}

// Len reports the number of stored blobs. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
