// Package blobstore provides file storage for uploaded patient documents.
// It defines the Store interface plus three backends: local disk (the
// default), in-memory (tests and development), and S3.
package blobstore

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound is returned when the named blob does not exist.
	ErrNotFound = errors.New("blob not found")
	// ErrEmptyName is returned when a blob name is blank.
	ErrEmptyName = errors.New("blob name is required")
)

// Store is the contract for document storage backends. Names are opaque
// keys chosen by the caller; the store never renames.
type Store interface {
	// Put writes the content under the given name, replacing any
	// existing blob with that name. It returns the number of bytes
	// written.
	Put(ctx context.Context, name string, content io.Reader) (int64, error)

	// Open returns a reader over the named blob's content. The caller
	// must close it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes the named blob. Deleting a missing blob returns
	// ErrNotFound.
	Delete(ctx context.Context, name string) error

	// URL returns the public path or presigned URL a client should use
	// to fetch the named blob.
	URL(ctx context.Context, name string) (string, error)
}
