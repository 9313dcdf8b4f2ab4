package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dermai/dermai/internal/platform/apperr"
	"github.com/dermai/dermai/internal/platform/blobstore"
)

// MaxDocumentSize caps uploaded PDFs at 10 MiB.
const MaxDocumentSize = 10 << 20

// now is swappable in tests so stored names are deterministic.
var now = time.Now

type Service struct {
	repo  Repository
	blobs blobstore.Store
	log   zerolog.Logger
}

func NewService(repo Repository, blobs blobstore.Store, log zerolog.Logger) *Service {
	return &Service{repo: repo, blobs: blobs, log: log}
}

func storedName(filename string) string {
	return fmt.Sprintf("%d-%s", now().UnixMilli(), filename)
}

// sanitizeFilename strips any path component from a client-supplied name.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return filepath.Base(name)
}

// Upload stores a patient PDF. The blob write completes before the metadata
// row is inserted, so a document is never visible without durable content.
// If the row insert fails the orphan blob is removed best-effort.
func (s *Service) Upload(ctx context.Context, userID int, filename string, size int64, content io.Reader, uploadedBy int) (*Document, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: userId is required", apperr.ErrValidation)
	}
	filename = sanitizeFilename(filename)
	if filename == "" || filename == "." || filename == "/" {
		return nil, fmt.Errorf("%w: filename is required", apperr.ErrValidation)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, fmt.Errorf("%w: only PDF files are allowed", apperr.ErrValidation)
	}
	if size > MaxDocumentSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", apperr.ErrValidation, MaxDocumentSize)
	}

	name := storedName(filename)
	written, err := s.blobs.Put(ctx, name, io.LimitReader(content, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: storing file: %v", apperr.ErrStorage, err)
	}
	if written > MaxDocumentSize {
		if err := s.blobs.Delete(ctx, name); err != nil {
			s.log.Warn().Err(err).Str("blob", name).Msg("removing oversized blob failed")
		}
		return nil, fmt.Errorf("%w: file exceeds %d bytes", apperr.ErrValidation, MaxDocumentSize)
	}

	d := &Document{
		UserID:     userID,
		Filename:   filename,
		StoredName: name,
		Size:       written,
		UploadedBy: uploadedBy,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		if delErr := s.blobs.Delete(ctx, name); delErr != nil {
			s.log.Warn().Err(delErr).Str("blob", name).Msg("removing orphan blob failed")
		}
		return nil, err
	}

	url, err := s.blobs.URL(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving file url: %v", apperr.ErrStorage, err)
	}
	d.URL = url
	return d, nil
}

// ListByUser returns the patient's documents, newest first, with URLs
// resolved.
func (s *Service) ListByUser(ctx context.Context, userID int) ([]*Document, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: userId is required", apperr.ErrValidation)
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, d := range items {
		url, err := s.blobs.URL(ctx, d.StoredName)
		if err != nil {
			return nil, fmt.Errorf("%w: resolving file url: %v", apperr.ErrStorage, err)
		}
		d.URL = url
	}
	return items, nil
}

// Delete removes the metadata row first, then the blob. The row removal is
// authoritative: a blob failure afterwards is logged and reported as partial
// but never reverses the deletion.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (partial bool, err error) {
	d, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, fmt.Errorf("%w: document not found", apperr.ErrNotFound)
		}
		return false, err
	}

	if err := s.blobs.Delete(ctx, d.StoredName); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		s.log.Error().Err(err).Str("blob", d.StoredName).Str("document", id.String()).
			Msg("document row deleted but blob removal failed")
		return true, nil
	}
	return false, nil
}

// Open streams a stored blob by name for the /uploads download route.
func (s *Service) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.blobs.Open(ctx, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: file not found", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: opening file: %v", apperr.ErrStorage, err)
	}
	return rc, nil
}
