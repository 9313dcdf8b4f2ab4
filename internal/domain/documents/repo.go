package documents

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for document metadata.
type Repository interface {
	Create(ctx context.Context, d *Document) error

	// GetByID returns apperr.ErrNotFound when the row is absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)

	// ListByUser returns the patient's documents, newest first.
	ListByUser(ctx context.Context, userID int) ([]*Document, error)

	// Delete removes the row and returns it, or apperr.ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) (*Document, error)
}
