package analysis

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for analysis records. Records are
// write-once: there is no update operation.
type Repository interface {
	Create(ctx context.Context, a *Analysis) error

	// GetByID returns apperr.ErrNotFound when the record is absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Analysis, error)

	// ListByUser returns at most limit records, newest first.
	ListByUser(ctx context.Context, userID, limit int) ([]*Analysis, error)

	// Delete removes the record if present. Deleting a missing record is
	// not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
