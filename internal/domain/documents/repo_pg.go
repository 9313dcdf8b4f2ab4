package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dermai/dermai/internal/platform/apperr"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns a pgx-backed document repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const docCols = `id, user_id, filename, stored_name, size, uploaded_by, created_at`

func scanDocument(row pgx.Row) (*Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.UserID, &d.Filename, &d.StoredName, &d.Size, &d.UploadedBy, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Document) error {
	d.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patient_documents (id, user_id, filename, stored_name, size, uploaded_by)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		d.ID, d.UserID, d.Filename, d.StoredName, d.Size, d.UploadedBy).Scan(&d.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	return scanDocument(r.pool.QueryRow(ctx,
		`SELECT `+docCols+` FROM patient_documents WHERE id = $1`, id))
}

func (r *repoPG) ListByUser(ctx context.Context, userID int) ([]*Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+docCols+` FROM patient_documents
		WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var items []*Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) (*Document, error) {
	return scanDocument(r.pool.QueryRow(ctx,
		`DELETE FROM patient_documents WHERE id = $1 RETURNING `+docCols, id))
}
