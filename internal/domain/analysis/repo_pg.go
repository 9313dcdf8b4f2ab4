package analysis

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

// NewRepoPG returns a pgx-backed analysis repository. The snapshot columns
// are jsonb; pgx encodes the snapshot structs directly.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const analysisCols = `id, user_id, image, lesion_type, lesion_info, doctor_info, created_at`

func scanAnalysis(row pgx.Row) (*Analysis, error) {
	var a Analysis
	err := row.Scan(&a.ID, &a.UserID, &a.Image, &a.LesionType, &a.LesionInfo, &a.DoctorInfo, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("scanning analysis: %w", err)
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Analysis) error {
	a.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO analyses (id, user_id, image, lesion_type, lesion_info, doctor_info)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		a.ID, a.UserID, a.Image, a.LesionType, a.LesionInfo, a.DoctorInfo).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting analysis: %w", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	return scanAnalysis(r.pool.QueryRow(ctx,
		`SELECT `+analysisCols+` FROM analyses WHERE id = $1`, id))
}

func (r *repoPG) ListByUser(ctx context.Context, userID, limit int) ([]*Analysis, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+analysisCols+` FROM analyses
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var items []*Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	return nil
}
