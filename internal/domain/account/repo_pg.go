package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dermai/dermai/internal/platform/apperr"
)

// ErrHandleTaken signals a collision on the generated 5-digit handle. The
// service retries with a fresh handle; callers never see this error.
var ErrHandleTaken = errors.New("user handle already taken")

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns a pgx-backed account repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const userCols = `id, user_id, name, email, password_hash, role, age, location, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Profile.Age, &u.Profile.Location, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, user_id, name, email, password_hash, role, age, location)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.UserID, u.Name, u.Email, u.PasswordHash, u.Role, u.Profile.Age, u.Profile.Location)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "user_id") {
				return ErrHandleTaken
			}
			return fmt.Errorf("%w: email already registered", apperr.ErrConflict)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, email))
}

func (r *repoPG) GetByUserID(ctx context.Context, userID int) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE user_id = $1`, userID))
}

func (r *repoPG) UpdateProfile(ctx context.Context, email string, p Profile) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET age = $2, location = $3, updated_at = NOW()
		WHERE email = $1`, email, p.Age, p.Location)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repoPG) Search(ctx context.Context, q SearchQuery) ([]*User, error) {
	where := []string{"role = 'patient'"}
	args := []interface{}{}

	if q.Name != "" {
		args = append(args, "%"+q.Name+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if q.Email != "" {
		args = append(args, "%"+q.Email+"%")
		where = append(where, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if q.UserID != 0 {
		args = append(args, q.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}

	sql := `SELECT ` + userCols + ` FROM users WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
