package account

import "context"

// Repository is the persistence contract for accounts.
type Repository interface {
	// Create inserts a new user. A duplicate email yields
	// apperr.ErrConflict; a collision on the 5-digit handle yields
	// ErrHandleTaken so the service can regenerate and retry.
	Create(ctx context.Context, u *User) error

	// GetByEmail returns the user with the given (lowercased) email, or
	// apperr.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUserID returns the user with the given 5-digit handle, or
	// apperr.ErrNotFound.
	GetByUserID(ctx context.Context, userID int) (*User, error)

	// UpdateProfile overwrites the profile block of the user with the
	// given email. apperr.ErrNotFound when no such user exists.
	UpdateProfile(ctx context.Context, email string, p Profile) error

	// Search returns patient accounts matching the query, newest first.
	Search(ctx context.Context, q SearchQuery) ([]*User, error)
}
