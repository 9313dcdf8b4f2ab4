package account

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dermai/dermai/internal/platform/apperr"
)

// handleAttempts bounds retries when a generated 5-digit handle collides.
const handleAttempts = 5

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func newHandle() int {
	return 10000 + rand.Intn(90000)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a patient account. The 5-digit handle is random; the
// users table enforces its uniqueness and the insert is retried with a
// fresh handle on collision.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", apperr.ErrValidation)
	}
	if len(password) < 3 {
		return nil, fmt.Errorf("%w: password must be at least 3 characters", apperr.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RolePatient,
	}

	for attempt := 0; attempt < handleAttempts; attempt++ {
		u.UserID = newHandle()
		err = s.repo.Create(ctx, u)
		if err == nil {
			return s.repo.GetByEmail(ctx, email)
		}
		if !errors.Is(err, ErrHandleTaken) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: could not allocate user id", apperr.ErrConflict)
}

// Authenticate checks credentials. Unknown email reports NotFound, a wrong
// password Unauthorized; neither response carries more detail than that.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperr.ErrValidation)
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}
	return u, nil
}

// CompleteProfile overwrites the demographic block for the given email.
func (s *Service) CompleteProfile(ctx context.Context, email, location string, age int) error {
	email = normalizeEmail(email)
	if email == "" || location == "" || age == 0 {
		return fmt.Errorf("%w: all fields are required", apperr.ErrValidation)
	}
	if age < 1 || age > 120 {
		return fmt.Errorf("%w: age must be between 1 and 120", apperr.ErrValidation)
	}

	err := s.repo.UpdateProfile(ctx, email, Profile{Age: age, Location: strings.TrimSpace(location)})
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	}
	return err
}

// SearchPatients runs the doctor-facing directory search. At least one
// criterion is required; an empty result set is a successful search.
func (s *Service) SearchPatients(ctx context.Context, q SearchQuery) ([]*User, error) {
	if q.Empty() {
		return nil, fmt.Errorf("%w: at least one search criterion is required", apperr.ErrValidation)
	}
	return s.repo.Search(ctx, q)
}
