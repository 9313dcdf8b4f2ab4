package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dermai/dermai/internal/domain/reference"
	"github.com/dermai/dermai/internal/platform/apperr"
)

// listLimit caps how many records a user history query returns.
const listLimit = 50

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new analysis record. The lesion education entry and the
// specialist card are snapshotted server-side from the reference tables; an
// unknown label keeps the raw label with the fallback entry, so a save never
// fails on the label alone.
func (s *Service) Create(ctx context.Context, userID int, image, lesionType string) (*Analysis, error) {
	if userID == 0 || image == "" || lesionType == "" {
		return nil, fmt.Errorf("%w: missing required fields", apperr.ErrValidation)
	}

	info, _ := reference.Lookup(lesionType)
	a := &Analysis{
		UserID:     userID,
		Image:      image,
		LesionType: lesionType,
		LesionInfo: info,
		DoctorInfo: reference.Specialist(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListByUser returns the user's saved analyses, newest first, capped at 50.
func (s *Service) ListByUser(ctx context.Context, userID int) ([]*Analysis, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: userId is required", apperr.ErrValidation)
	}
	return s.repo.ListByUser(ctx, userID, listLimit)
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a record. It succeeds whether or not the record existed;
// the guarantee is non-existence afterward.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
