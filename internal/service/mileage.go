package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/repo"
	"github.com/pkordes/fuel-tracker/backend/internal/validate"
)

// MileageService implements business logic for mileage session operations.
type MileageService struct {
	repo repo.MileageSessionRepo
}

// NewMileageService constructs a MileageService backed by the provided repo.
func NewMileageService(r repo.MileageSessionRepo) *MileageService {
	return &MileageService{repo: r}
}

// Create validates and persists a session, open or already closed.
func (s *MileageService) Create(ctx context.Context, f validate.Fields) (domain.MileageSession, error) {
	in, err := validate.MileageSession(f)
	if err != nil {
		return domain.MileageSession{}, fmt.Errorf("service.MileageService.Create: %w", err)
	}
	session, err := domain.ResolveMileageSession(in)
	if err != nil {
		return domain.MileageSession{}, fmt.Errorf("service.MileageService.Create: %w", err)
	}
	created, err := s.repo.Create(ctx, session)
	if err != nil {
		return domain.MileageSession{}, fmt.Errorf("service.MileageService.Create: %w", err)
	}
	return created, nil
}

// List returns every session, newest first. The result is never nil.
func (s *MileageService) List(ctx context.Context) ([]domain.MileageSession, error) {
	ss, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.MileageService.List: %w", err)
	}
	ss = slices.Clone(ss)
	if ss == nil {
		ss = []domain.MileageSession{}
	}
	domain.SortMileageSessions(ss)
	return ss, nil
}

// ListPage returns one page of the newest-first listing.
func (s *MileageService) ListPage(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.MileageSession], error) {
	ss, err := s.List(ctx)
	if err != nil {
		return domain.Page[domain.MileageSession]{}, fmt.Errorf("service.MileageService.ListPage: %w", err)
	}
	return domain.Paginate(ss, p), nil
}

// Close records the end reading of session id.
//
// The stored session is read first so the end ≥ start rule is checked before
// anything is written. Closing an already closed session replaces its reading.
func (s *MileageService) Close(ctx context.Context, id int64, f validate.Fields) (domain.MileageSession, error) {
	end, err := validate.EndMileage(f)
	if err != nil {
		return domain.MileageSession{}, fmt.Errorf("service.MileageService.Close: %w", err)
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.MileageSession{}, fmt.Errorf("service.MileageService.Close: %w", err)
	}
	closed, err := current.Close(end)
	if err != nil {
		return domain.MileageSession{}, fmt.Errorf("service.MileageService.Close: %w", err)
	}
	updated, err := s.repo.UpdateEndMileage(ctx, id, closed.EndMileage.Decimal)
	if err != nil {
		return domain.MileageSession{}, fmt.Errorf("service.MileageService.Close: %w", err)
	}
	return updated, nil
}

// Delete removes a session by ID. Returns domain.ErrNotFound if it does not exist.
func (s *MileageService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.MileageService.Delete: %w", err)
	}
	return nil
}
