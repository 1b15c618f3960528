// Package service contains the business logic for the fuel tracker API.
// Services validate inputs, resolve derived fields, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/repo"
	"github.com/pkordes/fuel-tracker/backend/internal/validate"
)

// FuelService implements business logic for fuel purchase operations.
type FuelService struct {
	repo repo.FuelPurchaseRepo
}

// NewFuelService constructs a FuelService backed by the provided repo.
func NewFuelService(r repo.FuelPurchaseRepo) *FuelService {
	return &FuelService{repo: r}
}

// Create validates raw fields, derives the unit price when it was omitted,
// and persists the purchase. Nothing is written when validation fails.
func (s *FuelService) Create(ctx context.Context, f validate.Fields) (domain.FuelPurchase, error) {
	in, err := validate.FuelPurchase(f)
	if err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("service.FuelService.Create: %w", err)
	}
	p, err := domain.ResolveFuelPurchase(in)
	if err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("service.FuelService.Create: %w", err)
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("service.FuelService.Create: %w", err)
	}
	return created, nil
}

// List returns every purchase, newest first. The result is never nil.
func (s *FuelService) List(ctx context.Context) ([]domain.FuelPurchase, error) {
	ps, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.FuelService.List: %w", err)
	}
	ps = slices.Clone(ps)
	if ps == nil {
		ps = []domain.FuelPurchase{}
	}
	domain.SortFuelPurchases(ps)
	return ps, nil
}

// ListPage returns one page of the newest-first listing.
func (s *FuelService) ListPage(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.FuelPurchase], error) {
	ps, err := s.List(ctx)
	if err != nil {
		return domain.Page[domain.FuelPurchase]{}, fmt.Errorf("service.FuelService.ListPage: %w", err)
	}
	return domain.Paginate(ps, p), nil
}

// Delete removes a purchase by ID. Returns domain.ErrNotFound if it does not exist.
func (s *FuelService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.FuelService.Delete: %w", err)
	}
	return nil
}
