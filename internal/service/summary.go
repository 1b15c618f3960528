package service

import (
	"context"
	"fmt"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/repo"
)

// SummaryService produces per-vehicle roll-ups. It keeps no cache; every call
// reads the current records and folds them again.
type SummaryService struct {
	fuel    repo.FuelPurchaseRepo
	mileage repo.MileageSessionRepo
}

// NewSummaryService constructs a SummaryService backed by the provided repos.
func NewSummaryService(fuel repo.FuelPurchaseRepo, mileage repo.MileageSessionRepo) *SummaryService {
	return &SummaryService{fuel: fuel, mileage: mileage}
}

// Summarize aggregates the purchases and closed sessions matching q.
func (s *SummaryService) Summarize(ctx context.Context, q domain.SummaryQuery) (domain.Summary, error) {
	purchases, err := s.fuel.ListBetween(ctx, q.Start, q.End, q.Vehicle)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.SummaryService.Summarize: %w", err)
	}
	sessions, err := s.mileage.ListBetween(ctx, q.Start, q.End, q.Vehicle)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.SummaryService.Summarize: %w", err)
	}
	return domain.Summarize(q, purchases, sessions), nil
}
