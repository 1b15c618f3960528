package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/repo"
)

// Spreadsheet layouts. Keys match the JSON field names of the listings.
var (
	fuelSheetColumns = []domain.Column{
		{Header: "Date", Key: "trip_date", Width: 12},
		{Header: "Vehicle", Key: "vehicle", Width: 18},
		{Header: "Odometer (km)", Key: "odometer_km", Width: 14},
		{Header: "Quantity (L)", Key: "fuel_quantity_l", Width: 14},
		{Header: "Total", Key: "price_total", Width: 12},
		{Header: "Price/L", Key: "price_per_liter", Width: 12},
		{Header: "GST Paid", Key: "gst_paid", Width: 12},
		{Header: "Start Mileage", Key: "start_mileage", Width: 14},
	}
	mileageSheetColumns = []domain.Column{
		{Header: "Date", Key: "mileage_date", Width: 12},
		{Header: "Vehicle", Key: "vehicle", Width: 18},
		{Header: "Start (km)", Key: "start_mileage", Width: 14},
		{Header: "End (km)", Key: "end_mileage", Width: 14},
		{Header: "Total (km)", Key: "total_km", Width: 12},
	}
)

// ExportService flattens the record tables into spreadsheet-ready sheets.
type ExportService struct {
	fuel    repo.FuelPurchaseRepo
	mileage repo.MileageSessionRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(fuel repo.FuelPurchaseRepo, mileage repo.MileageSessionRepo) *ExportService {
	return &ExportService{fuel: fuel, mileage: mileage}
}

// FuelPurchaseSheet returns every purchase, newest first, one row each.
func (s *ExportService) FuelPurchaseSheet(ctx context.Context) (domain.Sheet, error) {
	ps, err := s.fuel.List(ctx)
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("service.ExportService.FuelPurchaseSheet: %w", err)
	}
	ps = slices.Clone(ps)
	domain.SortFuelPurchases(ps)

	rows := make([]map[string]any, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, map[string]any{
			"trip_date":       cellDate(p.Date),
			"vehicle":         domain.NormalizeVehicle(p.Vehicle),
			"odometer_km":     cellNumber(p.Odometer),
			"fuel_quantity_l": cellNumber(p.Quantity),
			"price_total":     cellNumber(p.TotalPrice),
			"price_per_liter": cellNumber(p.PricePerUnit),
			"gst_paid":        cellNumber(p.TaxPaid),
			"start_mileage":   cellNullNumber(p.StartMileage),
		})
	}
	return domain.Sheet{
		Name:     "Fuel Purchases",
		Filename: "fuel-purchases.xlsx",
		Columns:  fuelSheetColumns,
		Rows:     rows,
	}, nil
}

// MileageSheet returns every session, newest first. Open sessions leave the
// end and total cells empty.
func (s *ExportService) MileageSheet(ctx context.Context) (domain.Sheet, error) {
	ss, err := s.mileage.List(ctx)
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("service.ExportService.MileageSheet: %w", err)
	}
	ss = slices.Clone(ss)
	domain.SortMileageSessions(ss)

	rows := make([]map[string]any, 0, len(ss))
	for _, m := range ss {
		rows = append(rows, map[string]any{
			"mileage_date":  cellDate(m.Date),
			"vehicle":       domain.NormalizeVehicle(m.Vehicle),
			"start_mileage": cellNumber(m.StartMileage),
			"end_mileage":   cellNullNumber(m.EndMileage),
			"total_km":      cellNullNumber(m.TotalDistance()),
		})
	}
	return domain.Sheet{
		Name:     "Daily Records",
		Filename: "daily-records.xlsx",
		Columns:  mileageSheetColumns,
		Rows:     rows,
	}, nil
}

func cellDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.DateOnly)
}

func cellNumber(d decimal.Decimal) any {
	return d.InexactFloat64()
}

func cellNullNumber(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}
