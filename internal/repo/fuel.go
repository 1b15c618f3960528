package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

// FuelPurchaseRepo defines the persistence operations for fuel purchases.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type FuelPurchaseRepo interface {
	// Create inserts an already resolved purchase and returns the persisted
	// record with the DB-generated id and created_at populated.
	Create(ctx context.Context, p domain.FuelPurchase) (domain.FuelPurchase, error)

	// List returns every purchase, newest date first, ties by id descending.
	List(ctx context.Context) ([]domain.FuelPurchase, error)

	// ListBetween returns purchases dated within [start, end]. An empty vehicle
	// matches every vehicle.
	ListBetween(ctx context.Context, start, end time.Time, vehicle string) ([]domain.FuelPurchase, error)

	// Delete removes a purchase by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

type pgFuelPurchaseRepo struct {
	db db
}

// NewFuelPurchaseRepo constructs a FuelPurchaseRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewFuelPurchaseRepo(db db) FuelPurchaseRepo {
	return &pgFuelPurchaseRepo{db: db}
}

const fuelColumns = `id, purchase_date, odometer_km, fuel_quantity_l, price_total,
	price_per_liter, gst_paid, start_mileage, vehicle, created_at`

func (r *pgFuelPurchaseRepo) Create(ctx context.Context, p domain.FuelPurchase) (domain.FuelPurchase, error) {
	const q = `
		INSERT INTO fuel_purchases (purchase_date, odometer_km, fuel_quantity_l, price_total,
		                            price_per_liter, gst_paid, start_mileage, vehicle)
		VALUES (@purchase_date, @odometer_km, @fuel_quantity_l, @price_total,
		        @price_per_liter, @gst_paid, @start_mileage, @vehicle)
		RETURNING ` + fuelColumns

	args := pgx.NamedArgs{
		"purchase_date":   p.Date,
		"odometer_km":     numeric(p.Odometer),
		"fuel_quantity_l": numeric(p.Quantity),
		"price_total":     numeric(p.TotalPrice),
		"price_per_liter": numeric(p.PricePerUnit),
		"gst_paid":        numeric(p.TaxPaid),
		"start_mileage":   nullNumeric(p.StartMileage), // NULL when absent
		"vehicle":         p.Vehicle,
	}

	result, err := scanFuelPurchase(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("repo.FuelPurchaseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgFuelPurchaseRepo) List(ctx context.Context) ([]domain.FuelPurchase, error) {
	const q = `SELECT ` + fuelColumns + `
		FROM fuel_purchases
		ORDER BY purchase_date DESC, id DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.FuelPurchaseRepo.List: %w", err)
	}
	out, err := collect(rows, scanFuelPurchase)
	if err != nil {
		return nil, fmt.Errorf("repo.FuelPurchaseRepo.List: scan: %w", err)
	}
	return out, nil
}

func (r *pgFuelPurchaseRepo) ListBetween(ctx context.Context, start, end time.Time, vehicle string) ([]domain.FuelPurchase, error) {
	const q = `SELECT ` + fuelColumns + `
		FROM fuel_purchases
		WHERE purchase_date BETWEEN @start AND @end
		  AND (@vehicle::text = '' OR vehicle = @vehicle::text)
		ORDER BY purchase_date DESC, id DESC`

	args := pgx.NamedArgs{"start": start, "end": end, "vehicle": vehicle}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.FuelPurchaseRepo.ListBetween: %w", err)
	}
	out, err := collect(rows, scanFuelPurchase)
	if err != nil {
		return nil, fmt.Errorf("repo.FuelPurchaseRepo.ListBetween: scan: %w", err)
	}
	return out, nil
}

func (r *pgFuelPurchaseRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM fuel_purchases WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.FuelPurchaseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.FuelPurchaseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanFuelPurchase maps a single row in fuelColumns order into a domain.FuelPurchase.
func scanFuelPurchase(s scanner) (domain.FuelPurchase, error) {
	var (
		p                                          domain.FuelPurchase
		date                                       pgtype.Date
		odometer, qty, total, unit, tax, startMile pgtype.Numeric
	)

	err := s.Scan(&p.ID, &date, &odometer, &qty, &total, &unit, &tax, &startMile, &p.Vehicle, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FuelPurchase{}, domain.ErrNotFound
		}
		return domain.FuelPurchase{}, err
	}

	p.Date = date.Time
	for _, f := range []struct {
		dst *decimal.Decimal
		src pgtype.Numeric
	}{
		{&p.Odometer, odometer},
		{&p.Quantity, qty},
		{&p.TotalPrice, total},
		{&p.PricePerUnit, unit},
		{&p.TaxPaid, tax},
	} {
		if *f.dst, err = toDecimal(f.src); err != nil {
			return domain.FuelPurchase{}, err
		}
	}
	if p.StartMileage, err = toNullDecimal(startMile); err != nil {
		return domain.FuelPurchase{}, err
	}
	return p, nil
}
