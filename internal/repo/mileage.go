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

// MileageSessionRepo defines the persistence operations for mileage sessions.
type MileageSessionRepo interface {
	// Create inserts a resolved session and returns the persisted record.
	Create(ctx context.Context, s domain.MileageSession) (domain.MileageSession, error)

	// GetByID returns domain.ErrNotFound if no session with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.MileageSession, error)

	// List returns every session, newest date first, ties by id descending.
	List(ctx context.Context) ([]domain.MileageSession, error)

	// ListBetween returns sessions dated within [start, end]. An empty vehicle
	// matches every vehicle.
	ListBetween(ctx context.Context, start, end time.Time, vehicle string) ([]domain.MileageSession, error)

	// UpdateEndMileage overwrites end_mileage and returns the updated record.
	// Returns domain.ErrNotFound if no session with that ID exists.
	UpdateEndMileage(ctx context.Context, id int64, end decimal.Decimal) (domain.MileageSession, error)

	// Delete removes a session by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

type pgMileageSessionRepo struct {
	db db
}

// NewMileageSessionRepo constructs a MileageSessionRepo backed by the provided db connection.
func NewMileageSessionRepo(db db) MileageSessionRepo {
	return &pgMileageSessionRepo{db: db}
}

// total_km is left out on purpose; the domain derives distance itself.
const mileageColumns = `id, mileage_date, start_mileage, end_mileage, vehicle, created_at`

func (r *pgMileageSessionRepo) Create(ctx context.Context, s domain.MileageSession) (domain.MileageSession, error) {
	const q = `
		INSERT INTO mileage_sessions (mileage_date, start_mileage, end_mileage, vehicle)
		VALUES (@mileage_date, @start_mileage, @end_mileage, @vehicle)
		RETURNING ` + mileageColumns

	args := pgx.NamedArgs{
		"mileage_date":  s.Date,
		"start_mileage": numeric(s.StartMileage),
		"end_mileage":   nullNumeric(s.EndMileage),
		"vehicle":       s.Vehicle,
	}

	result, err := scanMileageSession(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.MileageSession{}, fmt.Errorf("repo.MileageSessionRepo.Create: %w", mapCheckViolation(err))
	}
	return result, nil
}

func (r *pgMileageSessionRepo) GetByID(ctx context.Context, id int64) (domain.MileageSession, error) {
	const q = `SELECT ` + mileageColumns + ` FROM mileage_sessions WHERE id = @id`

	result, err := scanMileageSession(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.MileageSession{}, fmt.Errorf("repo.MileageSessionRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgMileageSessionRepo) List(ctx context.Context) ([]domain.MileageSession, error) {
	const q = `SELECT ` + mileageColumns + `
		FROM mileage_sessions
		ORDER BY mileage_date DESC, id DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.MileageSessionRepo.List: %w", err)
	}
	out, err := collect(rows, scanMileageSession)
	if err != nil {
		return nil, fmt.Errorf("repo.MileageSessionRepo.List: scan: %w", err)
	}
	return out, nil
}

func (r *pgMileageSessionRepo) ListBetween(ctx context.Context, start, end time.Time, vehicle string) ([]domain.MileageSession, error) {
	const q = `SELECT ` + mileageColumns + `
		FROM mileage_sessions
		WHERE mileage_date BETWEEN @start AND @end
		  AND (@vehicle::text = '' OR vehicle = @vehicle::text)
		ORDER BY mileage_date DESC, id DESC`

	args := pgx.NamedArgs{"start": start, "end": end, "vehicle": vehicle}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.MileageSessionRepo.ListBetween: %w", err)
	}
	out, err := collect(rows, scanMileageSession)
	if err != nil {
		return nil, fmt.Errorf("repo.MileageSessionRepo.ListBetween: scan: %w", err)
	}
	return out, nil
}

func (r *pgMileageSessionRepo) UpdateEndMileage(ctx context.Context, id int64, end decimal.Decimal) (domain.MileageSession, error) {
	const q = `
		UPDATE mileage_sessions
		SET end_mileage = @end_mileage
		WHERE id = @id
		RETURNING ` + mileageColumns

	args := pgx.NamedArgs{"id": id, "end_mileage": numeric(end)}
	result, err := scanMileageSession(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.MileageSession{}, fmt.Errorf("repo.MileageSessionRepo.UpdateEndMileage: %w", mapCheckViolation(err))
	}
	return result, nil
}

func (r *pgMileageSessionRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM mileage_sessions WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.MileageSessionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.MileageSessionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// mapCheckViolation turns the end_mileage >= start_mileage CHECK failure into
// the same conflict the domain reports.
func mapCheckViolation(err error) error {
	if pgErrCode(err) == pgCheckViolation {
		return domain.ErrEndBeforeStart
	}
	return err
}

func scanMileageSession(s scanner) (domain.MileageSession, error) {
	var (
		m          domain.MileageSession
		date       pgtype.Date
		start, end pgtype.Numeric
	)

	err := s.Scan(&m.ID, &date, &start, &end, &m.Vehicle, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MileageSession{}, domain.ErrNotFound
		}
		return domain.MileageSession{}, err
	}

	m.Date = date.Time
	if m.StartMileage, err = toDecimal(start); err != nil {
		return domain.MileageSession{}, err
	}
	if m.EndMileage, err = toNullDecimal(end); err != nil {
		return domain.MileageSession{}, err
	}
	return m, nil
}
