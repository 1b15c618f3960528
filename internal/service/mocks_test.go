package service_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/repo"
	"github.com/pkordes/fuel-tracker/backend/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones your test needs. Calling an unset one panics, which flags an
// unexpected repo call.

type mockFuelRepo struct {
	create      func(ctx context.Context, p domain.FuelPurchase) (domain.FuelPurchase, error)
	list        func(ctx context.Context) ([]domain.FuelPurchase, error)
	listBetween func(ctx context.Context, start, end time.Time, vehicle string) ([]domain.FuelPurchase, error)
	delete      func(ctx context.Context, id int64) error
}

func (m *mockFuelRepo) Create(ctx context.Context, p domain.FuelPurchase) (domain.FuelPurchase, error) {
	return m.create(ctx, p)
}
func (m *mockFuelRepo) List(ctx context.Context) ([]domain.FuelPurchase, error) {
	return m.list(ctx)
}
func (m *mockFuelRepo) ListBetween(ctx context.Context, start, end time.Time, vehicle string) ([]domain.FuelPurchase, error) {
	return m.listBetween(ctx, start, end, vehicle)
}
func (m *mockFuelRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ repo.FuelPurchaseRepo = (*mockFuelRepo)(nil)

type mockMileageRepo struct {
	create           func(ctx context.Context, s domain.MileageSession) (domain.MileageSession, error)
	getByID          func(ctx context.Context, id int64) (domain.MileageSession, error)
	list             func(ctx context.Context) ([]domain.MileageSession, error)
	listBetween      func(ctx context.Context, start, end time.Time, vehicle string) ([]domain.MileageSession, error)
	updateEndMileage func(ctx context.Context, id int64, end decimal.Decimal) (domain.MileageSession, error)
	delete           func(ctx context.Context, id int64) error
}

func (m *mockMileageRepo) Create(ctx context.Context, s domain.MileageSession) (domain.MileageSession, error) {
	return m.create(ctx, s)
}
func (m *mockMileageRepo) GetByID(ctx context.Context, id int64) (domain.MileageSession, error) {
	return m.getByID(ctx, id)
}
func (m *mockMileageRepo) List(ctx context.Context) ([]domain.MileageSession, error) {
	return m.list(ctx)
}
func (m *mockMileageRepo) ListBetween(ctx context.Context, start, end time.Time, vehicle string) ([]domain.MileageSession, error) {
	return m.listBetween(ctx, start, end, vehicle)
}
func (m *mockMileageRepo) UpdateEndMileage(ctx context.Context, id int64, end decimal.Decimal) (domain.MileageSession, error) {
	return m.updateEndMileage(ctx, id, end)
}
func (m *mockMileageRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ repo.MileageSessionRepo = (*mockMileageRepo)(nil)

type mockUserRepo struct {
	create        func(ctx context.Context, username, hash string) (domain.User, error)
	getByUsername func(ctx context.Context, username string) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, username, hash string) (domain.User, error) {
	return m.create(ctx, username, hash)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockTokens struct {
	issue  func(ctx context.Context, id domain.Identity) (domain.Session, error)
	verify func(ctx context.Context, token string) (domain.Identity, error)
	revoke func(ctx context.Context, token string) error
}

func (m *mockTokens) Issue(ctx context.Context, id domain.Identity) (domain.Session, error) {
	return m.issue(ctx, id)
}
func (m *mockTokens) Verify(ctx context.Context, token string) (domain.Identity, error) {
	return m.verify(ctx, token)
}
func (m *mockTokens) Revoke(ctx context.Context, token string) error {
	return m.revoke(ctx, token)
}

var _ service.TokenManager = (*mockTokens)(nil)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
