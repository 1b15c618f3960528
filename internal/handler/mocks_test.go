package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/handler"
	"github.com/pkordes/fuel-tracker/backend/internal/validate"
)

// Each mock is a test double for one servicer interface.
// Set only the method fields your test needs.

type mockFuel struct {
	create   func(ctx context.Context, f validate.Fields) (domain.FuelPurchase, error)
	list     func(ctx context.Context) ([]domain.FuelPurchase, error)
	listPage func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.FuelPurchase], error)
	delete   func(ctx context.Context, id int64) error
}

func (m *mockFuel) Create(ctx context.Context, f validate.Fields) (domain.FuelPurchase, error) {
	return m.create(ctx, f)
}
func (m *mockFuel) List(ctx context.Context) ([]domain.FuelPurchase, error) {
	return m.list(ctx)
}
func (m *mockFuel) ListPage(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.FuelPurchase], error) {
	return m.listPage(ctx, p)
}
func (m *mockFuel) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockMileage struct {
	create   func(ctx context.Context, f validate.Fields) (domain.MileageSession, error)
	list     func(ctx context.Context) ([]domain.MileageSession, error)
	listPage func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.MileageSession], error)
	close    func(ctx context.Context, id int64, f validate.Fields) (domain.MileageSession, error)
	delete   func(ctx context.Context, id int64) error
}

func (m *mockMileage) Create(ctx context.Context, f validate.Fields) (domain.MileageSession, error) {
	return m.create(ctx, f)
}
func (m *mockMileage) List(ctx context.Context) ([]domain.MileageSession, error) {
	return m.list(ctx)
}
func (m *mockMileage) ListPage(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.MileageSession], error) {
	return m.listPage(ctx, p)
}
func (m *mockMileage) Close(ctx context.Context, id int64, f validate.Fields) (domain.MileageSession, error) {
	return m.close(ctx, id, f)
}
func (m *mockMileage) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockSummary struct {
	summarize func(ctx context.Context, q domain.SummaryQuery) (domain.Summary, error)
}

func (m *mockSummary) Summarize(ctx context.Context, q domain.SummaryQuery) (domain.Summary, error) {
	return m.summarize(ctx, q)
}

type mockExport struct {
	fuelSheet    func(ctx context.Context) (domain.Sheet, error)
	mileageSheet func(ctx context.Context) (domain.Sheet, error)
}

func (m *mockExport) FuelPurchaseSheet(ctx context.Context) (domain.Sheet, error) {
	return m.fuelSheet(ctx)
}
func (m *mockExport) MileageSheet(ctx context.Context) (domain.Sheet, error) {
	return m.mileageSheet(ctx)
}

type mockAuth struct {
	register     func(ctx context.Context, username, password string) (domain.User, error)
	login        func(ctx context.Context, username, password string) (domain.Session, error)
	logout       func(ctx context.Context, token string) error
	authenticate func(ctx context.Context, token string) (domain.Identity, error)
}

func (m *mockAuth) Register(ctx context.Context, username, password string) (domain.User, error) {
	return m.register(ctx, username, password)
}
func (m *mockAuth) Login(ctx context.Context, username, password string) (domain.Session, error) {
	return m.login(ctx, username, password)
}
func (m *mockAuth) Logout(ctx context.Context, token string) error {
	return m.logout(ctx, token)
}
func (m *mockAuth) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	return m.authenticate(ctx, token)
}

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.FuelServicer    = (*mockFuel)(nil)
	_ handler.MileageServicer = (*mockMileage)(nil)
	_ handler.SummaryServicer = (*mockSummary)(nil)
	_ handler.ExportServicer  = (*mockExport)(nil)
	_ handler.AuthServicer    = (*mockAuth)(nil)
)

// ---- helpers ---------------------------------------------------------------

const validToken = "valid-token"

var testUser = domain.Identity{UserID: 1, Username: "driver"}

// tokenAuth accepts validToken and nothing else.
func tokenAuth() *mockAuth {
	return &mockAuth{
		authenticate: func(_ context.Context, token string) (domain.Identity, error) {
			if token == validToken {
				return testUser, nil
			}
			return domain.Identity{}, domain.ErrUnauthenticated
		},
	}
}

// newHTTPHandler wires a Server the way main.go does, minus the rate limiter.
// A nil Auth accepts validToken.
func newHTTPHandler(svc handler.Services) http.Handler {
	if svc.Auth == nil {
		svc.Auth = tokenAuth()
	}
	return handler.NewServer(svc, handler.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) },
	}).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// authed builds a request carrying validToken as the session cookie.
func authed(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: handler.SessionCookie, Value: validToken})
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&m))
	return m
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

var createdAt = time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)

func purchaseFixture() domain.FuelPurchase {
	return domain.FuelPurchase{
		ID:           7,
		Date:         day("2024-03-02"),
		Odometer:     dec("12345.6"),
		Quantity:     dec("40.5"),
		TotalPrice:   dec("81.00"),
		PricePerUnit: dec("2"),
		TaxPaid:      dec("0"),
		Vehicle:      "Nissan Xtrail",
		CreatedAt:    createdAt,
	}
}

func sessionFixture() domain.MileageSession {
	return domain.MileageSession{
		ID:           3,
		Date:         day("2024-03-01"),
		StartMileage: dec("1000"),
		Vehicle:      "Subaru Legacy",
		CreatedAt:    createdAt,
	}
}
