// Package handler implements the HTTP handlers for the fuel tracker API.
// All handlers are methods on Server. They are split into resource-specific
// files (trip.go, mileage.go, auth.go, etc.) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/middleware"
	"github.com/pkordes/fuel-tracker/backend/internal/ratelimit"
	"github.com/pkordes/fuel-tracker/backend/internal/validate"
)

// FuelServicer defines the fuel purchase operations the /trips handlers use.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type FuelServicer interface {
	Create(ctx context.Context, f validate.Fields) (domain.FuelPurchase, error)
	List(ctx context.Context) ([]domain.FuelPurchase, error)
	ListPage(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.FuelPurchase], error)
	Delete(ctx context.Context, id int64) error
}

// MileageServicer defines the mileage session operations.
type MileageServicer interface {
	Create(ctx context.Context, f validate.Fields) (domain.MileageSession, error)
	List(ctx context.Context) ([]domain.MileageSession, error)
	ListPage(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.MileageSession], error)
	Close(ctx context.Context, id int64, f validate.Fields) (domain.MileageSession, error)
	Delete(ctx context.Context, id int64) error
}

// SummaryServicer aggregates purchases for a date range.
type SummaryServicer interface {
	Summarize(ctx context.Context, q domain.SummaryQuery) (domain.Summary, error)
}

// ExportServicer builds spreadsheet-ready tables.
type ExportServicer interface {
	FuelPurchaseSheet(ctx context.Context) (domain.Sheet, error)
	MileageSheet(ctx context.Context) (domain.Sheet, error)
}

// AuthServicer manages accounts and sessions.
type AuthServicer interface {
	Register(ctx context.Context, username, password string) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

// Services groups the business dependencies of Server.
type Services struct {
	Fuel    FuelServicer
	Mileage MileageServicer
	Summary SummaryServicer
	Export  ExportServicer
	Auth    AuthServicer
}

// Options tunes transport behavior.
type Options struct {
	Logger *slog.Logger
	// Limiter backs the login, register and write gates. Nil disables them.
	Limiter *ratelimit.Limiter
	// CookieSecure marks the session cookie Secure (HTTPS only).
	CookieSecure bool
	// Now is the clock for the default summary month. Defaults to time.Now.
	Now func() time.Time
}

// Server holds the dependencies shared by every handler.
type Server struct {
	fuel    FuelServicer
	mileage MileageServicer
	summary SummaryServicer
	export  ExportServicer
	auth    AuthServicer

	log          *slog.Logger
	limiter      *ratelimit.Limiter
	cookieSecure bool
	now          func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, opts Options) *Server {
	s := &Server{
		fuel:         svc.Fuel,
		mileage:      svc.Mileage,
		summary:      svc.Summary,
		export:       svc.Export,
		auth:         svc.Auth,
		log:          opts.Logger,
		limiter:      opts.Limiter,
		cookieSecure: opts.CookieSecure,
		now:          opts.Now,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Routes returns the API router. main.go mounts it under /api.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", s.GetHealth)

	r.With(s.limit(ratelimit.RegisterRule)).Post("/register", s.Register)
	r.With(s.limit(ratelimit.LoginRule)).Post("/login", s.Login)
	r.Post("/logout", s.Logout)
	r.Get("/auth/status", s.AuthStatus)

	r.Group(func(r chi.Router) {
		r.Use(s.limit(ratelimit.WriteRule))
		r.Use(s.requireAuth)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/summary", s.GetSummary)
			r.Get("/export", s.ExportTrips)
			r.Get("/export.xlsx", s.ExportTrips)
			r.Delete("/{id}", s.DeleteTrip)
		})

		r.Route("/daily-mileage", func(r chi.Router) {
			r.Get("/", s.ListMileage)
			r.Post("/", s.CreateMileage)
			r.Get("/export", s.ExportMileage)
			r.Get("/export.xlsx", s.ExportMileage)
			r.Put("/{id}", s.CloseMileage)
			r.Delete("/{id}", s.DeleteMileage)
		})
	})
	return r
}

// limit returns the admission gate for rule, or a pass-through when no
// limiter is configured.
func (s *Server) limit(rule ratelimit.Rule) func(http.Handler) http.Handler {
	if s.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.NewRateLimitHandler(s.limiter, rule, s.log)
}
