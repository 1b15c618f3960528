package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/fuel-tracker/backend/internal/validate"
)

// GetSummary handles GET /trips/summary.
//
// Query parameters: startDate and endDate (inclusive, given together), or
// month=YYYY-MM, and an optional vehicle. With no range it covers the current
// calendar month. An empty result is still 200 with "empty": true.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	p, err := bindSummaryParams(r)
	if err != nil {
		s.fail(w, r, err, "", "Failed to build summary")
		return
	}

	var start, end *time.Time
	if p.StartDate != nil {
		start = &p.StartDate.Time
	}
	if p.EndDate != nil {
		end = &p.EndDate.Time
	}
	q, err := validate.SummaryQuery(start, end, deref(p.Month), deref(p.Vehicle), s.now())
	if err != nil {
		s.fail(w, r, err, "", "Failed to build summary")
		return
	}

	sum, err := s.summary.Summarize(r.Context(), q)
	if err != nil {
		s.fail(w, r, err, "", "Failed to build summary")
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(sum))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
