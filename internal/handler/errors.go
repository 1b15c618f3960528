package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse acknowledges deletes and updates.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// fail classifies err and writes the matching response.
//
//   - validation and domain conflicts → 400 with their own message
//   - domain.ErrNotFound → 404 with notFound
//   - domain.ErrUnauthenticated → 401
//   - an oversized body → 413
//   - anything else → logged, then 500 with internal
//
// The handler supplies both messages because it is the layer that knows what
// was being looked up or attempted.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, notFound, internal string) {
	var (
		verr *domain.ValidationError
		cerr *domain.ConflictError
		berr *badRequestError
		mbe  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.As(err, &cerr):
		writeError(w, http.StatusBadRequest, cerr.Message)
	case errors.As(err, &berr):
		writeError(w, http.StatusBadRequest, berr.message)
	case errors.As(err, &mbe):
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, domain.ErrNotFound) && notFound != "":
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Not authenticated")
	default:
		attrs := []any{"error", err, "request_id", chimw.GetReqID(r.Context())}
		if id, ok := identityFrom(r.Context()); ok {
			attrs = append(attrs, "user", id.Username)
		}
		s.log.ErrorContext(r.Context(), internal, attrs...)
		writeError(w, http.StatusInternalServerError, internal)
	}
}

// badRequestError rejects input before it reaches the service layer, such as
// a malformed body or path id.
type badRequestError struct {
	message string
}

func (e *badRequestError) Error() string { return "bad request: " + e.message }

func badRequest(message string) error { return &badRequestError{message: message} }
