package handler

import (
	"net/http"
)

// ListTrips handles GET /trips.
// Without ?page= or ?pageSize= it returns every purchase, newest first, as a
// plain array. With either it returns one page in a {data, pagination}
// envelope (default page size 8, max 100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params, paged, err := pageParams(r)
	if err != nil {
		s.fail(w, r, err, "", "Failed to fetch trips")
		return
	}

	if !paged {
		ps, err := s.fuel.List(r.Context())
		if err != nil {
			s.fail(w, r, err, "", "Failed to fetch trips")
			return
		}
		writeJSON(w, http.StatusOK, mapAll(ps, fuelPurchaseToResponse))
		return
	}

	page, err := s.fuel.ListPage(r.Context(), params)
	if err != nil {
		s.fail(w, r, err, "", "Failed to fetch trips")
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(page, fuelPurchaseToResponse))
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		s.fail(w, r, err, "", "Failed to create trip")
		return
	}

	created, err := s.fuel.Create(r.Context(), fields)
	if err != nil {
		s.fail(w, r, err, "", "Failed to create trip")
		return
	}
	writeJSON(w, http.StatusCreated, fuelPurchaseToResponse(created))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid trip ID")
	if err != nil {
		s.fail(w, r, err, "", "Failed to delete trip")
		return
	}

	if err := s.fuel.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "Trip not found", "Failed to delete trip")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Trip deleted successfully"})
}
