package handler

import (
	"encoding/json"
	"net/http"
)

// closeResponse acknowledges PUT /daily-mileage/{id}.
type closeResponse struct {
	Message string       `json:"message"`
	TotalKm *json.Number `json:"total_km"`
}

// ListMileage handles GET /daily-mileage. Paging works as in ListTrips.
func (s *Server) ListMileage(w http.ResponseWriter, r *http.Request) {
	params, paged, err := pageParams(r)
	if err != nil {
		s.fail(w, r, err, "", "Failed to fetch daily mileage")
		return
	}

	if !paged {
		ms, err := s.mileage.List(r.Context())
		if err != nil {
			s.fail(w, r, err, "", "Failed to fetch daily mileage")
			return
		}
		writeJSON(w, http.StatusOK, mapAll(ms, mileageSessionToResponse))
		return
	}

	page, err := s.mileage.ListPage(r.Context(), params)
	if err != nil {
		s.fail(w, r, err, "", "Failed to fetch daily mileage")
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(page, mileageSessionToResponse))
}

// CreateMileage handles POST /daily-mileage. The session may be opened with
// only a start reading or recorded complete.
func (s *Server) CreateMileage(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		s.fail(w, r, err, "", "Failed to create daily mileage")
		return
	}

	created, err := s.mileage.Create(r.Context(), fields)
	if err != nil {
		s.fail(w, r, err, "", "Failed to create daily mileage")
		return
	}
	writeJSON(w, http.StatusCreated, mileageSessionToResponse(created))
}

// CloseMileage handles PUT /daily-mileage/{id}, recording the end reading.
func (s *Server) CloseMileage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Valid ID and endMileage are required")
	if err != nil {
		s.fail(w, r, err, "", "Failed to update daily mileage")
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		s.fail(w, r, err, "", "Failed to update daily mileage")
		return
	}

	closed, err := s.mileage.Close(r.Context(), id, fields)
	if err != nil {
		s.fail(w, r, err, "Mileage record not found", "Failed to update daily mileage")
		return
	}
	writeJSON(w, http.StatusOK, closeResponse{
		Message: "Mileage record updated successfully",
		TotalKm: nullNumber(closed.TotalDistance()),
	})
}

// DeleteMileage handles DELETE /daily-mileage/{id}.
func (s *Server) DeleteMileage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Invalid mileage ID")
	if err != nil {
		s.fail(w, r, err, "", "Failed to delete daily mileage")
		return
	}

	if err := s.mileage.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "Mileage record not found", "Failed to delete daily mileage")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Mileage record deleted successfully"})
}
