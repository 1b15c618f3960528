package handler

import (
	"bytes"
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/spreadsheet"
)

// ExportTrips handles GET /trips/export and /trips/export.xlsx.
func (s *Server) ExportTrips(w http.ResponseWriter, r *http.Request) {
	s.writeSheet(w, r, s.export.FuelPurchaseSheet, "Failed to export trips")
}

// ExportMileage handles GET /daily-mileage/export and /daily-mileage/export.xlsx.
func (s *Server) ExportMileage(w http.ResponseWriter, r *http.Request) {
	s.writeSheet(w, r, s.export.MileageSheet, "Failed to export daily mileage")
}

// writeSheet renders the workbook into memory first so a failure can still be
// answered with a JSON error instead of a truncated download.
func (s *Server) writeSheet(w http.ResponseWriter, r *http.Request, build func(context.Context) (domain.Sheet, error), internal string) {
	sheet, err := build(r.Context())
	if err != nil {
		s.fail(w, r, err, "", internal)
		return
	}

	var buf bytes.Buffer
	if err := spreadsheet.Write(&buf, sheet); err != nil {
		s.fail(w, r, err, "", internal)
		return
	}

	h := w.Header()
	h.Set("Content-Type", spreadsheet.ContentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": sheet.Filename}))
	h.Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
