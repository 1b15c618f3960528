package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/validate"
)

// pathID binds the {id} path segment as an int64. invalid is the message
// reported when it is not a number.
func pathID(r *http.Request, invalid string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, badRequest(invalid)
	}
	return id, nil
}

// pageParams reads ?page= and ?pageSize=. ok is false when neither is given,
// in which case the caller returns the full listing.
func pageParams(r *http.Request) (p domain.PaginationParams, ok bool, err error) {
	var page, size *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		return p, false, badRequest("page must be an integer")
	}
	if err := runtime.BindQueryParameter("form", true, false, "pageSize", q, &size); err != nil {
		return p, false, badRequest("pageSize must be an integer")
	}
	if page == nil && size == nil {
		return p, false, nil
	}
	return domain.NewPaginationParams(page, size), true, nil
}

// summaryParams are the query parameters of GET /trips/summary.
type summaryParams struct {
	StartDate *openapi_types.Date
	EndDate   *openapi_types.Date
	Month     *string
	Vehicle   *string
}

func bindSummaryParams(r *http.Request) (summaryParams, error) {
	var p summaryParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "startDate", q, &p.StartDate); err != nil {
		return p, badRequest("Invalid date format")
	}
	if err := runtime.BindQueryParameter("form", true, false, "endDate", q, &p.EndDate); err != nil {
		return p, badRequest("Invalid date format")
	}
	if err := runtime.BindQueryParameter("form", true, false, "month", q, &p.Month); err != nil {
		return p, badRequest("month must be formatted as YYYY-MM")
	}
	if err := runtime.BindQueryParameter("form", true, false, "vehicle", q, &p.Vehicle); err != nil {
		return p, badRequest("Invalid vehicle")
	}
	return p, nil
}

// decodeFields reads a JSON object or a form body into validate.Fields.
// JSON numbers are kept as json.Number so decimals are never rounded through
// float64. An empty body yields empty Fields.
func decodeFields(r *http.Request) (validate.Fields, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, bodyError(err)
		}
		f := make(validate.Fields, len(r.PostForm))
		for k, v := range r.PostForm {
			f[k] = v
		}
		return f, nil
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var f validate.Fields
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return validate.Fields{}, nil
		}
		return nil, bodyError(err)
	}
	if f == nil {
		f = validate.Fields{}
	}
	return f, nil
}

// bodyError keeps http.MaxBytesError intact so fail can answer 413.
func bodyError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return err
	}
	return badRequest("Invalid request body")
}
