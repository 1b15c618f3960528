package validate

import (
	"strings"
	"time"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

// SummaryQuery resolves the summary range from query parameters.
//
// An explicit startDate/endDate pair wins, then month ("2006-01"), then the
// calendar month containing now. A lone startDate or endDate is rejected.
func SummaryQuery(start, end *time.Time, month, vehicle string, now time.Time) (domain.SummaryQuery, error) {
	vehicle = strings.TrimSpace(vehicle)
	if len([]rune(vehicle)) > domain.MaxVehicleLength {
		return domain.SummaryQuery{}, domain.NewValidationError("vehicle", msgVehicleTooLong)
	}

	switch {
	case start != nil && end != nil:
		q := domain.SummaryQuery{Start: domain.DateOf(*start), End: domain.DateOf(*end), Vehicle: vehicle}
		if q.End.Before(q.Start) {
			return domain.SummaryQuery{}, domain.NewValidationError("endDate", "endDate must not be before startDate")
		}
		return q, nil
	case start != nil:
		return domain.SummaryQuery{}, domain.NewValidationError("endDate", "endDate is required with startDate")
	case end != nil:
		return domain.SummaryQuery{}, domain.NewValidationError("startDate", "startDate is required with endDate")
	}

	if month = strings.TrimSpace(month); month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return domain.SummaryQuery{}, domain.NewValidationError("month", "month must be formatted as YYYY-MM")
		}
		return domain.MonthQuery(t, vehicle), nil
	}
	return domain.MonthQuery(now.UTC(), vehicle), nil
}
