package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MileageSession bounds a driving period with two odometer readings.
// EndMileage is invalid (NULL) while the session is still open.
type MileageSession struct {
	ID           int64
	Date         time.Time
	StartMileage decimal.Decimal
	EndMileage   decimal.NullDecimal
	Vehicle      string
	CreatedAt    time.Time
}

// MileageSessionInput is a validated, not yet resolved mileage session.
type MileageSessionInput struct {
	Date         time.Time
	StartMileage decimal.Decimal
	EndMileage   decimal.NullDecimal
	Vehicle      string
}

// IsOpen reports whether the session still awaits its end reading.
func (m MileageSession) IsOpen() bool {
	return !m.EndMileage.Valid
}

// TotalDistance is derived from the two endpoints on every call.
// It is NULL while the session is open.
func (m MileageSession) TotalDistance() decimal.NullDecimal {
	return Distance(m.StartMileage, m.EndMileage)
}

// Close returns a copy of m with EndMileage set to end.
// A closed session may be closed again; the new reading replaces the old one.
func (m MileageSession) Close(end decimal.Decimal) (MileageSession, error) {
	end = end.Round(DistanceScale)
	if end.LessThan(m.StartMileage) {
		return MileageSession{}, ErrEndBeforeStart
	}
	m.EndMileage = decimal.NewNullDecimal(end)
	return m, nil
}

// ErrEndBeforeStart rejects an end reading below the session's start.
var ErrEndBeforeStart error = &ConflictError{Message: "End mileage cannot be less than start mileage"}
