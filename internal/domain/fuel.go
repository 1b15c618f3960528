// Package domain contains the core data types and pure rules for the fuel
// tracker: records, derived fields, the monthly aggregator and the pagination
// view. It performs no I/O and is imported by every other internal package
// (validate, repo, service, handler).
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultVehicle is the identity used when a record arrives without a vehicle.
const DefaultVehicle = "Nissan Xtrail"

// MaxVehicleLength bounds the vehicle column, counted in characters.
const MaxVehicleLength = 50

// CanonicalVehicles lists the vehicles the reporting UI knows by name.
// The vehicle domain is open; other names are stored and grouped as-is.
var CanonicalVehicles = []string{"Nissan Xtrail", "Nissan Sentra", "Subaru Legacy"}

// NormalizeVehicle trims v and substitutes DefaultVehicle when nothing is left.
// Every record passes through here before persistence and before grouping so
// that "" and DefaultVehicle never end up as separate keys.
func NormalizeVehicle(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultVehicle
	}
	return v
}

// DateOf strips the time component of t, keeping its calendar date in t's
// location and returning it as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FuelPurchase is one refueling transaction.
// Records are immutable after creation; the only lifecycle step is deletion.
type FuelPurchase struct {
	ID           int64
	Date         time.Time
	Odometer     decimal.Decimal
	Quantity     decimal.Decimal
	TotalPrice   decimal.Decimal
	PricePerUnit decimal.Decimal
	TaxPaid      decimal.Decimal
	StartMileage decimal.NullDecimal // informational link to a mileage session
	Vehicle      string
	CreatedAt    time.Time
}

// FuelPurchaseInput is a validated fuel purchase whose derived fields have not
// been resolved yet. PricePerUnit is invalid when the caller omitted it.
type FuelPurchaseInput struct {
	Date         time.Time
	Odometer     decimal.Decimal
	Quantity     decimal.Decimal
	TotalPrice   decimal.Decimal
	PricePerUnit decimal.NullDecimal
	TaxPaid      decimal.Decimal
	StartMileage decimal.NullDecimal
	Vehicle      string
}
