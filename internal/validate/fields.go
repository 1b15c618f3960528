// Package validate turns raw request fields into typed domain inputs.
//
// Handlers decode a JSON body (numbers kept as json.Number) or a form into a
// Fields map and hand it over untouched. Each validator walks its fields in a
// fixed order and stops at the first violation, returning a
// *domain.ValidationError naming that field.
package validate

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

// Fields is an undecoded request body keyed by wire name.
type Fields map[string]any

// text returns the trimmed string form of f[key]. ok is false when the key is
// missing, null, blank, or holds a value that has no scalar string form.
func (f Fields) text(key string) (s string, ok bool) {
	switch v := f[key].(type) {
	case nil:
		return "", false
	case string:
		s = v
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case []string:
		// url.Values style input; the first value wins.
		if len(v) == 0 {
			return "", false
		}
		s = v[0]
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// String returns f[key] as sent when it is a string, and "" otherwise.
func (f Fields) String(key string) string {
	switch v := f[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// present reports whether key carries a non-blank value.
func (f Fields) present(key string) bool {
	_, ok := f.text(key)
	return ok
}

// parseDecimal accepts plain decimal notation only. Exponents and the
// literals NaN and Infinity are rejected.
func parseDecimal(s string) (decimal.Decimal, bool) {
	if strings.ContainsAny(s, "eEnNiI") {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// column is the accepted range of a numeric field: at least min, and no more
// than max once rounded to the stored scale.
type column struct {
	min, max decimal.Decimal
	scale    int32
}

func (c column) check(key, msg string, d decimal.Decimal) error {
	if d.LessThan(c.min) {
		return domain.NewValidationError(key, msg)
	}
	if d.Round(c.scale).GreaterThan(c.max) {
		return domain.NewTooLargeError(key, c.max)
	}
	return nil
}

// requiredDecimal reads key as a decimal inside c. msg is reported for a
// missing, malformed, or too small value alike.
func (f Fields) requiredDecimal(key, msg string, c column) (decimal.Decimal, error) {
	s, ok := f.text(key)
	if !ok {
		return decimal.Decimal{}, domain.NewValidationError(key, msg)
	}
	d, ok := parseDecimal(s)
	if !ok {
		return decimal.Decimal{}, domain.NewValidationError(key, msg)
	}
	if err := c.check(key, msg, d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// optionalDecimal is requiredDecimal for a field that may be omitted.
func (f Fields) optionalDecimal(key, msg string, c column) (decimal.NullDecimal, error) {
	if !f.present(key) {
		return decimal.NullDecimal{}, nil
	}
	d, err := f.requiredDecimal(key, msg, c)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// lenientDecimal treats an unparseable value like an absent one. A value that
// parses but falls outside c still fails.
func (f Fields) lenientDecimal(key, msg string, c column) (decimal.NullDecimal, error) {
	s, ok := f.text(key)
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	d, ok := parseDecimal(s)
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	if err := c.check(key, msg, d); err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// date reads key as a calendar date. Both "2006-01-02" and RFC 3339
// timestamps are accepted; the time component is dropped.
func (f Fields) date(key string) (time.Time, error) {
	s, ok := f.text(key)
	if !ok {
		return time.Time{}, domain.NewValidationError(key, msgInvalidDate)
	}
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(key, msgInvalidDate)
	}
	return t, nil
}

// ParseDate parses s as "2006-01-02" or an RFC 3339 timestamp and returns the
// calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOf(t), nil
}

// vehicle trims and bounds the optional vehicle field. The default is applied
// later by the domain resolvers.
func (f Fields) vehicle() (string, error) {
	s, _ := f.text("vehicle")
	if len([]rune(s)) > domain.MaxVehicleLength {
		return "", domain.NewValidationError("vehicle", msgVehicleTooLong)
	}
	return s, nil
}

const (
	msgInvalidDate      = "Invalid date format"
	msgOdometer         = "Odometer must be a positive number"
	msgFuelQuantity     = "Fuel quantity must be greater than 0"
	msgPriceTotal       = "Price must be a positive number"
	msgPricePerLiter    = "Price per liter must be a positive number"
	msgGST              = "GST must be a positive number"
	msgStartMileage     = "Start mileage must be a positive number"
	msgEndMileage       = "End mileage must be a positive number"
	msgVehicleTooLong   = "Vehicle name must not exceed 50 characters"
	msgEndMileageNeeded = "Valid ID and endMileage are required"
)

var (
	distanceColumn  = column{min: decimal.Zero, max: domain.MaxDistance, scale: domain.DistanceScale}
	quantityColumn  = column{min: decimal.RequireFromString("0.1"), max: domain.MaxQuantity, scale: domain.QuantityScale}
	moneyColumn     = column{min: decimal.Zero, max: domain.MaxMoney, scale: domain.MoneyScale}
	unitPriceColumn = column{min: decimal.Zero, max: domain.MaxUnitPrice, scale: domain.UnitPriceScale}
)
