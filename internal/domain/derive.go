package domain

import "github.com/shopspring/decimal"

// Column precisions. Values are rounded to these scales before they are
// persisted or acknowledged so the response matches what the store keeps.
const (
	DistanceScale  = 1 // odometer and mileage readings
	QuantityScale  = 3 // fuel volume
	MoneyScale     = 2 // total price and tax
	UnitPriceScale = 3 // price per unit
)

// Column maximums: the largest values NUMERIC(10, scale) can hold.
var (
	MaxDistance  = decimal.RequireFromString("999999999.9")
	MaxQuantity  = decimal.RequireFromString("9999999.999")
	MaxMoney     = decimal.RequireFromString("99999999.99")
	MaxUnitPrice = decimal.RequireFromString("9999999.999")
)

// NewTooLargeError reports field as exceeding max.
func NewTooLargeError(field string, max decimal.Decimal) error {
	return NewValidationError(field, field+" must not exceed "+max.String())
}

// ResolveFuelPurchase fills in derived fields and applies column rounding.
//
// When the caller gave no unit price it is computed as
// round(TotalPrice / Quantity, 3). A purchase whose unit price cannot be
// resolved (no explicit value and a non-positive quantity), or resolves past
// MaxUnitPrice, is rejected.
func ResolveFuelPurchase(in FuelPurchaseInput) (FuelPurchase, error) {
	p := FuelPurchase{
		Date:       DateOf(in.Date),
		Odometer:   in.Odometer.Round(DistanceScale),
		Quantity:   in.Quantity.Round(QuantityScale),
		TotalPrice: in.TotalPrice.Round(MoneyScale),
		TaxPaid:    in.TaxPaid.Round(MoneyScale),
		Vehicle:    NormalizeVehicle(in.Vehicle),
	}
	if in.StartMileage.Valid {
		p.StartMileage = decimal.NewNullDecimal(in.StartMileage.Decimal.Round(DistanceScale))
	}

	switch {
	case in.PricePerUnit.Valid:
		p.PricePerUnit = in.PricePerUnit.Decimal.Round(UnitPriceScale)
	case p.Quantity.IsPositive():
		p.PricePerUnit = UnitPrice(p.TotalPrice, p.Quantity)
	default:
		return FuelPurchase{}, NewValidationError("pricePerLiter", "pricePerLiter is required when fuelQuantity is zero")
	}
	if p.PricePerUnit.GreaterThan(MaxUnitPrice) {
		return FuelPurchase{}, NewTooLargeError("pricePerLiter", MaxUnitPrice)
	}
	return p, nil
}

// UnitPrice divides cost by quantity at unit-price precision.
// It returns zero for a non-positive quantity.
func UnitPrice(cost, quantity decimal.Decimal) decimal.Decimal {
	if !quantity.IsPositive() {
		return decimal.Zero
	}
	return cost.DivRound(quantity, UnitPriceScale)
}

// ResolveMileageSession normalizes a new session and checks its endpoints.
func ResolveMileageSession(in MileageSessionInput) (MileageSession, error) {
	s := MileageSession{
		Date:         DateOf(in.Date),
		StartMileage: in.StartMileage.Round(DistanceScale),
		Vehicle:      NormalizeVehicle(in.Vehicle),
	}
	if in.EndMileage.Valid {
		return s.Close(in.EndMileage.Decimal)
	}
	return s, nil
}

// Distance returns end - start, or NULL when end is absent.
func Distance(start decimal.Decimal, end decimal.NullDecimal) decimal.NullDecimal {
	if !end.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(end.Decimal.Sub(start).Round(DistanceScale))
}
