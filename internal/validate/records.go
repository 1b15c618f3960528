package validate

import (
	"github.com/shopspring/decimal"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

// FuelPurchase validates a fuel purchase body.
// Fields are checked in wire order: date, odometerKm, fuelQuantity,
// priceTotal, pricePerLiter, gstPaid, startMileage, vehicle.
func FuelPurchase(f Fields) (domain.FuelPurchaseInput, error) {
	var (
		in  domain.FuelPurchaseInput
		err error
	)
	if in.Date, err = f.date("date"); err != nil {
		return domain.FuelPurchaseInput{}, err
	}
	if in.Odometer, err = f.requiredDecimal("odometerKm", msgOdometer, distanceColumn); err != nil {
		return domain.FuelPurchaseInput{}, err
	}
	if in.Quantity, err = f.requiredDecimal("fuelQuantity", msgFuelQuantity, quantityColumn); err != nil {
		return domain.FuelPurchaseInput{}, err
	}
	if in.TotalPrice, err = f.requiredDecimal("priceTotal", msgPriceTotal, moneyColumn); err != nil {
		return domain.FuelPurchaseInput{}, err
	}
	if in.PricePerUnit, err = f.lenientDecimal("pricePerLiter", msgPricePerLiter, unitPriceColumn); err != nil {
		return domain.FuelPurchaseInput{}, err
	}
	tax, err := f.optionalDecimal("gstPaid", msgGST, moneyColumn)
	if err != nil {
		return domain.FuelPurchaseInput{}, err
	}
	in.TaxPaid = tax.Decimal // zero when omitted
	if in.StartMileage, err = f.optionalDecimal("startMileage", msgStartMileage, distanceColumn); err != nil {
		return domain.FuelPurchaseInput{}, err
	}
	if in.Vehicle, err = f.vehicle(); err != nil {
		return domain.FuelPurchaseInput{}, err
	}
	return in, nil
}

// MileageSession validates a new mileage session body: date, startMileage,
// optional endMileage, vehicle. The end ≥ start rule belongs to the domain.
func MileageSession(f Fields) (domain.MileageSessionInput, error) {
	var (
		in  domain.MileageSessionInput
		err error
	)
	if in.Date, err = f.date("date"); err != nil {
		return domain.MileageSessionInput{}, err
	}
	if in.StartMileage, err = f.requiredDecimal("startMileage", msgStartMileage, distanceColumn); err != nil {
		return domain.MileageSessionInput{}, err
	}
	if in.EndMileage, err = f.optionalDecimal("endMileage", msgEndMileage, distanceColumn); err != nil {
		return domain.MileageSessionInput{}, err
	}
	if in.Vehicle, err = f.vehicle(); err != nil {
		return domain.MileageSessionInput{}, err
	}
	return in, nil
}

// EndMileage validates the body of a close request.
func EndMileage(f Fields) (decimal.Decimal, error) {
	return f.requiredDecimal("endMileage", msgEndMileageNeeded, distanceColumn)
}
