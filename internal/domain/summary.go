package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SummaryQuery selects the fuel purchases that feed a summary.
// Start and End are both inclusive calendar dates. An empty Vehicle means
// every vehicle.
type SummaryQuery struct {
	Start   time.Time
	End     time.Time
	Vehicle string
}

// MonthQuery returns a query covering the whole calendar month of t.
func MonthQuery(t time.Time, vehicle string) SummaryQuery {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return SummaryQuery{
		Start:   first,
		End:     first.AddDate(0, 1, -1),
		Vehicle: vehicle,
	}
}

// Covers reports whether the calendar date of d lies in [Start, End].
func (q SummaryQuery) Covers(d time.Time) bool {
	day := DateOf(d)
	return !day.Before(DateOf(q.Start)) && !day.After(DateOf(q.End))
}

// Matches reports whether a record's vehicle passes the filter.
// The record side is normalized, so a stored "" matches DefaultVehicle.
func (q SummaryQuery) Matches(vehicle string) bool {
	filter := strings.TrimSpace(q.Vehicle)
	return filter == "" || NormalizeVehicle(vehicle) == filter
}

// VehicleSummary holds the aggregates for one vehicle.
type VehicleSummary struct {
	Vehicle          string
	TotalQuantity    decimal.Decimal
	TotalCost        decimal.Decimal
	TotalTax         decimal.Decimal
	TotalDistance    decimal.Decimal
	TransactionCount int
}

// AveragePricePerUnit is the cost-weighted unit price, TotalCost/TotalQuantity.
// It is zero when nothing was bought.
func (v VehicleSummary) AveragePricePerUnit() decimal.Decimal {
	return UnitPrice(v.TotalCost, v.TotalQuantity)
}

func (v VehicleSummary) add(o VehicleSummary) VehicleSummary {
	v.TotalQuantity = v.TotalQuantity.Add(o.TotalQuantity)
	v.TotalCost = v.TotalCost.Add(o.TotalCost)
	v.TotalTax = v.TotalTax.Add(o.TotalTax)
	v.TotalDistance = v.TotalDistance.Add(o.TotalDistance)
	v.TransactionCount += o.TransactionCount
	return v
}

// Summary is the result of one aggregation run.
type Summary struct {
	Query    SummaryQuery
	Vehicles []VehicleSummary // sorted by vehicle name
	Total    VehicleSummary   // sums of every row in Vehicles
}

// IsEmpty reports whether no purchase matched the query.
func (s Summary) IsEmpty() bool { return len(s.Vehicles) == 0 }

// Summarize groups the purchases that match q by vehicle.
//
// Distance comes from closed mileage sessions of the same vehicle dated inside
// the range; there is no foreign key between the two tables, so this is a
// best-effort correlation. Sessions only add to vehicles that have at least one
// matching purchase. Summarize is a pure function of its inputs: callers fetch
// the records and it folds them fresh on every call.
func Summarize(q SummaryQuery, purchases []FuelPurchase, sessions []MileageSession) Summary {
	groups := make(map[string]*VehicleSummary)
	for _, p := range purchases {
		if !q.Covers(p.Date) || !q.Matches(p.Vehicle) {
			continue
		}
		key := NormalizeVehicle(p.Vehicle)
		g, ok := groups[key]
		if !ok {
			g = &VehicleSummary{Vehicle: key}
			groups[key] = g
		}
		g.TotalQuantity = g.TotalQuantity.Add(p.Quantity)
		g.TotalCost = g.TotalCost.Add(p.TotalPrice)
		g.TotalTax = g.TotalTax.Add(p.TaxPaid)
		g.TransactionCount++
	}

	for _, s := range sessions {
		d := s.TotalDistance()
		if !d.Valid || !q.Covers(s.Date) {
			continue
		}
		if g, ok := groups[NormalizeVehicle(s.Vehicle)]; ok {
			g.TotalDistance = g.TotalDistance.Add(d.Decimal)
		}
	}

	out := Summary{
		Query:    q,
		Vehicles: make([]VehicleSummary, 0, len(groups)),
		Total:    VehicleSummary{Vehicle: "Total"},
	}
	for _, g := range groups {
		out.Vehicles = append(out.Vehicles, *g)
	}
	slices.SortFunc(out.Vehicles, func(a, b VehicleSummary) int {
		return strings.Compare(a.Vehicle, b.Vehicle)
	})
	for _, v := range out.Vehicles {
		out.Total = out.Total.add(v)
	}
	return out
}
