package handler

import (
	"encoding/json"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

// fuelPurchaseResponse is one row of GET /trips and the body of POST /trips.
type fuelPurchaseResponse struct {
	ID            int64              `json:"id"`
	TripDate      openapi_types.Date `json:"trip_date"`
	OdometerKm    json.Number        `json:"odometer_km"`
	FuelQuantityL json.Number        `json:"fuel_quantity_l"`
	PriceTotal    json.Number        `json:"price_total"`
	PricePerLiter json.Number        `json:"price_per_liter"`
	GstPaid       json.Number        `json:"gst_paid"`
	StartMileage  *json.Number       `json:"start_mileage"`
	Vehicle       string             `json:"vehicle"`
	CreatedAt     time.Time          `json:"created_at"`
}

// mileageSessionResponse is one row of GET /daily-mileage and the body of
// POST /daily-mileage.
type mileageSessionResponse struct {
	ID           int64              `json:"id"`
	MileageDate  openapi_types.Date `json:"mileage_date"`
	StartMileage json.Number        `json:"start_mileage"`
	EndMileage   *json.Number       `json:"end_mileage"`
	TotalKm      *json.Number       `json:"total_km"`
	Vehicle      string             `json:"vehicle"`
	CreatedAt    time.Time          `json:"created_at"`
}

// pageResponse wraps a listing when the client asked for a page.
type pageResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination paginationInfo `json:"pagination"`
}

type paginationInfo struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
	TotalItems int    `json:"totalItems"`
	HasPrev    bool   `json:"hasPrev"`
	HasNext    bool   `json:"hasNext"`
	Label      string `json:"label"`
}

type vehicleSummaryResponse struct {
	Vehicle          string      `json:"vehicle"`
	TotalFuelL       json.Number `json:"total_fuel_l"`
	TotalCost        json.Number `json:"total_cost"`
	TotalGst         json.Number `json:"total_gst"`
	TotalKm          json.Number `json:"total_km"`
	TransactionCount int         `json:"transaction_count"`
	AvgPricePerLiter json.Number `json:"avg_price_per_liter"`
}

type summaryResponse struct {
	StartDate openapi_types.Date       `json:"start_date"`
	EndDate   openapi_types.Date       `json:"end_date"`
	Vehicle   *string                  `json:"vehicle"`
	Vehicles  []vehicleSummaryResponse `json:"vehicles"`
	Total     vehicleSummaryResponse   `json:"total"`
	Empty     bool                     `json:"empty"`
}

// number renders d as a bare JSON number without a float64 round trip.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func nullNumber(d decimal.NullDecimal) *json.Number {
	if !d.Valid {
		return nil
	}
	n := number(d.Decimal)
	return &n
}

func fuelPurchaseToResponse(p domain.FuelPurchase) fuelPurchaseResponse {
	return fuelPurchaseResponse{
		ID:            p.ID,
		TripDate:      openapi_types.Date{Time: p.Date},
		OdometerKm:    number(p.Odometer),
		FuelQuantityL: number(p.Quantity),
		PriceTotal:    number(p.TotalPrice),
		PricePerLiter: number(p.PricePerUnit),
		GstPaid:       number(p.TaxPaid),
		StartMileage:  nullNumber(p.StartMileage),
		Vehicle:       domain.NormalizeVehicle(p.Vehicle),
		CreatedAt:     p.CreatedAt,
	}
}

func mileageSessionToResponse(m domain.MileageSession) mileageSessionResponse {
	return mileageSessionResponse{
		ID:           m.ID,
		MileageDate:  openapi_types.Date{Time: m.Date},
		StartMileage: number(m.StartMileage),
		EndMileage:   nullNumber(m.EndMileage),
		TotalKm:      nullNumber(m.TotalDistance()),
		Vehicle:      domain.NormalizeVehicle(m.Vehicle),
		CreatedAt:    m.CreatedAt,
	}
}

// mapAll converts every element with fn. The result is never nil, so an
// empty listing encodes as [].
func mapAll[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

func pageToResponse[T, R any](p domain.Page[T], fn func(T) R) pageResponse[R] {
	return pageResponse[R]{
		Data: mapAll(p.Items, fn),
		Pagination: paginationInfo{
			Page:       p.DisplayPage(),
			PageSize:   p.PageSize,
			TotalPages: p.TotalPages,
			TotalItems: p.TotalItems,
			HasPrev:    p.HasPrev(),
			HasNext:    p.HasNext(),
			Label:      p.Label(),
		},
	}
}

func vehicleSummaryToResponse(v domain.VehicleSummary) vehicleSummaryResponse {
	return vehicleSummaryResponse{
		Vehicle:          v.Vehicle,
		TotalFuelL:       number(v.TotalQuantity),
		TotalCost:        number(v.TotalCost),
		TotalGst:         number(v.TotalTax),
		TotalKm:          number(v.TotalDistance),
		TransactionCount: v.TransactionCount,
		AvgPricePerLiter: number(v.AveragePricePerUnit()),
	}
}

func summaryToResponse(s domain.Summary) summaryResponse {
	resp := summaryResponse{
		StartDate: openapi_types.Date{Time: s.Query.Start},
		EndDate:   openapi_types.Date{Time: s.Query.End},
		Vehicles:  mapAll(s.Vehicles, vehicleSummaryToResponse),
		Total:     vehicleSummaryToResponse(s.Total),
		Empty:     s.IsEmpty(),
	}
	if s.Query.Vehicle != "" {
		v := s.Query.Vehicle
		resp.Vehicle = &v
	}
	return resp
}
