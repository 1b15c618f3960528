package domain

import (
	"cmp"
	"slices"
	"time"
)

// newestFirst orders by date descending, breaking same-day ties by id
// descending so the listing is deterministic.
func newestFirst(aDate, bDate time.Time, aID, bID int64) int {
	if c := bDate.Compare(aDate); c != 0 {
		return c
	}
	return cmp.Compare(bID, aID)
}

// SortFuelPurchases sorts ps in place, newest first.
func SortFuelPurchases(ps []FuelPurchase) {
	slices.SortStableFunc(ps, func(a, b FuelPurchase) int {
		return newestFirst(a.Date, b.Date, a.ID, b.ID)
	})
}

// SortMileageSessions sorts ss in place, newest first.
func SortMileageSessions(ss []MileageSession) {
	slices.SortStableFunc(ss, func(a, b MileageSession) int {
		return newestFirst(a.Date, b.Date, a.ID, b.ID)
	})
}
