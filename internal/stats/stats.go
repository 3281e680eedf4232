// Package stats computes the admin dashboard aggregates from inventory
// and booking snapshots. Pure computation, no I/O.
package stats

import (
	"math"

	"github.com/vehiql/vehiql-golang/internal/booking"
	"github.com/vehiql/vehiql-golang/internal/models"
)

// CarSnapshot is the minimal car projection the dashboard needs.
type CarSnapshot struct {
	ID       int64
	Status   string
	Featured bool
}

// BookingSnapshot is the minimal booking projection the dashboard needs.
type BookingSnapshot struct {
	CarID  int64
	Status string
}

// Dashboard is the aggregate block rendered by the admin overview tab.
type Dashboard struct {
	Cars struct {
		Total       int `json:"total"`
		Available   int `json:"available"`
		Unavailable int `json:"unavailable"`
		Sold        int `json:"sold"`
		Featured    int `json:"featured"`
	} `json:"cars"`
	TestDrives struct {
		Total          int     `json:"total"`
		Pending        int     `json:"pending"`
		Confirmed      int     `json:"confirmed"`
		Completed      int     `json:"completed"`
		Cancelled      int     `json:"cancelled"`
		NoShow         int     `json:"noShow"`
		ConversionRate float64 `json:"conversionRate"`
	} `json:"testDrives"`
}

// Compute aggregates both snapshots in a single pass each. The
// conversion rate is the share of completed test drives whose car ended
// up SOLD: distinct SOLD cars with a completed booking over total
// completed bookings, as a percentage rounded to 2 decimals. Zero when
// nothing completed.
func Compute(cars []CarSnapshot, bookings []BookingSnapshot) Dashboard {
	var d Dashboard

	soldCars := make(map[int64]bool)
	for _, car := range cars {
		d.Cars.Total++
		switch car.Status {
		case models.CarStatusAvailable:
			d.Cars.Available++
		case models.CarStatusUnavailable:
			d.Cars.Unavailable++
		case models.CarStatusSold:
			d.Cars.Sold++
			soldCars[car.ID] = true
		}
		if car.Featured {
			d.Cars.Featured++
		}
	}

	soldWithCompleted := make(map[int64]bool)
	for _, b := range bookings {
		d.TestDrives.Total++
		switch booking.Status(b.Status) {
		case booking.StatusPending:
			d.TestDrives.Pending++
		case booking.StatusConfirmed:
			d.TestDrives.Confirmed++
		case booking.StatusCompleted:
			d.TestDrives.Completed++
			if soldCars[b.CarID] {
				soldWithCompleted[b.CarID] = true
			}
		case booking.StatusCancelled:
			d.TestDrives.Cancelled++
		case booking.StatusNoShow:
			d.TestDrives.NoShow++
		}
	}

	if d.TestDrives.Completed > 0 {
		rate := float64(len(soldWithCompleted)) / float64(d.TestDrives.Completed) * 100
		d.TestDrives.ConversionRate = math.Round(rate*100) / 100
	}
	return d
}
