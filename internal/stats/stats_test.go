package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vehiql/vehiql-golang/internal/models"
)

func TestComputeEmpty(t *testing.T) {
	d := Compute(nil, nil)

	assert.Zero(t, d.Cars.Total)
	assert.Zero(t, d.TestDrives.Total)
	assert.Zero(t, d.TestDrives.ConversionRate)
}

func TestComputeCarCounts(t *testing.T) {
	cars := []CarSnapshot{
		{ID: 1, Status: models.CarStatusAvailable, Featured: true},
		{ID: 2, Status: models.CarStatusAvailable},
		{ID: 3, Status: models.CarStatusUnavailable},
		{ID: 4, Status: models.CarStatusSold, Featured: true},
	}

	d := Compute(cars, nil)

	assert.Equal(t, 4, d.Cars.Total)
	assert.Equal(t, 2, d.Cars.Available)
	assert.Equal(t, 1, d.Cars.Unavailable)
	assert.Equal(t, 1, d.Cars.Sold)
	assert.Equal(t, 2, d.Cars.Featured)
}

func TestComputeBookingCounts(t *testing.T) {
	bookings := []BookingSnapshot{
		{CarID: 1, Status: "PENDING"},
		{CarID: 1, Status: "CONFIRMED"},
		{CarID: 2, Status: "COMPLETED"},
		{CarID: 3, Status: "CANCELLED"},
		{CarID: 4, Status: "NO_SHOW"},
	}

	d := Compute(nil, bookings)

	assert.Equal(t, 5, d.TestDrives.Total)
	assert.Equal(t, 1, d.TestDrives.Pending)
	assert.Equal(t, 1, d.TestDrives.Confirmed)
	assert.Equal(t, 1, d.TestDrives.Completed)
	assert.Equal(t, 1, d.TestDrives.Cancelled)
	assert.Equal(t, 1, d.TestDrives.NoShow)
}

func TestComputeConversionRate(t *testing.T) {
	// Two of three completed test drives were for cars that sold: 66.67%.
	cars := []CarSnapshot{
		{ID: 1, Status: models.CarStatusSold},
		{ID: 2, Status: models.CarStatusSold},
		{ID: 3, Status: models.CarStatusAvailable},
	}
	bookings := []BookingSnapshot{
		{CarID: 1, Status: "COMPLETED"},
		{CarID: 2, Status: "COMPLETED"},
		{CarID: 3, Status: "COMPLETED"},
	}

	d := Compute(cars, bookings)
	assert.Equal(t, 66.67, d.TestDrives.ConversionRate)
}

func TestComputeConversionRateCountsCarsOnce(t *testing.T) {
	// Two completed drives on the same sold car: 1 distinct sold car over
	// 2 completed bookings.
	cars := []CarSnapshot{{ID: 1, Status: models.CarStatusSold}}
	bookings := []BookingSnapshot{
		{CarID: 1, Status: "COMPLETED"},
		{CarID: 1, Status: "COMPLETED"},
	}

	d := Compute(cars, bookings)
	assert.Equal(t, 50.0, d.TestDrives.ConversionRate)
}

func TestComputeConversionRateIgnoresLiveBookings(t *testing.T) {
	cars := []CarSnapshot{{ID: 1, Status: models.CarStatusSold}}
	bookings := []BookingSnapshot{
		{CarID: 1, Status: "PENDING"},
		{CarID: 1, Status: "CONFIRMED"},
	}

	d := Compute(cars, bookings)
	assert.Zero(t, d.TestDrives.ConversionRate, "no completed drives means no rate")
}
