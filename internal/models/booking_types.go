package models

import (
	"time"
)

// TestDriveBooking is the model for the 'test_drive_bookings' table.
// BookingDate carries a calendar date; StartTime/EndTime are "HH:MM"
// time-of-day strings, matching what the booking form submits.
type TestDriveBooking struct {
	ID          int64     `json:"id" db:"id"`
	CarID       int64     `json:"carId" db:"car_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	BookingDate time.Time `json:"bookingDate" db:"booking_date"`
	StartTime   string    `json:"startTime" db:"start_time"`
	EndTime     string    `json:"endTime" db:"end_time"`
	Status      string    `json:"status" db:"status"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joined car summary for listing screens, populated manually.
	Car *Car `json:"car,omitempty" db:"-"`
}
