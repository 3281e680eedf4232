package models

import (
	"time"
)

// DealershipInfo is the singleton 'dealership_info' row. Exactly one row
// should exist; it is created lazily with defaults on first read.
type DealershipInfo struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	WorkingHours []WorkingHour `json:"workingHours" db:"-"`
}

// WorkingHour is one per-day row of the 'working_hours' table.
type WorkingHour struct {
	ID           int64  `json:"id" db:"id"`
	DealershipID int64  `json:"dealershipId" db:"dealership_id"`
	DayOfWeek    string `json:"dayOfWeek" db:"day_of_week"`
	OpenTime     string `json:"openTime" db:"open_time"`
	CloseTime    string `json:"closeTime" db:"close_time"`
	IsOpen       bool   `json:"isOpen" db:"is_open"`
}

// ValidDayOfWeek reports whether day is one of the seven uppercase day
// names used by the working_hours table.
func ValidDayOfWeek(day string) bool {
	switch day {
	case "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY":
		return true
	}
	return false
}

// DefaultWorkingHours returns the schedule seeded when the dealership
// record is first created: weekdays 09-18, Saturday 10-16, Sunday closed.
func DefaultWorkingHours() []WorkingHour {
	weekdays := []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}
	hours := make([]WorkingHour, 0, 7)
	for _, day := range weekdays {
		hours = append(hours, WorkingHour{DayOfWeek: day, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true})
	}
	hours = append(hours,
		WorkingHour{DayOfWeek: "SATURDAY", OpenTime: "10:00", CloseTime: "16:00", IsOpen: true},
		WorkingHour{DayOfWeek: "SUNDAY", OpenTime: "10:00", CloseTime: "16:00", IsOpen: false},
	)
	return hours
}
