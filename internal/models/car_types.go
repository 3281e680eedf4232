package models

import (
	"time"
)

// Car status values. A car never leaves the table while bookings reference
// it; retirement happens through UNAVAILABLE / SOLD.
const (
	CarStatusAvailable   = "AVAILABLE"
	CarStatusUnavailable = "UNAVAILABLE"
	CarStatusSold        = "SOLD"
)

// ValidCarStatus reports whether s is one of the known car statuses.
func ValidCarStatus(s string) bool {
	switch s {
	case CarStatusAvailable, CarStatusUnavailable, CarStatusSold:
		return true
	}
	return false
}

// Car is the model for the 'cars' table.
// Nullable columns use pointers for clean JSON serialization.
type Car struct {
	ID           int64   `json:"id" db:"id"`
	Make         string  `json:"make" db:"make"`
	Model        string  `json:"model" db:"model"`
	Year         int     `json:"year" db:"year"`
	Price        float64 `json:"price" db:"price"`
	Mileage      int     `json:"mileage" db:"mileage"`
	Color        string  `json:"color" db:"color"`
	FuelType     string  `json:"fuelType" db:"fuel_type"`
	Transmission string  `json:"transmission" db:"transmission"`
	BodyType     string  `json:"bodyType" db:"body_type"`
	Seats        *int    `json:"seats,omitempty" db:"seats"`
	Description  string  `json:"description" db:"description"`
	Status       string  `json:"status" db:"status"`
	Featured     bool    `json:"featured" db:"featured"`
	Slug         string  `json:"slug" db:"slug"`

	// Ordered list of public image URLs, stored as a JSON column.
	Images []string `json:"images"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Populated per viewer, not stored.
	Wishlisted bool `json:"wishlisted" db:"-"`
}
