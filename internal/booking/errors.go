package booking

import (
	"errors"
)

// Sentinel errors for the booking lifecycle and the rest of the core
// operations. Handlers translate these into HTTP status codes; raw store
// errors never reach the caller.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("booking not found")
	ErrCarUnavailable   = errors.New("car is not available for test drive")
	ErrSlotConflict     = errors.New("this time slot is already booked. Please select another time")
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrAlreadyCompleted = errors.New("booking is already completed")
	ErrAlreadyNoShow    = errors.New("booking was marked as a no-show")
	ErrInvalidSlot      = errors.New("invalid booking slot: times must be HH:MM with end after start")
)
