package booking

import (
	"regexp"
	"time"
)

// Actor identifies the caller of a booking operation. Every operation
// takes the actor explicitly; nothing is read from ambient state.
type Actor struct {
	UserID int64
	Admin  bool
}

// CancelGuard decides whether actor may cancel a booking currently in
// status held by ownerID. Only the original requester or an admin may
// cancel, and terminal bookings stay terminal. Each terminal state
// reports a distinct error so the caller sees why nothing changed.
func CancelGuard(ownerID int64, status Status, actor Actor) error {
	if actor.UserID != ownerID && !actor.Admin {
		return ErrUnauthorized
	}
	switch status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrAlreadyCompleted
	case StatusNoShow:
		return ErrAlreadyNoShow
	}
	return nil
}

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateSlot checks the booking request inputs before any write is
// attempted: a parseable date and HH:MM times with the end after the
// start.
func ValidateSlot(bookingDate string, startTime, endTime string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", bookingDate)
	if err != nil {
		return time.Time{}, err
	}
	if !timeOfDayRe.MatchString(startTime) || !timeOfDayRe.MatchString(endTime) {
		return time.Time{}, ErrInvalidSlot
	}
	if endTime <= startTime {
		return time.Time{}, ErrInvalidSlot
	}
	return date, nil
}
