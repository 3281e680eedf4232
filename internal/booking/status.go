package booking

// Status of a test-drive booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

// ParseStatus validates a raw status value coming from a request.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Live reports whether a booking in this status still holds its slot.
// Only live bookings block a (car, date, startTime) slot.
func (s Status) Live() bool {
	return s == StatusPending || s == StatusConfirmed
}

// LiveStatuses lists every status for which Live reports true, for
// callers that render the slot-holding set into SQL IN clauses.
func LiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}
