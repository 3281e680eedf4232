package booking

// allowTransition is the directed graph of permitted status changes.
// Terminal states have no outgoing edges.
var allowTransition = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// CanTransition reports whether from -> to is a permitted status change.
// A no-op transition (from == to) is always permitted.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	allowed, ok := allowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Transition validates a status change. With force set, any change between
// known statuses is accepted; this is the admin override used by the
// dashboard. Without force, the transition table applies and terminal
// states are closed.
func Transition(from, to Status, force bool) error {
	if _, err := ParseStatus(string(to)); err != nil {
		return err
	}
	if force {
		return nil
	}
	if !CanTransition(from, to) {
		return ErrInvalidStatus
	}
	return nil
}
