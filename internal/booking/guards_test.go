package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelGuardOwner(t *testing.T) {
	err := CancelGuard(7, StatusPending, Actor{UserID: 7})
	assert.NoError(t, err)
}

func TestCancelGuardAdminOverride(t *testing.T) {
	err := CancelGuard(7, StatusConfirmed, Actor{UserID: 99, Admin: true})
	assert.NoError(t, err)
}

func TestCancelGuardStranger(t *testing.T) {
	err := CancelGuard(7, StatusPending, Actor{UserID: 99})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCancelGuardTerminalStates(t *testing.T) {
	owner := Actor{UserID: 7}

	assert.ErrorIs(t, CancelGuard(7, StatusCancelled, owner), ErrAlreadyCancelled)
	assert.ErrorIs(t, CancelGuard(7, StatusCompleted, owner), ErrAlreadyCompleted)
	assert.ErrorIs(t, CancelGuard(7, StatusNoShow, owner), ErrAlreadyNoShow)
}

func TestCancelGuardKeepsTerminalsClosed(t *testing.T) {
	// The guard admits cancellation for exactly the non-terminal statuses.
	for _, status := range []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		guardAllows := CancelGuard(7, status, Actor{UserID: 7}) == nil
		assert.Equal(t, !status.Terminal(), guardAllows, string(status))
	}
}

func TestCancelGuardChecksOwnershipFirst(t *testing.T) {
	// A stranger probing a cancelled booking learns nothing about its state.
	err := CancelGuard(7, StatusCancelled, Actor{UserID: 99})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestValidateSlot(t *testing.T) {
	date, err := ValidateSlot("2026-09-01", "10:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), date)
}

func TestValidateSlotBadDate(t *testing.T) {
	_, err := ValidateSlot("01-09-2026", "10:00", "11:00")
	assert.Error(t, err)
}

func TestValidateSlotBadTimes(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"end before start", "11:00", "10:00"},
		{"zero length", "10:00", "10:00"},
		{"hour out of range", "24:00", "25:00"},
		{"minute out of range", "10:61", "11:00"},
		{"missing leading zero", "9:00", "10:00"},
		{"not a time", "morning", "noon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateSlot("2026-09-01", tc.start, tc.end)
			assert.ErrorIs(t, err, ErrInvalidSlot)
		})
	}
}
