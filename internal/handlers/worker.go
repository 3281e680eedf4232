package handlers

import (
	"github.com/vehiql/vehiql-golang/internal/booking"
)

// ProcessOverdueBookings sweeps bookings whose date has passed while they
// were still PENDING or CONFIRMED and marks them NO_SHOW. Runs on a
// ticker from main.
func (h *Handlers) ProcessOverdueBookings() {
	inList, statusArgs := liveStatusArgs()
	args := append([]interface{}{string(booking.StatusNoShow)}, statusArgs...)

	result, err := h.DB.Exec(`
		UPDATE test_drive_bookings
		SET status = ?, updated_at = NOW()
		WHERE booking_date < CURDATE() AND status IN (`+inList+`)`, args...,
	)
	if err != nil {
		h.Log.Errorw("overdue booking sweep failed", "err", err)
		return
	}

	if n, _ := result.RowsAffected(); n > 0 {
		h.Log.Infow("marked overdue bookings as no-show", "count", n)
	}
}
