package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vehiql/vehiql-golang/internal/stats"
)

// GetDashboardStats is the handler for GET /v1/admin/dashboard. Both
// snapshots are small projections (a couple of columns per row), so the
// aggregation happens in one pass in stats.Compute rather than in SQL.
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	carRows, err := h.DB.Query("SELECT id, status, featured FROM cars")
	if err != nil {
		h.Log.Errorw("dashboard car snapshot failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}
	defer carRows.Close()

	var cars []stats.CarSnapshot
	for carRows.Next() {
		var s stats.CarSnapshot
		if err := carRows.Scan(&s.ID, &s.Status, &s.Featured); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to scan car row"})
			return
		}
		cars = append(cars, s)
	}
	if err := carRows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}

	bookingRows, err := h.DB.Query("SELECT car_id, status FROM test_drive_bookings")
	if err != nil {
		h.Log.Errorw("dashboard booking snapshot failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}
	defer bookingRows.Close()

	var bookings []stats.BookingSnapshot
	for bookingRows.Next() {
		var s stats.BookingSnapshot
		if err := bookingRows.Scan(&s.CarID, &s.Status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to scan booking row"})
			return
		}
		bookings = append(bookings, s)
	}
	if err := bookingRows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats.Compute(cars, bookings)})
}
