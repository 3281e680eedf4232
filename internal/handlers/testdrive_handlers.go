package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vehiql/vehiql-golang/internal/booking"
	"github.com/vehiql/vehiql-golang/internal/models"
)

type BookTestDriveInput struct {
	CarID       int64  `json:"carId" binding:"required"`
	BookingDate string `json:"bookingDate" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Notes       string `json:"notes"`
}

// BookTestDrive is the handler for POST /v1/test-drives.
//
// The conflict check and the insert form a single admission unit: the
// transaction runs serializable and locks the car row FOR UPDATE, so two
// concurrent requests for the same slot serialize on the car and the
// second one sees the first one's booking.
func (h *Handlers) BookTestDrive(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var input BookTestDriveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	bookingDate, err := booking.ValidateSlot(input.BookingDate, input.StartTime, input.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": booking.ErrInvalidSlot.Error()})
		return
	}

	tx, err := h.DB.BeginTx(c, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	// Lock the car row: serializes concurrent admissions for this car.
	var carStatus string
	err = tx.QueryRow("SELECT status FROM cars WHERE id = ? FOR UPDATE", input.CarID).Scan(&carStatus)
	if err != nil || carStatus != models.CarStatusAvailable {
		if err != nil && err != sql.ErrNoRows {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error checking car"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": booking.ErrCarUnavailable.Error()})
		return
	}

	inList, statusArgs := liveStatusArgs()
	slotArgs := append([]interface{}{input.CarID, bookingDate, input.StartTime}, statusArgs...)

	var liveCount int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM test_drive_bookings
		WHERE car_id = ? AND booking_date = ? AND start_time = ?
		  AND status IN (`+inList+`)`, slotArgs...,
	).Scan(&liveCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error checking slot"})
		return
	}
	if liveCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": booking.ErrSlotConflict.Error()})
		return
	}

	var notes *string
	if input.Notes != "" {
		notes = &input.Notes
	}

	now := time.Now()
	result, err := tx.Exec(`
		INSERT INTO test_drive_bookings
		(car_id, user_id, booking_date, start_time, end_time, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.CarID, actor.UserID, bookingDate, input.StartTime, input.EndTime,
		string(booking.StatusPending), notes, now, now,
	)
	if err != nil {
		h.Log.Errorw("booking insert failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create booking"})
		return
	}
	bookingID, _ := result.LastInsertId()

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to commit booking"})
		return
	}

	b := models.TestDriveBooking{
		ID:          bookingID,
		CarID:       input.CarID,
		UserID:      actor.UserID,
		BookingDate: bookingDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Status:      string(booking.StatusPending),
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": b})
}

// GetMyTestDrives is the handler for GET /v1/test-drives.
func (h *Handlers) GetMyTestDrives(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT b.id, b.car_id, b.user_id, b.booking_date, b.start_time, b.end_time,
			b.status, b.notes, b.created_at, b.updated_at,
			c.make, c.model, c.year, c.price, c.images, c.status
		FROM test_drive_bookings b
		JOIN cars c ON b.car_id = c.id
		WHERE b.user_id = ?
		ORDER BY b.booking_date DESC, b.start_time DESC`, actor.UserID)
	if err != nil {
		h.Log.Errorw("bookings query failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}
	defer rows.Close()

	bookings, err := scanBookingRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to scan booking row"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
}

// CancelTestDrive is the handler for POST /v1/test-drives/:id/cancel.
// Only the original requester or an admin may cancel; terminal bookings
// are left untouched. The row is kept for history (soft delete).
func (h *Handlers) CancelTestDrive(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}
	bookingID := c.Param("id")

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	var ownerID int64
	var status string
	err = tx.QueryRow(
		"SELECT user_id, status FROM test_drive_bookings WHERE id = ? FOR UPDATE", bookingID,
	).Scan(&ownerID, &status)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": booking.ErrNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error loading booking"})
		return
	}

	if err := booking.CancelGuard(ownerID, booking.Status(status), actor); err != nil {
		switch err {
		case booking.ErrUnauthorized:
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	_, err = tx.Exec(
		"UPDATE test_drive_bookings SET status = ?, updated_at = ? WHERE id = ?",
		string(booking.StatusCancelled), time.Now(), bookingID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to cancel booking"})
		return
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to commit cancellation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": bookingID, "status": string(booking.StatusCancelled)}})
}

// GetTestDrives is the handler for GET /v1/admin/test-drives. Supports
// an optional status filter and a free-text search over car and
// customer fields.
func (h *Handlers) GetTestDrives(c *gin.Context) {
	statusFilter := c.Query("status")
	searchTerm := c.Query("search")

	var b strings.Builder
	b.WriteString(`
		SELECT b.id, b.car_id, b.user_id, b.booking_date, b.start_time, b.end_time,
			b.status, b.notes, b.created_at, b.updated_at,
			c.make, c.model, c.year, c.price, c.images, c.status
		FROM test_drive_bookings b
		JOIN cars c ON b.car_id = c.id
		JOIN users u ON b.user_id = u.id
		WHERE 1=1`)
	var args []interface{}

	if statusFilter != "" {
		if _, err := booking.ParseStatus(statusFilter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": booking.ErrInvalidStatus.Error()})
			return
		}
		b.WriteString(" AND b.status = ?")
		args = append(args, statusFilter)
	}
	if searchTerm != "" {
		b.WriteString(" AND (c.make LIKE ? OR c.model LIKE ? OR u.name LIKE ? OR u.email LIKE ?)")
		term := "%" + searchTerm + "%"
		args = append(args, term, term, term, term)
	}
	b.WriteString(" ORDER BY b.booking_date DESC, b.start_time DESC")

	rows, err := h.DB.Query(b.String(), args...)
	if err != nil {
		h.Log.Errorw("admin bookings query failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}
	defer rows.Close()

	bookings, err := scanBookingRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to scan booking row"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateTestDriveStatus is the handler for
// PATCH /v1/admin/test-drives/:id/status. Transitions follow the state
// machine; ?force=true lets an admin override it, e.g. to reopen a
// NO_SHOW marked by mistake.
func (h *Handlers) UpdateTestDriveStatus(c *gin.Context) {
	bookingID := c.Param("id")
	force := c.Query("force") == "true"

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	newStatus, err := booking.ParseStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": booking.ErrInvalidStatus.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRow("SELECT status FROM test_drive_bookings WHERE id = ? FOR UPDATE", bookingID).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": booking.ErrNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error loading booking"})
		return
	}

	if err := booking.Transition(booking.Status(current), newStatus, force); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Cannot change status from " + current + " to " + string(newStatus),
		})
		return
	}

	_, err = tx.Exec(
		"UPDATE test_drive_bookings SET status = ?, updated_at = ? WHERE id = ?",
		string(newStatus), time.Now(), bookingID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update status"})
		return
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to commit status update"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": bookingID, "status": string(newStatus)}})
}

// liveStatusArgs renders the slot-holding statuses into an IN-clause
// placeholder list plus its arguments, so the admission SQL and
// booking.Status.Live can never disagree.
func liveStatusArgs() (string, []interface{}) {
	live := booking.LiveStatuses()
	placeholders := make([]string, len(live))
	args := make([]interface{}, len(live))
	for i, s := range live {
		placeholders[i] = "?"
		args[i] = string(s)
	}
	return strings.Join(placeholders, ", "), args
}

// scanBookingRows scans booking rows joined with their car summary.
func scanBookingRows(rows *sql.Rows) ([]models.TestDriveBooking, error) {
	var bookings []models.TestDriveBooking
	for rows.Next() {
		var b models.TestDriveBooking
		var car models.Car
		var dbImages []byte

		if err := rows.Scan(
			&b.ID, &b.CarID, &b.UserID, &b.BookingDate, &b.StartTime, &b.EndTime,
			&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
			&car.Make, &car.Model, &car.Year, &car.Price, &dbImages, &car.Status,
		); err != nil {
			return nil, err
		}

		car.ID = b.CarID
		car.Images = []string{}
		if len(dbImages) > 0 {
			json.Unmarshal(dbImages, &car.Images)
		}
		b.Car = &car
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.TestDriveBooking{}
	}
	return bookings, nil
}
