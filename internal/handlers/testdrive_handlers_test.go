package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vehiql/vehiql-golang/internal/models"
)

func newBookingHandlers(t *testing.T) (*Handlers, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Handlers{DB: db, Log: zap.NewNop().Sugar()}, mock
}

func postBooking(h *Handlers, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodPost, "/v1/test-drives", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("userID", int64(7))
	c.Set("userRole", models.RoleUser)

	h.BookTestDrive(c)
	return w
}

const bookingBody = `{"carId":1,"bookingDate":"2026-09-01","startTime":"10:00","endTime":"11:00"}`

func expectCarLock(mock sqlmock.Sqlmock, status string) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM cars WHERE id = ? FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(status))
}

func TestBookTestDriveSlotConflict(t *testing.T) {
	h, mock := newBookingHandlers(t)

	mock.ExpectBegin()
	expectCarLock(mock, models.CarStatusAvailable)
	// A live booking already holds the slot. No insert may follow.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM test_drive_bookings")).
		WithArgs(
			int64(1), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "10:00",
			"PENDING", "CONFIRMED",
		).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	w := postBooking(h, bookingBody)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already booked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTestDriveFreeSlot(t *testing.T) {
	h, mock := newBookingHandlers(t)

	mock.ExpectBegin()
	expectCarLock(mock, models.CarStatusAvailable)
	// Only PENDING/CONFIRMED rows count: a cancelled booking for the same
	// slot leaves the count at zero and the slot free.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM test_drive_bookings")).
		WithArgs(
			int64(1), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "10:00",
			"PENDING", "CONFIRMED",
		).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO test_drive_bookings")).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	w := postBooking(h, bookingBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"PENDING"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTestDriveCarUnavailable(t *testing.T) {
	h, mock := newBookingHandlers(t)

	mock.ExpectBegin()
	expectCarLock(mock, models.CarStatusSold)
	mock.ExpectRollback()

	w := postBooking(h, bookingBody)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "not available")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookTestDriveRejectsBadSlot(t *testing.T) {
	h, mock := newBookingHandlers(t)

	w := postBooking(h, `{"carId":1,"bookingDate":"2026-09-01","startTime":"11:00","endTime":"10:00"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "validation failures never reach the database")
}
