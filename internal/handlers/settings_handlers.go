package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vehiql/vehiql-golang/internal/models"
)

// GetDealershipInfo is the handler for GET /v1/dealership. The dealership
// row is a lazily created singleton: the first read seeds it together
// with the default working hours inside one transaction.
func (h *Handlers) GetDealershipInfo(c *gin.Context) {
	info, err := h.loadOrSeedDealership(c)
	if err != nil {
		h.Log.Errorw("dealership load failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load dealership info"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, day_of_week, open_time, close_time, is_open
		FROM working_hours WHERE dealership_id = ?
		ORDER BY FIELD(day_of_week, 'MONDAY', 'TUESDAY', 'WEDNESDAY',
			'THURSDAY', 'FRIDAY', 'SATURDAY', 'SUNDAY')`, info.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load working hours"})
		return
	}
	defer rows.Close()

	hours := []models.WorkingHour{}
	for rows.Next() {
		var wh models.WorkingHour
		if err := rows.Scan(&wh.ID, &wh.DayOfWeek, &wh.OpenTime, &wh.CloseTime, &wh.IsOpen); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to scan working hours"})
			return
		}
		hours = append(hours, wh)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load working hours"})
		return
	}
	info.WorkingHours = hours

	c.JSON(http.StatusOK, gin.H{"success": true, "data": info})
}

func (h *Handlers) loadOrSeedDealership(c *gin.Context) (*models.DealershipInfo, error) {
	var info models.DealershipInfo
	err := h.DB.QueryRow(`
		SELECT id, name, address, phone, email, created_at, updated_at
		FROM dealership_info ORDER BY id ASC LIMIT 1`,
	).Scan(&info.ID, &info.Name, &info.Address, &info.Phone, &info.Email,
		&info.CreatedAt, &info.UpdatedAt)
	if err == nil {
		return &info, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	tx, err := h.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.Exec(`
		INSERT INTO dealership_info (name, address, phone, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		"Vehiql Motors", "69 Car Street, Autoville, CA 69420",
		"+1 (555) 123-4567", "contact@vehiql.com", now, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, wh := range models.DefaultWorkingHours() {
		_, err := tx.Exec(`
			INSERT INTO working_hours
			(dealership_id, day_of_week, open_time, close_time, is_open, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, wh.DayOfWeek, wh.OpenTime, wh.CloseTime, wh.IsOpen, now, now,
		)
		if err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	info = models.DealershipInfo{
		ID: id, Name: "Vehiql Motors",
		Address: "69 Car Street, Autoville, CA 69420",
		Phone:   "+1 (555) 123-4567", Email: "contact@vehiql.com",
		CreatedAt: now, UpdatedAt: now,
	}
	return &info, nil
}

type WorkingHourInput struct {
	DayOfWeek string `json:"dayOfWeek" binding:"required"`
	OpenTime  string `json:"openTime" binding:"required"`
	CloseTime string `json:"closeTime" binding:"required"`
	IsOpen    bool   `json:"isOpen"`
}

type SaveWorkingHoursInput struct {
	WorkingHours []WorkingHourInput `json:"workingHours" binding:"required,min=1,dive"`
}

// SaveWorkingHours is the handler for PUT /v1/admin/working-hours. The
// schedule is replaced wholesale: delete the old rows, insert the new
// ones, all in one transaction.
func (h *Handlers) SaveWorkingHours(c *gin.Context) {
	var input SaveWorkingHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	for _, wh := range input.WorkingHours {
		if !models.ValidDayOfWeek(strings.ToUpper(wh.DayOfWeek)) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid day of week: " + wh.DayOfWeek})
			return
		}
	}

	info, err := h.loadOrSeedDealership(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load dealership info"})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM working_hours WHERE dealership_id = ?", info.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to clear working hours"})
		return
	}

	now := time.Now()
	for _, wh := range input.WorkingHours {
		_, err := tx.Exec(`
			INSERT INTO working_hours
			(dealership_id, day_of_week, open_time, close_time, is_open, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			info.ID, strings.ToUpper(wh.DayOfWeek), wh.OpenTime, wh.CloseTime, wh.IsOpen, now, now,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save working hours"})
			return
		}
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to commit working hours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"saved": len(input.WorkingHours)}})
}

// GetUsers is the handler for GET /v1/admin/users.
func (h *Handlers) GetUsers(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, role, email, name, image_url, created_at, updated_at
		FROM users ORDER BY created_at DESC, id ASC`)
	if err != nil {
		h.Log.Errorw("users query failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Role, &u.Email, &u.Name, &u.ImageURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to scan user row"})
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

type UpdateUserRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole is the handler for PATCH /v1/admin/users/:id/role.
func (h *Handlers) UpdateUserRole(c *gin.Context) {
	userID := c.Param("id")

	var input UpdateUserRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	role := strings.ToUpper(input.Role)
	if role != models.RoleUser && role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Role must be USER or ADMIN"})
		return
	}

	result, err := h.DB.Exec(
		"UPDATE users SET role = ?, updated_at = ? WHERE id = ?",
		role, time.Now(), userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update role"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": userID, "role": role}})
}
