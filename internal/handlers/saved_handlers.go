package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ToggleSavedCar is the handler for POST /v1/cars/:id/save. A second
// toggle on the same car removes it, so the endpoint is its own undo.
func (h *Handlers) ToggleSavedCar(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}
	carID := c.Param("id")

	var exists int
	err := h.DB.QueryRow("SELECT 1 FROM cars WHERE id = ?", carID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Car not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error"})
		return
	}

	result, err := h.DB.Exec(
		"DELETE FROM user_saved_cars WHERE user_id = ? AND car_id = ?",
		actor.UserID, carID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update saved cars"})
		return
	}
	if n, _ := result.RowsAffected(); n > 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"saved": false, "message": "Car removed from favorites"},
		})
		return
	}

	_, err = h.DB.Exec(
		"INSERT INTO user_saved_cars (user_id, car_id, created_at) VALUES (?, ?, ?)",
		actor.UserID, carID, time.Now(),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save car"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"saved": true, "message": "Car added to favorites"},
	})
}

// GetSavedCars is the handler for GET /v1/saved-cars, newest save first.
func (h *Handlers) GetSavedCars(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT c.id, c.make, c.model, c.year, c.price, c.mileage, c.color,
			c.fuel_type, c.transmission, c.body_type, c.seats, c.description,
			c.status, c.featured, c.slug, c.images, c.created_at, c.updated_at
		FROM user_saved_cars s
		JOIN cars c ON c.id = s.car_id
		WHERE s.user_id = ?
		ORDER BY s.created_at DESC, c.id ASC`, actor.UserID)
	if err != nil {
		h.Log.Errorw("saved cars query failed", "userID", actor.UserID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}
	defer rows.Close()

	cars, err := scanCarRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to scan car row"})
		return
	}
	for _, car := range cars {
		car.Wishlisted = true
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cars})
}
