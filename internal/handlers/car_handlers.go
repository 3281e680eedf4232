package handlers

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/vehiql/vehiql-golang/internal/models"
)

type CreateCarInput struct {
	Make         string  `json:"make" binding:"required"`
	Model        string  `json:"model" binding:"required"`
	Year         int     `json:"year" binding:"required,gte=1900"`
	Price        float64 `json:"price" binding:"gte=0"`
	Mileage      int     `json:"mileage" binding:"gte=0"`
	Color        string  `json:"color" binding:"required"`
	FuelType     string  `json:"fuelType" binding:"required"`
	Transmission string  `json:"transmission" binding:"required"`
	BodyType     string  `json:"bodyType" binding:"required"`
	Seats        *int    `json:"seats" binding:"omitempty,gt=0"`
	Description  string  `json:"description"`
	Featured     bool    `json:"featured"`

	// Either base64 data URIs from the intake form or already-hosted
	// URLs. Data URIs are pushed to object storage first.
	Images []string `json:"images" binding:"required,min=1"`
}

// CreateCar is the handler for POST /v1/admin/cars. Data-URI images are
// uploaded to object storage under a fresh batch id before the row is
// written, so a failed upload never leaves a listing with broken links.
func (h *Handlers) CreateCar(c *gin.Context) {
	var input CreateCarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	status := strings.ToUpper(c.DefaultQuery("status", models.CarStatusAvailable))
	if !models.ValidCarStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid car status"})
		return
	}

	batchID := uuid.New().String()
	imageURLs := make([]string, 0, len(input.Images))
	for i, img := range input.Images {
		if !strings.HasPrefix(img, "data:") {
			imageURLs = append(imageURLs, img)
			continue
		}
		data, mimeType, err := decodeDataURI(img)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Invalid image %d: %v", i, err)})
			return
		}
		publicID := fmt.Sprintf("%s/image-%d", batchID, i)
		url, err := h.Storage.UploadImage(c.Request.Context(), data, mimeType, publicID)
		if err != nil {
			h.Log.Errorw("image upload failed", "publicID", publicID, "err", err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to upload image"})
			return
		}
		imageURLs = append(imageURLs, url)
	}

	imagesJSON, _ := json.Marshal(imageURLs)
	carSlug := fmt.Sprintf("%s-%s", slug.Make(fmt.Sprintf("%s %s %d", input.Make, input.Model, input.Year)), batchID[:8])

	now := time.Now()
	result, err := h.DB.Exec(`
		INSERT INTO cars
		(make, model, year, price, mileage, color, fuel_type, transmission,
		body_type, seats, description, status, featured, slug, images,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Make, input.Model, input.Year, input.Price, input.Mileage,
		input.Color, input.FuelType, input.Transmission, input.BodyType,
		input.Seats, input.Description, status, input.Featured, carSlug,
		string(imagesJSON), now, now,
	)
	if err != nil {
		h.Log.Errorw("car insert failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create car"})
		return
	}
	carID, _ := result.LastInsertId()

	h.Cache.Invalidate(c.Request.Context(), filtersCacheKey, featuredCacheKey)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"id": carID, "slug": carSlug, "images": imageURLs},
	})
}

type UpdateCarInput struct {
	Status   *string  `json:"status"`
	Featured *bool    `json:"featured"`
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
}

// UpdateCar is the handler for PATCH /v1/admin/cars/:id. Only the
// status, featured and price toggles mutate after intake.
func (h *Handlers) UpdateCar(c *gin.Context) {
	carID := c.Param("id")

	var input UpdateCarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if input.Status == nil && input.Featured == nil && input.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Nothing to update"})
		return
	}

	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	if input.Status != nil {
		status := strings.ToUpper(*input.Status)
		if !models.ValidCarStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid car status"})
			return
		}
		querySet += ", status = ?"
		queryArgs = append(queryArgs, status)
	}
	if input.Featured != nil {
		querySet += ", featured = ?"
		queryArgs = append(queryArgs, *input.Featured)
	}
	if input.Price != nil {
		querySet += ", price = ?"
		queryArgs = append(queryArgs, *input.Price)
	}
	queryArgs = append(queryArgs, carID)

	result, err := h.DB.Exec("UPDATE cars SET "+querySet+" WHERE id = ?", queryArgs...)
	if err != nil {
		h.Log.Errorw("car update failed", "carID", carID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update car"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Car not found"})
		return
	}

	h.Cache.Invalidate(c.Request.Context(), filtersCacheKey, featuredCacheKey)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": carID}})
}

// DeleteCar is the handler for DELETE /v1/admin/cars/:id. Cars with
// test-drive history are never hard-deleted; mark them UNAVAILABLE
// instead. Stored images are cascade-cleaned before the row goes.
func (h *Handlers) DeleteCar(c *gin.Context) {
	carID := c.Param("id")

	var bookingCount int
	err := h.DB.QueryRow("SELECT COUNT(*) FROM test_drive_bookings WHERE car_id = ?", carID).Scan(&bookingCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error checking bookings"})
		return
	}
	if bookingCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "Car has test-drive history and cannot be deleted. Set its status to UNAVAILABLE instead.",
		})
		return
	}

	var dbImages []byte
	err = h.DB.QueryRow("SELECT images FROM cars WHERE id = ?", carID).Scan(&dbImages)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Car not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error loading car"})
		return
	}

	var images []string
	if len(dbImages) > 0 {
		json.Unmarshal(dbImages, &images)
	}
	for _, url := range images {
		if err := h.Storage.DeleteImage(c.Request.Context(), url); err != nil {
			// Keep going: an orphaned object is better than a stuck delete.
			h.Log.Warnw("image cleanup failed", "url", url, "err", err)
		}
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM user_saved_cars WHERE car_id = ?", carID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to clear saved cars"})
		return
	}
	if _, err := tx.Exec("DELETE FROM cars WHERE id = ?", carID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete car"})
		return
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to commit deletion"})
		return
	}

	h.Cache.Invalidate(c.Request.Context(), filtersCacheKey, featuredCacheKey)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": carID}})
}

// GetAdminCars is the handler for GET /v1/admin/cars: the full inventory
// across all statuses with an optional search and status filter.
func (h *Handlers) GetAdminCars(c *gin.Context) {
	statusFilter := strings.ToUpper(c.Query("status"))
	searchTerm := c.Query("search")

	var b strings.Builder
	b.WriteString(`
		SELECT id, make, model, year, price, mileage, color, fuel_type,
			transmission, body_type, seats, description, status, featured, slug,
			images, created_at, updated_at
		FROM cars WHERE 1=1`)
	var args []interface{}

	if statusFilter != "" {
		if !models.ValidCarStatus(statusFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid car status"})
			return
		}
		b.WriteString(" AND status = ?")
		args = append(args, statusFilter)
	}
	if searchTerm != "" {
		b.WriteString(" AND (make LIKE ? OR model LIKE ? OR description LIKE ?)")
		term := "%" + searchTerm + "%"
		args = append(args, term, term, term)
	}
	b.WriteString(" ORDER BY created_at DESC, id ASC")

	rows, err := h.DB.Query(b.String(), args...)
	if err != nil {
		h.Log.Errorw("admin cars query failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}
	defer rows.Close()

	cars, err := scanCarRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to scan car row"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cars})
}

// decodeDataURI splits "data:<mime>;base64,<payload>" into bytes + mime.
func decodeDataURI(uri string) ([]byte, string, error) {
	header, payload, found := strings.Cut(uri, ",")
	if !found {
		return nil, "", fmt.Errorf("not a data URI")
	}
	mimeType := "image/jpeg"
	if meta := strings.TrimPrefix(header, "data:"); meta != header {
		mimeType = strings.TrimSuffix(strings.SplitN(meta, ";", 2)[0], ",")
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 payload: %w", err)
	}
	return data, mimeType, nil
}
