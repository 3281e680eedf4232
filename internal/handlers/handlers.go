package handlers

import (
	"database/sql"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vehiql/vehiql-golang/internal/ai"
	"github.com/vehiql/vehiql-golang/internal/booking"
	"github.com/vehiql/vehiql-golang/internal/cache"
	"github.com/vehiql/vehiql-golang/internal/models"
	"github.com/vehiql/vehiql-golang/internal/storage"
)

// Handlers holds all dependencies shared by the request handlers.
type Handlers struct {
	DB        *sql.DB
	AIService *ai.AIService
	Storage   *storage.Service
	Cache     *cache.Cache
	Log       *zap.SugaredLogger
	JWTSecret []byte
}

// currentActor reads the authenticated caller out of the request context
// once; everything below the handler takes it as an explicit value.
func currentActor(c *gin.Context) (booking.Actor, bool) {
	userIDRaw, exists := c.Get("userID")
	if !exists {
		return booking.Actor{}, false
	}
	return booking.Actor{
		UserID: userIDRaw.(int64),
		Admin:  c.GetString("userRole") == models.RoleAdmin,
	}, true
}

// scanCarRows scans rows from a query using the shared car projection
// (see search.Build) into car models, decoding the images JSON column.
func scanCarRows(rows *sql.Rows) ([]*models.Car, error) {
	var cars []*models.Car
	for rows.Next() {
		var car models.Car
		var dbImages []byte

		if err := rows.Scan(
			&car.ID, &car.Make, &car.Model, &car.Year, &car.Price,
			&car.Mileage, &car.Color, &car.FuelType, &car.Transmission,
			&car.BodyType, &car.Seats, &car.Description, &car.Status,
			&car.Featured, &car.Slug, &dbImages,
			&car.CreatedAt, &car.UpdatedAt,
		); err != nil {
			return nil, err
		}

		car.Images = []string{}
		if len(dbImages) > 0 {
			json.Unmarshal(dbImages, &car.Images)
		}
		cars = append(cars, &car)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cars == nil {
		cars = []*models.Car{}
	}
	return cars, nil
}

// savedCarIDs fetches the viewer's wishlist as a set for annotation.
func (h *Handlers) savedCarIDs(userID int64) (map[int64]bool, error) {
	rows, err := h.DB.Query("SELECT car_id FROM user_saved_cars WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	saved := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		saved[id] = true
	}
	return saved, rows.Err()
}
