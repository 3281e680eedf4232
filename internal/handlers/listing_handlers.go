package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vehiql/vehiql-golang/internal/models"
	"github.com/vehiql/vehiql-golang/internal/search"
)

const (
	filtersCacheKey  = "cars:filters"
	featuredCacheKey = "cars:featured"
	listingCacheTTL  = 5 * time.Minute

	// Sentinel upper price bound reported when the inventory is empty.
	emptyPriceMax = 100000

	defaultFeaturedLimit = 4
)

// SearchCars is the handler for GET /v1/cars. All filters arrive as
// query parameters; the viewer (when authenticated via OptionalAuth)
// only influences the wishlisted annotation, never the result set.
func (h *Handlers) SearchCars(c *gin.Context) {
	criteria := search.Criteria{
		Search:       c.Query("search"),
		Make:         c.Query("make"),
		BodyType:     c.Query("bodyType"),
		FuelType:     c.Query("fuelType"),
		Transmission: c.Query("transmission"),
		MinPrice:     queryFloat(c, "minPrice"),
		MaxPrice:     queryFloat(c, "maxPrice"),
		SortBy:       c.Query("sortBy"),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
	}.Normalize()

	countQuery, countArgs := search.BuildCount(criteria)
	var total int
	if err := h.DB.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		h.Log.Errorw("car count failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}

	query, args := search.Build(criteria)
	rows, err := h.DB.Query(query, args...)
	if err != nil {
		h.Log.Errorw("car search failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}
	defer rows.Close()

	cars, err := scanCarRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to scan car row"})
		return
	}

	if actor, ok := currentActor(c); ok {
		saved, err := h.savedCarIDs(actor.UserID)
		if err == nil {
			search.Annotate(cars, saved)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cars,
		"pagination": gin.H{
			"total": total,
			"page":  criteria.Page,
			"limit": criteria.Limit,
			"pages": criteria.Pages(total),
		},
	})
}

// CarFilters is the facet payload for the filter controls.
type CarFilters struct {
	Makes         []string `json:"makes"`
	BodyTypes     []string `json:"bodyTypes"`
	FuelTypes     []string `json:"fuelTypes"`
	Transmissions []string `json:"transmissions"`
	PriceRange    struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"priceRange"`
}

// GetCarFilters is the handler for GET /v1/cars/filters. Facets come
// from the AVAILABLE inventory only and sit behind a short Redis TTL.
func (h *Handlers) GetCarFilters(c *gin.Context) {
	var filters CarFilters
	if h.Cache.GetJSON(c.Request.Context(), filtersCacheKey, &filters) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": filters})
		return
	}

	facets := []struct {
		column string
		dest   *[]string
	}{
		{"make", &filters.Makes},
		{"body_type", &filters.BodyTypes},
		{"fuel_type", &filters.FuelTypes},
		{"transmission", &filters.Transmissions},
	}
	for _, f := range facets {
		values, err := h.distinctFacet(f.column)
		if err != nil {
			h.Log.Errorw("facet query failed", "column", f.column, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
			return
		}
		*f.dest = values
	}

	err := h.DB.QueryRow(`
		SELECT COALESCE(MIN(price), 0), COALESCE(MAX(price), ?)
		FROM cars WHERE status = ?`, emptyPriceMax, models.CarStatusAvailable,
	).Scan(&filters.PriceRange.Min, &filters.PriceRange.Max)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}

	h.Cache.SetJSON(c.Request.Context(), filtersCacheKey, filters, listingCacheTTL)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": filters})
}

func (h *Handlers) distinctFacet(column string) ([]string, error) {
	// column is one of four fixed identifiers, never user input.
	query := fmt.Sprintf("SELECT DISTINCT %s FROM cars WHERE status = ?", column)
	rows, err := h.DB.Query(query, models.CarStatusAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return search.NormalizeFacet(values), nil
}

// GetFeaturedCars is the handler for GET /v1/cars/featured. The default
// four-car homepage strip sits behind the same short cache TTL as the
// facets; custom limits always hit the database.
func (h *Handlers) GetFeaturedCars(c *gin.Context) {
	limit := queryInt(c, "limit")
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	if limit == defaultFeaturedLimit {
		var cached []*models.Car
		if h.Cache.GetJSON(c.Request.Context(), featuredCacheKey, &cached) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": cached})
			return
		}
	}

	rows, err := h.DB.Query(`
		SELECT id, make, model, year, price, mileage, color, fuel_type,
			transmission, body_type, seats, description, status, featured, slug,
			images, created_at, updated_at
		FROM cars
		WHERE featured = TRUE AND status = ?
		ORDER BY created_at DESC, id ASC
		LIMIT ?`, models.CarStatusAvailable, limit)
	if err != nil {
		h.Log.Errorw("featured cars query failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}
	defer rows.Close()

	cars, err := scanCarRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to scan car row"})
		return
	}

	if limit == defaultFeaturedLimit {
		h.Cache.SetJSON(c.Request.Context(), featuredCacheKey, cars, listingCacheTTL)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cars})
}

// GetCar is the handler for GET /v1/cars/:id.
func (h *Handlers) GetCar(c *gin.Context) {
	carID := c.Param("id")

	var car models.Car
	var dbImages []byte
	err := h.DB.QueryRow(`
		SELECT id, make, model, year, price, mileage, color, fuel_type,
			transmission, body_type, seats, description, status, featured, slug,
			images, created_at, updated_at
		FROM cars WHERE id = ?`, carID,
	).Scan(
		&car.ID, &car.Make, &car.Model, &car.Year, &car.Price,
		&car.Mileage, &car.Color, &car.FuelType, &car.Transmission,
		&car.BodyType, &car.Seats, &car.Description, &car.Status,
		&car.Featured, &car.Slug, &dbImages, &car.CreatedAt, &car.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Car not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database query failed"})
		return
	}

	car.Images = []string{}
	if len(dbImages) > 0 {
		json.Unmarshal(dbImages, &car.Images)
	}

	var userTestDrive *models.TestDriveBooking
	if actor, ok := currentActor(c); ok {
		var exists int
		err := h.DB.QueryRow(
			"SELECT 1 FROM user_saved_cars WHERE user_id = ? AND car_id = ?",
			actor.UserID, car.ID,
		).Scan(&exists)
		car.Wishlisted = err == nil

		// The viewer's live booking for this car, if any, so the detail
		// page can show "test drive booked" instead of the booking form.
		var td models.TestDriveBooking
		err = h.DB.QueryRow(`
			SELECT id, car_id, user_id, booking_date, start_time, end_time, status
			FROM test_drive_bookings
			WHERE car_id = ? AND user_id = ? AND status IN ('PENDING', 'CONFIRMED')
			ORDER BY booking_date ASC, start_time ASC LIMIT 1`,
			car.ID, actor.UserID,
		).Scan(&td.ID, &td.CarID, &td.UserID, &td.BookingDate, &td.StartTime, &td.EndTime, &td.Status)
		if err == nil {
			userTestDrive = &td
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": car, "userTestDrive": userTestDrive})
}

func queryInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(c.Query(key))
	return v
}

func queryFloat(c *gin.Context, key string) float64 {
	v, _ := strconv.ParseFloat(c.Query(key), 64)
	return v
}
