package search

import (
	"strings"

	"github.com/vehiql/vehiql-golang/internal/models"
)

// carColumns is the projection shared by the listing queries.
const carColumns = `id, make, model, year, price, mileage, color, fuel_type,
	transmission, body_type, seats, description, status, featured, slug,
	images, created_at, updated_at`

// Build renders the normalized criteria into a SELECT over the cars
// table plus its argument list. Only AVAILABLE cars match; ties are
// broken by id so pagination stays deterministic across pages.
func Build(c Criteria) (string, []interface{}) {
	where, args := buildWhere(c)

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(carColumns)
	b.WriteString(" FROM cars")
	b.WriteString(where)

	switch c.SortBy {
	case SortPriceAsc:
		b.WriteString(" ORDER BY price ASC, id ASC")
	case SortPriceDesc:
		b.WriteString(" ORDER BY price DESC, id ASC")
	default:
		b.WriteString(" ORDER BY created_at DESC, id ASC")
	}

	b.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, c.Limit, c.Offset())

	return b.String(), args
}

// BuildCount renders the pre-pagination COUNT query for the same filter.
func BuildCount(c Criteria) (string, []interface{}) {
	where, args := buildWhere(c)
	return "SELECT COUNT(*) FROM cars" + where, args
}

func buildWhere(c Criteria) (string, []interface{}) {
	var b strings.Builder
	var args []interface{}

	b.WriteString(" WHERE status = ?")
	args = append(args, models.CarStatusAvailable)

	if c.Search != "" {
		b.WriteString(" AND (make LIKE ? OR model LIKE ? OR description LIKE ?)")
		term := "%" + c.Search + "%"
		args = append(args, term, term, term)
	}
	if c.Make != "" {
		b.WriteString(" AND LOWER(make) = LOWER(?)")
		args = append(args, c.Make)
	}
	if c.BodyType != "" {
		b.WriteString(" AND LOWER(body_type) = LOWER(?)")
		args = append(args, c.BodyType)
	}
	if c.FuelType != "" {
		b.WriteString(" AND LOWER(fuel_type) = LOWER(?)")
		args = append(args, c.FuelType)
	}
	if c.Transmission != "" {
		b.WriteString(" AND LOWER(transmission) = LOWER(?)")
		args = append(args, c.Transmission)
	}
	if c.MinPrice > 0 {
		b.WriteString(" AND price >= ?")
		args = append(args, c.MinPrice)
	}
	if c.MaxPrice > 0 {
		b.WriteString(" AND price <= ?")
		args = append(args, c.MaxPrice)
	}

	return b.String(), args
}
