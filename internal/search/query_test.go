package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehiql/vehiql-golang/internal/models"
)

func TestBuildBareCriteria(t *testing.T) {
	query, args := Build(Criteria{}.Normalize())

	assert.Contains(t, query, "WHERE status = ?")
	assert.Contains(t, query, "ORDER BY created_at DESC, id ASC")
	assert.Contains(t, query, "LIMIT ? OFFSET ?")

	// status, limit, offset and nothing else
	require.Len(t, args, 3)
	assert.Equal(t, models.CarStatusAvailable, args[0])
	assert.Equal(t, DefaultLimit, args[1])
	assert.Equal(t, 0, args[2])
}

func TestBuildSearchTerm(t *testing.T) {
	query, args := Build(Criteria{Search: "civic"}.Normalize())

	assert.Contains(t, query, "make LIKE ? OR model LIKE ? OR description LIKE ?")
	require.Len(t, args, 6)
	assert.Equal(t, "%civic%", args[1])
	assert.Equal(t, "%civic%", args[2])
	assert.Equal(t, "%civic%", args[3])
}

func TestBuildEqualityFilters(t *testing.T) {
	query, args := Build(Criteria{
		Make:         "Honda",
		BodyType:     "SUV",
		FuelType:     "Petrol",
		Transmission: "Automatic",
	}.Normalize())

	assert.Contains(t, query, "LOWER(make) = LOWER(?)")
	assert.Contains(t, query, "LOWER(body_type) = LOWER(?)")
	assert.Contains(t, query, "LOWER(fuel_type) = LOWER(?)")
	assert.Contains(t, query, "LOWER(transmission) = LOWER(?)")
	assert.Equal(t, []interface{}{
		models.CarStatusAvailable, "Honda", "SUV", "Petrol", "Automatic",
		DefaultLimit, 0,
	}, args)
}

func TestBuildPriceBounds(t *testing.T) {
	query, args := Build(Criteria{MinPrice: 5000, MaxPrice: 20000}.Normalize())
	assert.Contains(t, query, "price >= ?")
	assert.Contains(t, query, "price <= ?")
	assert.Contains(t, args, 5000.0)
	assert.Contains(t, args, 20000.0)

	// zero bounds are elided entirely
	query, args = Build(Criteria{}.Normalize())
	assert.NotContains(t, query, "price >=")
	assert.NotContains(t, query, "price <=")
	require.Len(t, args, 3)
}

func TestBuildSortOrders(t *testing.T) {
	query, _ := Build(Criteria{SortBy: SortPriceAsc}.Normalize())
	assert.Contains(t, query, "ORDER BY price ASC, id ASC")

	query, _ = Build(Criteria{SortBy: SortPriceDesc}.Normalize())
	assert.Contains(t, query, "ORDER BY price DESC, id ASC")

	query, _ = Build(Criteria{SortBy: SortNewest}.Normalize())
	assert.Contains(t, query, "ORDER BY created_at DESC, id ASC")
}

func TestBuildPagination(t *testing.T) {
	_, args := Build(Criteria{Page: 3, Limit: 10}.Normalize())

	require.GreaterOrEqual(t, len(args), 2)
	assert.Equal(t, 10, args[len(args)-2])
	assert.Equal(t, 20, args[len(args)-1])
}

func TestBuildCountSharesFilter(t *testing.T) {
	criteria := Criteria{Search: "tesla", Make: "Tesla", MinPrice: 100}.Normalize()

	countQuery, countArgs := BuildCount(criteria)
	_, args := Build(criteria)

	assert.True(t, strings.HasPrefix(countQuery, "SELECT COUNT(*) FROM cars"))
	assert.NotContains(t, countQuery, "LIMIT")
	assert.NotContains(t, countQuery, "ORDER BY")

	// same WHERE args, minus the trailing limit/offset pair
	assert.Equal(t, countArgs, args[:len(args)-2])
}
