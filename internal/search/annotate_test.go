package search

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/vehiql/vehiql-golang/internal/models"
)

func TestAnnotate(t *testing.T) {
	cars := []*models.Car{{ID: 1}, {ID: 2}, {ID: 3, Wishlisted: true}}

	Annotate(cars, map[int64]bool{2: true})

	assert.False(t, cars[0].Wishlisted)
	assert.True(t, cars[1].Wishlisted)
	assert.False(t, cars[2].Wishlisted, "stale marks are cleared, not just set")
}

func TestAnnotateEmptySet(t *testing.T) {
	cars := []*models.Car{{ID: 1, Wishlisted: true}}
	Annotate(cars, nil)
	assert.False(t, cars[0].Wishlisted)
}

func TestNormalizeFacet(t *testing.T) {
	got := NormalizeFacet([]string{"honda", "HONDA", " Toyota ", "bmw", "", "toyota"})
	assert.Equal(t, []string{"Bmw", "Honda", "Toyota"}, got)
}

func TestNormalizeFacetMultiWord(t *testing.T) {
	got := NormalizeFacet([]string{"land rover", "LAND ROVER"})
	assert.Equal(t, []string{"Land Rover"}, got)
}

func TestNormalizeFacetMultiByte(t *testing.T) {
	got := NormalizeFacet([]string{"électrique", "ÉLECTRIQUE", "škoda"})
	assert.Equal(t, []string{"Électrique", "Škoda"}, got)
	for _, v := range got {
		assert.True(t, utf8.ValidString(v), v)
	}
}

func TestNormalizeFacetIdempotent(t *testing.T) {
	once := NormalizeFacet([]string{"sedan", "SUV", "Hatchback"})
	twice := NormalizeFacet(once)
	assert.Equal(t, once, twice)
}
