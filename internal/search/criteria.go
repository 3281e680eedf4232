package search

import (
	"math"
)

// Sort orders understood by the listing endpoints.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "priceAsc"
	SortPriceDesc = "priceDesc"
)

// DefaultLimit is the page size used when the caller does not ask for one.
const DefaultLimit = 6

// Criteria is the immutable filter value consumed by Build. Optional
// filters are empty strings; MaxPrice <= 0 means "no upper bound".
type Criteria struct {
	Search       string
	Make         string
	BodyType     string
	FuelType     string
	Transmission string
	MinPrice     float64
	MaxPrice     float64
	SortBy       string
	Page         int
	Limit        int
}

// Normalize clamps a raw criteria value into something safe to query
// with: page >= 1, a positive limit, a non-negative price floor and a
// known sort order. Unknown sort values fall back to newest.
func (c Criteria) Normalize() Criteria {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.MinPrice < 0 {
		c.MinPrice = 0
	}
	if c.MaxPrice < 0 || math.IsInf(c.MaxPrice, 1) {
		c.MaxPrice = 0
	}
	switch c.SortBy {
	case SortPriceAsc, SortPriceDesc, SortNewest:
	default:
		c.SortBy = SortNewest
	}
	return c
}

// Offset returns the number of rows to skip for the requested page.
func (c Criteria) Offset() int {
	return (c.Page - 1) * c.Limit
}

// Pages computes the total page count for a matching-row total.
func (c Criteria) Pages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + c.Limit - 1) / c.Limit
}
