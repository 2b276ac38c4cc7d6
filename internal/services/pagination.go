package services

import (
	"math"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination is a normalized page window.
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads raw query values. Missing, non-numeric or
// non-positive values fall back to the defaults instead of failing, and
// limit is clamped to maxLimit.
func ParsePagination(page, limit string) Pagination {
	p := Pagination{Page: defaultPage, Limit: defaultLimit}
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
		p.Limit = min(n, maxLimit)
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit).
func (p Pagination) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}
