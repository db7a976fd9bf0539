package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/shared/constants"
	"github.com/garagehq/repairshop/internal/shared/errors"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ValidatePagination normalizes page and limit: values below 1 fall back to
// the defaults and limit is capped at MaxPageSize.
func ValidatePagination(page, limit int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	return Pagination{Page: page, Limit: limit}
}

// ParsePagination reads page and limit from the query string. Non-numeric
// values are rejected; out-of-range values are normalized.
func ParsePagination(c *gin.Context) (Pagination, error) {
	page, err := parseQueryInt(c, "page", constants.DefaultPage)
	if err != nil {
		return Pagination{}, err
	}
	limit, err := parseQueryInt(c, "limit", constants.DefaultPageSize)
	if err != nil {
		return Pagination{}, err
	}
	return ValidatePagination(page, limit), nil
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) (int, error) {
	val := c.Query(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.NewValidationError("invalid query parameter", key+" must be an integer")
	}
	return n, nil
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
