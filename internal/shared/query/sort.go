// Package query parses list query options against per-resource allow-lists.
package query

import (
	"strings"

	"github.com/garagehq/repairshop/internal/shared/errors"
)

// Sort is a validated ORDER BY column and direction.
type Sort struct {
	Column string
	Desc   bool
}

// Clause renders the sort for gorm's Order.
func (s Sort) Clause() string {
	if s.Desc {
		return s.Column + " DESC"
	}
	return s.Column + " ASC"
}

// ParseSort maps a client field name through allowed to a column. Empty
// input yields def. Unknown fields and directions are validation errors.
func ParseSort(sortBy, sortOrder string, allowed map[string]string, def Sort) (Sort, error) {
	s := def
	if sortBy != "" {
		column, ok := allowed[strings.ToLower(sortBy)]
		if !ok {
			return Sort{}, errors.NewValidationError("invalid sort_by", "unsupported field "+sortBy)
		}
		s.Column = column
	}

	switch strings.ToLower(sortOrder) {
	case "":
	case "asc":
		s.Desc = false
	case "desc":
		s.Desc = true
	default:
		return Sort{}, errors.NewValidationError("invalid sort_order", "must be asc or desc")
	}
	return s, nil
}
