package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/shared/errors"
)

// ParseIDParam reads a positive numeric id from the named path parameter.
// entityName is used in the error message, e.g. "ticket".
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid " + entityName + " ID")
	}
	return uint(id), nil
}
