package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/shared/constants"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

// PermissionChecker answers whether a role may perform action on resource.
type PermissionChecker interface {
	Allowed(role, resource, action string) (bool, error)
}

// RequirePermission aborts with 403 unless the authenticated employee's role
// is granted action on resource. It must run after the auth middleware.
func RequirePermission(checker PermissionChecker, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyEmployeeRole)
		if role == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
			c.Abort()
			return
		}

		ok, err := checker.Allowed(role, resource, action)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("insufficient permissions", resource+":"+action))
			c.Abort()
			return
		}
		c.Next()
	}
}
