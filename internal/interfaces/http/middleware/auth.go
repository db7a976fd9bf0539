package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/infrastructure/auth"
	"github.com/garagehq/repairshop/internal/shared/constants"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a valid employee bearer token and
// stores the employee id and role in the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}
		if !claims.IsEmployee() {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("employee token required"))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEmployeeID, claims.EmployeeID)
		c.Set(constants.ContextKeyEmployeeRole, claims.Role.String())
		c.Request = c.Request.WithContext(logger.ContextWithActor(c.Request.Context(), claims.EmployeeID))

		c.Next()
	}
}

// RequireCustomer admits only customer tokens and stores the customer id in
// the gin context.
func (m *AuthMiddleware) RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}
		if !claims.IsCustomer() {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("customer token required"))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCustomerID, claims.CustomerID)
		c.Next()
	}
}

// authenticate verifies the bearer token. On failure it writes the error
// response, aborts, and returns false.
func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing authorization token"))
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid authorization header format"))
		c.Abort()
		return nil, false
	}

	claims, err := m.verifier.Verify(parts[1])
	if err != nil {
		if stderrors.Is(err, auth.ErrTokenExpired) {
			utils.ErrorResponseWithError(c, errors.NewTokenExpiredError())
		} else {
			m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
			utils.ErrorResponseWithError(c, errors.NewTokenInvalidError(""))
		}
		c.Abort()
		return nil, false
	}
	return claims, true
}

// EmployeeID returns the authenticated employee, zero when the route is
// not behind RequireAuth.
func EmployeeID(c *gin.Context) uint {
	if v, ok := c.Get(constants.ContextKeyEmployeeID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CustomerID returns the authenticated customer, zero when the route is
// not behind RequireCustomer.
func CustomerID(c *gin.Context) uint {
	if v, ok := c.Get(constants.ContextKeyCustomerID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
