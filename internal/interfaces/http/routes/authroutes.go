package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/infrastructure/ratelimit"
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers"
	"github.com/garagehq/repairshop/internal/interfaces/http/middleware"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

type AuthRouteConfig struct {
	AuthHandler  *handlers.AuthHandler
	LoginLimiter ratelimit.Limiter
	Logger       logger.Interface
}

// SetupAuthRoutes registers the unauthenticated login endpoints. Both share
// one per-client attempt budget.
func SetupAuthRoutes(engine *gin.Engine, config *AuthRouteConfig) {
	limit := middleware.RateLimit(config.LoginLimiter, config.Logger)
	engine.POST("/employees/login", limit, config.AuthHandler.Login)
	engine.POST("/customers/login", limit, config.AuthHandler.CustomerLogin)
}
