package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/garagehq/repairshop/docs"
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers/common"
	"github.com/garagehq/repairshop/internal/interfaces/http/middleware"
	"github.com/garagehq/repairshop/internal/interfaces/http/routes"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

const healthCheckTimeout = 2 * time.Second

// SetupRoutes installs the global middleware chain and registers every
// route group.
func (c *Container) SetupRoutes() {
	common.RegisterValidators()

	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.RequestLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.healthCheck)
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:  c.hdlrs.authHandler,
		LoginLimiter: c.svcs.loginLimiter,
		Logger:       c.log,
	})

	routes.SetupTicketRoutes(c.engine, &routes.TicketRouteConfig{
		TicketHandler:  c.hdlrs.ticketHandler,
		AuthMiddleware: c.authMiddleware,
		Permissions:    c.svcs.enforcer,
	})

	routes.SetupCatalogRoutes(c.engine, &routes.CatalogRouteConfig{
		CustomerHandler:  c.hdlrs.customerHandler,
		EmployeeHandler:  c.hdlrs.employeeHandler,
		ServiceHandler:   c.hdlrs.serviceHandler,
		InventoryHandler: c.hdlrs.inventoryHandler,
		AuthMiddleware:   c.authMiddleware,
		Permissions:      c.svcs.enforcer,
	})
}

// GetEngine returns the gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

func (c *Container) healthCheck(ctx *gin.Context) {
	sqlDB, err := c.db.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
		defer cancel()
		err = sqlDB.PingContext(pingCtx)
	}
	if err != nil {
		c.log.Warnw("health check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "", gin.H{"status": "ok"})
}
