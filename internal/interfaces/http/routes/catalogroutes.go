package routes

import (
	"github.com/gin-gonic/gin"

	catalogHandlers "github.com/garagehq/repairshop/internal/interfaces/http/handlers/catalog"
	"github.com/garagehq/repairshop/internal/interfaces/http/middleware"
	"github.com/garagehq/repairshop/internal/shared/authorization"
)

type CatalogRouteConfig struct {
	CustomerHandler  *catalogHandlers.CustomerHandler
	EmployeeHandler  *catalogHandlers.EmployeeHandler
	ServiceHandler   *catalogHandlers.ServiceHandler
	InventoryHandler *catalogHandlers.InventoryHandler
	AuthMiddleware   *middleware.AuthMiddleware
	Permissions      authorization.PermissionChecker
}

// SetupCatalogRoutes registers customers, employees, services, inventory
// and serialized parts. Every route requires an employee token. PATCH
// bodies are allow-listed by the handlers, so id and role never change.
func SetupCatalogRoutes(engine *gin.Engine, config *CatalogRouteConfig) {
	auth := config.AuthMiddleware.RequireAuth()
	perm := func(resource, action string) gin.HandlerFunc {
		return authorization.RequirePermission(config.Permissions, resource, action)
	}

	customers := engine.Group("/customers", auth)
	{
		customers.POST("", perm(authorization.ResourceCustomers, authorization.ActionWrite), config.CustomerHandler.Create)
		customers.GET("/:id", perm(authorization.ResourceCustomers, authorization.ActionRead), config.CustomerHandler.Get)
		customers.PATCH("/:id", perm(authorization.ResourceCustomers, authorization.ActionWrite), config.CustomerHandler.Update)
		customers.DELETE("/:id", perm(authorization.ResourceCustomers, authorization.ActionDelete), config.CustomerHandler.Delete)
	}

	// /employees/login is registered unauthenticated by SetupAuthRoutes,
	// /employees/me/tickets and /employees/by-ticket-count by SetupTicketRoutes.
	employees := engine.Group("/employees", auth)
	{
		employees.POST("", perm(authorization.ResourceEmployees, authorization.ActionWrite), config.EmployeeHandler.Create)
		employees.GET("", perm(authorization.ResourceEmployees, authorization.ActionRead), config.EmployeeHandler.List)
		employees.GET("/:id", perm(authorization.ResourceEmployees, authorization.ActionRead), config.EmployeeHandler.Get)
		employees.PATCH("/:id", perm(authorization.ResourceEmployees, authorization.ActionWrite), config.EmployeeHandler.Update)
	}

	services := engine.Group("/services", auth)
	{
		services.POST("", perm(authorization.ResourceServices, authorization.ActionWrite), config.ServiceHandler.Create)
		services.GET("", perm(authorization.ResourceServices, authorization.ActionRead), config.ServiceHandler.List)
		services.GET("/:id", perm(authorization.ResourceServices, authorization.ActionRead), config.ServiceHandler.Get)
		services.PATCH("/:id", perm(authorization.ResourceServices, authorization.ActionWrite), config.ServiceHandler.Update)
	}

	inv := config.InventoryHandler
	inventory := engine.Group("/inventory", auth)
	{
		// Serialized parts (must come BEFORE /:id)
		parts := inventory.Group("/serialized-parts")
		parts.POST("", perm(authorization.ResourceInventory, authorization.ActionWrite), inv.CreatePart)
		parts.GET("", perm(authorization.ResourceInventory, authorization.ActionRead), inv.ListParts)
		parts.GET("/:id", perm(authorization.ResourceInventory, authorization.ActionRead), inv.GetPart)
		parts.PATCH("/:id", perm(authorization.ResourceInventory, authorization.ActionWrite), inv.UpdatePartStatus)

		inventory.POST("", perm(authorization.ResourceInventory, authorization.ActionWrite), inv.Create)
		inventory.GET("", perm(authorization.ResourceInventory, authorization.ActionRead), inv.List)
		inventory.GET("/:id", perm(authorization.ResourceInventory, authorization.ActionRead), inv.Get)
		inventory.DELETE("/:id", perm(authorization.ResourceInventory, authorization.ActionDelete), inv.Delete)
	}
}
