package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/garagehq/repairshop/internal/interfaces/http/handlers/ticket"
	"github.com/garagehq/repairshop/internal/interfaces/http/middleware"
	"github.com/garagehq/repairshop/internal/shared/authorization"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	AuthMiddleware *middleware.AuthMiddleware
	Permissions    authorization.PermissionChecker
}

// SetupTicketRoutes registers the ticket endpoints. Reads are public,
// mutations and the audit trail require an employee token. The per-caller
// views live under /employees and /customers.
func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	h := config.TicketHandler
	perm := func(action string) gin.HandlerFunc {
		return authorization.RequirePermission(config.Permissions, authorization.ResourceTickets, action)
	}
	auth := config.AuthMiddleware.RequireAuth()

	tickets := engine.Group("/tickets")
	{
		// Collection operations (no ID parameter)
		tickets.POST("", auth, perm(authorization.ActionWrite), h.CreateTicket)
		tickets.GET("", h.ListTickets)

		// Specific action endpoints
		tickets.PUT("/:id/edit", auth, perm(authorization.ActionWrite), h.EditMechanics)
		tickets.POST("/:id/add-part/:part_id", auth, perm(authorization.ActionWrite), h.AddPart)
		tickets.GET("/:id/history", auth, perm(authorization.ActionRead), h.GetHistory)

		// Generic parameterized routes
		tickets.GET("/:id", h.GetTicket)
		tickets.PATCH("/:id", auth, perm(authorization.ActionWrite), h.PatchTicket)
		tickets.DELETE("/:id", auth, perm(authorization.ActionDelete), h.DeleteTicket)
	}

	engine.GET("/employees/me/tickets", auth, perm(authorization.ActionRead), h.ListMyTickets)
	engine.GET("/employees/by-ticket-count", auth,
		authorization.RequirePermission(config.Permissions, authorization.ResourceEmployees, authorization.ActionRead),
		h.MechanicWorkload)
	engine.GET("/customers/me/tickets", config.AuthMiddleware.RequireCustomer(), h.ListCustomerTickets)
}
