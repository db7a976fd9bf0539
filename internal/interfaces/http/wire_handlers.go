package http

import (
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers"
	catalogHandlers "github.com/garagehq/repairshop/internal/interfaces/http/handlers/catalog"
	ticketHandlers "github.com/garagehq/repairshop/internal/interfaces/http/handlers/ticket"
	"github.com/garagehq/repairshop/internal/interfaces/http/middleware"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler      *handlers.AuthHandler
	ticketHandler    *ticketHandlers.TicketHandler
	customerHandler  *catalogHandlers.CustomerHandler
	employeeHandler  *catalogHandlers.EmployeeHandler
	serviceHandler   *catalogHandlers.ServiceHandler
	inventoryHandler *catalogHandlers.InventoryHandler
}

func (c *Container) initHandlers() {
	u := c.ucs
	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(u.loginUC, u.customerLoginUC, c.log),
		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createTicketUC,
			u.patchTicketUC,
			u.deleteTicketUC,
			u.editMechanicsUC,
			u.addPartUC,
			u.getTicketUC,
			u.listTicketsUC,
			u.historyUC,
			u.workloadUC,
			c.log,
		),
		customerHandler:  catalogHandlers.NewCustomerHandler(u.customerService, c.log),
		employeeHandler:  catalogHandlers.NewEmployeeHandler(u.employeeService, c.log),
		serviceHandler:   catalogHandlers.NewServiceHandler(u.serviceCatalog, c.log),
		inventoryHandler: catalogHandlers.NewInventoryHandler(u.inventoryService, u.partService, c.log),
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.svcs.jwt, c.log)
}
