package http

import (
	"fmt"

	authApp "github.com/garagehq/repairshop/internal/application/auth"
	catalogApp "github.com/garagehq/repairshop/internal/application/catalog"
	ticketdto "github.com/garagehq/repairshop/internal/application/ticket/dto"
	ticketServices "github.com/garagehq/repairshop/internal/application/ticket/services"
	ticketUsecases "github.com/garagehq/repairshop/internal/application/ticket/usecases"
	"github.com/garagehq/repairshop/internal/domain/billing"
	"github.com/garagehq/repairshop/internal/shared/db"
)

// allUseCases holds the application services behind the handlers.
type allUseCases struct {
	// Tickets
	createTicketUC  *ticketUsecases.CreateTicketUseCase
	patchTicketUC   *ticketUsecases.PatchTicketUseCase
	deleteTicketUC  *ticketUsecases.DeleteTicketUseCase
	editMechanicsUC *ticketUsecases.EditMechanicsUseCase
	addPartUC       *ticketUsecases.AddPartUseCase
	getTicketUC     *ticketUsecases.GetTicketUseCase
	listTicketsUC   *ticketUsecases.ListTicketsUseCase
	historyUC       *ticketUsecases.TicketHistoryUseCase
	workloadUC      *ticketUsecases.MechanicWorkloadUseCase

	// Catalog
	customerService  *catalogApp.CustomerService
	employeeService  *catalogApp.EmployeeService
	serviceCatalog   *catalogApp.ServiceCatalog
	inventoryService *catalogApp.InventoryService
	partService      *catalogApp.PartService

	// Auth
	loginUC         *authApp.LoginUseCase
	customerLoginUC *authApp.CustomerLoginUseCase
}

func (c *Container) initUseCases() error {
	calculator, err := billing.NewCalculator(c.cfg.Billing.TaxMultiplier)
	if err != nil {
		return fmt.Errorf("invalid billing.tax_multiplier: %w", err)
	}

	r := c.repos
	txMgr := db.NewTransactionManager(c.db)
	assembler := ticketdto.NewAssembler(c.svcs.markdown)
	resolver := ticketServices.NewAssociationResolver(r.employeeRepo, r.serviceRepo, r.partRepo)
	adjuster := ticketServices.NewInventoryAdjuster(r.partRepo, r.stockRepo, c.log.Named("inventory"))
	settlement := ticketServices.NewCloseSettlement(calculator, adjuster)
	ticketLog := c.log.Named("tickets")

	c.ucs = &allUseCases{
		createTicketUC: ticketUsecases.NewCreateTicketUseCase(
			r.ticketRepo, r.historyRepo, r.customerRepo, resolver, settlement, txMgr, assembler, c.svcs.notifier, ticketLog,
		),
		patchTicketUC: ticketUsecases.NewPatchTicketUseCase(
			r.ticketRepo, r.historyRepo, resolver, settlement, txMgr, assembler, c.svcs.notifier, ticketLog,
		),
		deleteTicketUC: ticketUsecases.NewDeleteTicketUseCase(r.ticketRepo, r.historyRepo, txMgr, ticketLog),
		editMechanicsUC: ticketUsecases.NewEditMechanicsUseCase(
			r.ticketRepo, r.historyRepo, resolver, txMgr, assembler, ticketLog,
		),
		addPartUC: ticketUsecases.NewAddPartUseCase(
			r.ticketRepo, r.historyRepo, resolver, adjuster, settlement, txMgr, assembler, ticketLog,
		),
		getTicketUC:   ticketUsecases.NewGetTicketUseCase(r.ticketRepo, assembler, ticketLog),
		listTicketsUC: ticketUsecases.NewListTicketsUseCase(r.ticketRepo, assembler, ticketLog),
		historyUC:     ticketUsecases.NewTicketHistoryUseCase(r.ticketRepo, r.historyRepo, ticketLog),
		workloadUC:    ticketUsecases.NewMechanicWorkloadUseCase(r.ticketRepo, ticketLog),

		customerService:  catalogApp.NewCustomerService(r.customerRepo, r.ticketRepo, txMgr, c.svcs.hasher, c.log.Named("customers")),
		employeeService:  catalogApp.NewEmployeeService(r.employeeRepo, c.svcs.hasher, c.log.Named("employees")),
		serviceCatalog:   catalogApp.NewServiceCatalog(r.serviceRepo, c.log.Named("services")),
		inventoryService: catalogApp.NewInventoryService(r.stockRepo, c.log.Named("inventory")),
		partService:      catalogApp.NewPartService(r.partRepo, r.stockRepo, c.log.Named("inventory")),

		loginUC:         authApp.NewLoginUseCase(r.employeeRepo, c.svcs.hasher, c.svcs.jwt, c.log.Named("auth")),
		customerLoginUC: authApp.NewCustomerLoginUseCase(r.customerRepo, c.svcs.hasher, c.svcs.jwt, c.log.Named("auth")),
	}
	return nil
}
