package http

import (
	"github.com/garagehq/repairshop/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	customerRepo *repository.CustomerRepository
	employeeRepo *repository.EmployeeRepository
	serviceRepo  *repository.ServiceRepository
	stockRepo    *repository.InventoryRepository
	partRepo     *repository.SerializedPartRepository
	ticketRepo   *repository.ServiceTicketRepository
	historyRepo  *repository.TicketHistoryRepository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		customerRepo: repository.NewCustomerRepository(c.db),
		employeeRepo: repository.NewEmployeeRepository(c.db),
		serviceRepo:  repository.NewServiceRepository(c.db),
		stockRepo:    repository.NewInventoryRepository(c.db),
		partRepo:     repository.NewSerializedPartRepository(c.db),
		ticketRepo:   repository.NewServiceTicketRepository(c.db),
		historyRepo:  repository.NewTicketHistoryRepository(c.db),
	}
}
