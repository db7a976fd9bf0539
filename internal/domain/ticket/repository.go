package ticket

import (
	"context"
	"errors"

	vo "github.com/garagehq/repairshop/internal/domain/ticket/valueobjects"
)

var (
	ErrTicketNotFound = errors.New("service ticket not found")
	// ErrConcurrentModification means the row version changed since it was read.
	ErrConcurrentModification = errors.New("service ticket was modified concurrently")
	ErrPartNotAttachable      = errors.New("parts not available")
	ErrPartAlreadyLinked      = errors.New("part is already linked to a ticket")
	ErrTicketNotClosed        = errors.New("cost can only be set on a closed ticket")
)

type Repository interface {
	// Create inserts the ticket and all of its links.
	Create(ctx context.Context, t *ServiceTicket) error
	// Update writes the ticket when its version still matches and replaces
	// its links. It returns ErrConcurrentModification on a stale version.
	Update(ctx context.Context, t *ServiceTicket) error
	// GetByID excludes soft-deleted tickets.
	GetByID(ctx context.Context, id uint) (*ServiceTicket, error)
	// GetByIDForUpdate is GetByID with the ticket row locked for the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*ServiceTicket, error)
	List(ctx context.Context, filter Filter) ([]*ServiceTicket, int64, error)
	// CountByCustomer counts every ticket of the customer, soft-deleted included.
	CountByCustomer(ctx context.Context, customerID uint) (int64, error)
	// RankMechanicsByTicketCount lists every mechanic assigned to at least one
	// live ticket, busiest first.
	RankMechanicsByTicketCount(ctx context.Context) ([]MechanicWorkload, error)
}

// MechanicWorkload is a mechanic with the number of live tickets they are
// assigned to.
type MechanicWorkload struct {
	Mechanic    MechanicRef
	TicketCount int64
}

type Filter struct {
	Status     *vo.TicketStatus
	CustomerID *uint
	// MechanicID keeps only tickets the employee is assigned to.
	MechanicID *uint
	Page       int
	Limit      int
	SortBy     string
	SortDesc   bool
}

type HistoryRepository interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*HistoryEntry, error)
}
