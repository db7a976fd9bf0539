package usecases

import (
	"context"
	"time"

	"github.com/garagehq/repairshop/internal/application/ticket/dto"
)

// TxManager runs fn in one database transaction carried by ctx.
type TxManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ClosingReceipt is what the customer is told when their ticket closes.
type ClosingReceipt struct {
	TicketID      uint
	VIN           string
	CustomerName  string
	CustomerEmail string
	Cost          string
	ClosedAt      time.Time
	Services      []string
	Parts         []string
}

// ReceiptNotifier delivers closing receipts. It is called after commit.
type ReceiptNotifier interface {
	NotifyTicketClosed(ctx context.Context, receipt ClosingReceipt) error
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type PatchTicketExecutor interface {
	Execute(ctx context.Context, cmd PatchTicketCommand) (*dto.TicketDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type EditMechanicsExecutor interface {
	Execute(ctx context.Context, cmd EditMechanicsCommand) (*dto.TicketDTO, error)
}

type AddPartExecutor interface {
	Execute(ctx context.Context, cmd AddPartCommand) (*dto.TicketDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type TicketHistoryExecutor interface {
	Execute(ctx context.Context, query TicketHistoryQuery) ([]dto.HistoryEntryDTO, error)
}

type MechanicWorkloadExecutor interface {
	Execute(ctx context.Context) ([]dto.MechanicWorkloadDTO, error)
}
