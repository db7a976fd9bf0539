package usecases

import (
	"context"
	"fmt"

	"github.com/garagehq/repairshop/internal/application/ticket/dto"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

type TicketHistoryQuery struct {
	TicketID uint
}

// TicketHistoryUseCase lists the audit trail of a live ticket, oldest first.
type TicketHistoryUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	logger      logger.Interface
}

func NewTicketHistoryUseCase(ticketRepo ticket.Repository, historyRepo ticket.HistoryRepository, logger logger.Interface) *TicketHistoryUseCase {
	return &TicketHistoryUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

func (uc *TicketHistoryUseCase) Execute(ctx context.Context, query TicketHistoryQuery) ([]dto.HistoryEntryDTO, error) {
	log := uc.logger.WithContext(ctx)
	if err := validateTicketID(query.TicketID); err != nil {
		return nil, err
	}

	if _, err := uc.ticketRepo.GetByID(ctx, query.TicketID); err != nil {
		return nil, translateError(err)
	}

	entries, err := uc.historyRepo.ListByTicket(ctx, query.TicketID)
	if err != nil {
		log.Errorw("failed to list ticket history", "ticket_id", query.TicketID, "error", err)
		return nil, fmt.Errorf("failed to list ticket history: %w", err)
	}
	return dto.ToHistoryDTOs(entries), nil
}
