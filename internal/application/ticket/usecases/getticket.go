package usecases

import (
	"context"

	"github.com/garagehq/repairshop/internal/application/ticket/dto"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	assembler  *dto.Assembler
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, assembler *dto.Assembler, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		assembler:  assembler,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	log := uc.logger.WithContext(ctx)
	if err := validateTicketID(query.TicketID); err != nil {
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		log.Errorw("failed to get service ticket", "ticket_id", query.TicketID, "error", err)
		return nil, translateError(err)
	}

	return uc.assembler.ToTicketDTO(t), nil
}
