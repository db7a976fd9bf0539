package usecases

import (
	"context"
	"fmt"

	"github.com/garagehq/repairshop/internal/application/ticket/dto"
	"github.com/garagehq/repairshop/internal/application/ticket/services"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

type AddPartCommand struct {
	TicketID uint
	PartID   uint
	ActorID  uint
}

// AddPartUseCase installs one part right away: the link is created already
// consumed, whatever the ticket status. A closed ticket is re-priced.
type AddPartUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	resolver    *services.AssociationResolver
	adjuster    *services.InventoryAdjuster
	settlement  *services.CloseSettlement
	txMgr       TxManager
	assembler   *dto.Assembler
	logger      logger.Interface
}

func NewAddPartUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	resolver *services.AssociationResolver,
	adjuster *services.InventoryAdjuster,
	settlement *services.CloseSettlement,
	txMgr TxManager,
	assembler *dto.Assembler,
	logger logger.Interface,
) *AddPartUseCase {
	return &AddPartUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		resolver:    resolver,
		adjuster:    adjuster,
		settlement:  settlement,
		txMgr:       txMgr,
		assembler:   assembler,
		logger:      logger,
	}
}

func (uc *AddPartUseCase) Execute(ctx context.Context, cmd AddPartCommand) (*dto.TicketDTO, error) {
	log := uc.logger.WithContext(ctx)
	log.Infow("executing add part use case", "ticket_id", cmd.TicketID, "part_id", cmd.PartID)

	if err := validateTicketID(cmd.TicketID); err != nil {
		return nil, err
	}
	if cmd.PartID == 0 {
		return nil, errors.NewValidationError("part ID is required")
	}

	var updated *ticket.ServiceTicket
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		line, err := uc.resolver.SinglePart(txCtx, cmd.PartID)
		if err != nil {
			return err
		}
		if err := t.AttachParts(line); err != nil {
			return errors.NewBadRequestError("part is not available", err.Error())
		}
		if err := uc.adjuster.ConsumePart(txCtx, t, line.PartID); err != nil {
			return err
		}
		if err := uc.settlement.Settle(txCtx, t); err != nil {
			return err
		}

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}

		entry := ticket.NewHistoryEntry(t.ID(), ticket.ActionPartAdded, cmd.ActorID, map[string]any{
			"part_id":       line.PartID,
			"serial_number": line.SerialNumber,
			"inventory_id":  line.InventoryID,
		})
		if err := uc.historyRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("failed to record ticket history: %w", err)
		}

		updated = t
		return nil
	})
	if err != nil {
		log.Errorw("failed to add part to ticket", "ticket_id", cmd.TicketID, "part_id", cmd.PartID, "error", err)
		return nil, translateError(err)
	}

	log.Infow("part added to ticket successfully", "ticket_id", updated.ID(), "part_id", cmd.PartID)
	return uc.assembler.ToTicketDTO(updated), nil
}
