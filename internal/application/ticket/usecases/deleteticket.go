package usecases

import (
	"context"
	"fmt"

	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/mapper"
)

type DeleteTicketCommand struct {
	TicketID uint
	ActorID  uint
}

// DeleteTicketUseCase soft-deletes a ticket. Mechanic, service and consumed
// part links are kept for audit; unconsumed parts are released for reuse.
type DeleteTicketUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	txMgr       TxManager
	logger      logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	txMgr TxManager,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	log := uc.logger.WithContext(ctx)
	log.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

	if err := validateTicketID(cmd.TicketID); err != nil {
		return err
	}

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		released, err := t.SoftDelete()
		if err != nil {
			return err
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}

		var changes map[string]any
		if len(released) > 0 {
			changes = map[string]any{"released_part_ids": mapper.MapSlice(released, partLineID)}
		}
		entry := ticket.NewHistoryEntry(t.ID(), ticket.ActionDeleted, cmd.ActorID, changes)
		if err := uc.historyRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("failed to record ticket history: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Errorw("failed to delete service ticket", "ticket_id", cmd.TicketID, "error", err)
		return translateError(err)
	}

	log.Infow("service ticket deleted successfully", "ticket_id", cmd.TicketID)
	return nil
}
