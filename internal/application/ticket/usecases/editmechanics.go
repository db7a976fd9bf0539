package usecases

import (
	"context"
	"fmt"

	"github.com/garagehq/repairshop/internal/application/ticket/dto"
	"github.com/garagehq/repairshop/internal/application/ticket/services"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/utils/setutil"
)

type EditMechanicsCommand struct {
	TicketID          uint
	AddEmployeeIDs    []uint
	RemoveEmployeeIDs []uint
	ActorID           uint
}

// EditMechanicsUseCase removes then adds mechanics, so an id present in
// both lists ends up assigned.
type EditMechanicsUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	resolver    *services.AssociationResolver
	txMgr       TxManager
	assembler   *dto.Assembler
	logger      logger.Interface
}

func NewEditMechanicsUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	resolver *services.AssociationResolver,
	txMgr TxManager,
	assembler *dto.Assembler,
	logger logger.Interface,
) *EditMechanicsUseCase {
	return &EditMechanicsUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		resolver:    resolver,
		txMgr:       txMgr,
		assembler:   assembler,
		logger:      logger,
	}
}

func (uc *EditMechanicsUseCase) Execute(ctx context.Context, cmd EditMechanicsCommand) (*dto.TicketDTO, error) {
	log := uc.logger.WithContext(ctx)
	log.Infow("executing edit mechanics use case",
		"ticket_id", cmd.TicketID,
		"add_employee_ids", cmd.AddEmployeeIDs,
		"remove_employee_ids", cmd.RemoveEmployeeIDs,
	)

	if err := validateTicketID(cmd.TicketID); err != nil {
		return nil, err
	}
	if len(cmd.AddEmployeeIDs) == 0 && len(cmd.RemoveEmployeeIDs) == 0 {
		return nil, errors.NewValidationError("add_employee_ids or remove_employee_ids is required")
	}

	var edited *ticket.ServiceTicket
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		refs, err := uc.resolver.Mechanics(txCtx, cmd.AddEmployeeIDs)
		if err != nil {
			return err
		}
		removed := t.RemoveMechanics(cmd.RemoveEmployeeIDs...)
		added := t.AddMechanics(refs...)

		if removed+added > 0 {
			if err := uc.ticketRepo.Update(txCtx, t); err != nil {
				return err
			}
		}

		entry := ticket.NewHistoryEntry(t.ID(), ticket.ActionMechanicsEdited, cmd.ActorID, map[string]any{
			"added_employee_ids":   setutil.Dedupe(cmd.AddEmployeeIDs),
			"removed_employee_ids": setutil.Dedupe(cmd.RemoveEmployeeIDs),
			"employee_ids":         t.MechanicIDs(),
		})
		if err := uc.historyRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("failed to record ticket history: %w", err)
		}

		edited = t
		return nil
	})
	if err != nil {
		log.Errorw("failed to edit ticket mechanics", "ticket_id", cmd.TicketID, "error", err)
		return nil, translateError(err)
	}

	log.Infow("ticket mechanics edited successfully", "ticket_id", edited.ID(), "employee_ids", edited.MechanicIDs())
	return uc.assembler.ToTicketDTO(edited), nil
}
