package usecases

import (
	"context"
	"fmt"

	"github.com/garagehq/repairshop/internal/application/ticket/dto"
	"github.com/garagehq/repairshop/internal/application/ticket/services"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	vo "github.com/garagehq/repairshop/internal/domain/ticket/valueobjects"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/mapper"
	"github.com/garagehq/repairshop/internal/shared/utils/setutil"
)

// PatchTicketCommand lists the patchable fields. Nil and empty fields are
// left untouched.
type PatchTicketCommand struct {
	TicketID          uint
	Status            *string
	WorkSummary       *string
	AddEmployeeIDs    []uint
	RemoveEmployeeIDs []uint
	AddServiceIDs     []uint
	RemoveServiceIDs  []uint
	AddPartIDs        []uint
	RemovePartIDs     []uint
	ActorID           uint
}

func (cmd PatchTicketCommand) isEmpty() bool {
	return cmd.Status == nil && cmd.WorkSummary == nil &&
		len(cmd.AddEmployeeIDs) == 0 && len(cmd.RemoveEmployeeIDs) == 0 &&
		len(cmd.AddServiceIDs) == 0 && len(cmd.RemoveServiceIDs) == 0 &&
		len(cmd.AddPartIDs) == 0 && len(cmd.RemovePartIDs) == 0
}

type PatchTicketUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	resolver    *services.AssociationResolver
	settlement  *services.CloseSettlement
	txMgr       TxManager
	assembler   *dto.Assembler
	receipts    receiptSender
	logger      logger.Interface
}

func NewPatchTicketUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	resolver *services.AssociationResolver,
	settlement *services.CloseSettlement,
	txMgr TxManager,
	assembler *dto.Assembler,
	notifier ReceiptNotifier,
	logger logger.Interface,
) *PatchTicketUseCase {
	return &PatchTicketUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		resolver:    resolver,
		settlement:  settlement,
		txMgr:       txMgr,
		assembler:   assembler,
		receipts:    receiptSender{notifier: notifier, logger: logger},
		logger:      logger,
	}
}

func (uc *PatchTicketUseCase) Execute(ctx context.Context, cmd PatchTicketCommand) (*dto.TicketDTO, error) {
	log := uc.logger.WithContext(ctx)
	log.Infow("executing patch ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

	target, err := uc.validateCommand(cmd)
	if err != nil {
		log.Errorw("invalid patch ticket command", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	var (
		patched     *ticket.ServiceTicket
		closedByNow bool
	)
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		wasClosed := t.IsClosed()
		changes := map[string]any{}

		if target != nil {
			status := *target
			if status != t.Status() {
				changes["status"] = map[string]string{"from": t.Status().String(), "to": status.String()}
			}
			if err := t.ChangeStatus(status); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}

		if cmd.WorkSummary != nil {
			if err := t.UpdateWorkSummary(*cmd.WorkSummary); err != nil {
				return errors.NewValidationError(err.Error())
			}
			changes["work_summary"] = true
		}

		if err := uc.applyMechanics(txCtx, t, cmd, changes); err != nil {
			return err
		}
		if err := uc.applyServices(txCtx, t, cmd, changes); err != nil {
			return err
		}
		if err := uc.applyParts(txCtx, t, cmd, changes); err != nil {
			return err
		}

		if err := uc.settlement.Settle(txCtx, t); err != nil {
			return err
		}
		if t.IsClosed() {
			changes["cost"] = t.Cost().StringFixed(2)
		}

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}

		entry := ticket.NewHistoryEntry(t.ID(), ticket.ActionUpdated, cmd.ActorID, changes)
		if err := uc.historyRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("failed to record ticket history: %w", err)
		}

		patched = t
		closedByNow = !wasClosed && t.IsClosed()
		return nil
	})
	if err != nil {
		log.Errorw("failed to patch service ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, translateError(err)
	}

	log.Infow("service ticket patched successfully",
		"ticket_id", patched.ID(),
		"status", patched.Status(),
		"cost", patched.Cost().StringFixed(2),
	)

	if closedByNow {
		uc.receipts.send(ctx, patched)
	}

	return uc.assembler.ToTicketDTO(patched), nil
}

// applyMechanics removes before adding so an id in both lists ends up assigned.
func (uc *PatchTicketUseCase) applyMechanics(ctx context.Context, t *ticket.ServiceTicket, cmd PatchTicketCommand, changes map[string]any) error {
	if n := t.RemoveMechanics(cmd.RemoveEmployeeIDs...); n > 0 {
		changes["removed_employee_ids"] = setutil.Dedupe(cmd.RemoveEmployeeIDs)
	}
	refs, err := uc.resolver.Mechanics(ctx, cmd.AddEmployeeIDs)
	if err != nil {
		return err
	}
	if n := t.AddMechanics(refs...); n > 0 {
		changes["added_employee_ids"] = setutil.Dedupe(cmd.AddEmployeeIDs)
	}
	return nil
}

func (uc *PatchTicketUseCase) applyServices(ctx context.Context, t *ticket.ServiceTicket, cmd PatchTicketCommand, changes map[string]any) error {
	if n := t.RemoveServices(cmd.RemoveServiceIDs...); n > 0 {
		changes["removed_service_ids"] = setutil.Dedupe(cmd.RemoveServiceIDs)
	}
	lines, err := uc.resolver.Services(ctx, cmd.AddServiceIDs)
	if err != nil {
		return err
	}
	if n := t.AddServices(lines...); n > 0 {
		changes["added_service_ids"] = setutil.Dedupe(cmd.AddServiceIDs)
	}
	return nil
}

// applyParts detaches first, then attaches every requested part that is not
// already linked. Attachment is all or nothing.
func (uc *PatchTicketUseCase) applyParts(ctx context.Context, t *ticket.ServiceTicket, cmd PatchTicketCommand, changes map[string]any) error {
	if removed := t.DetachParts(setutil.Dedupe(cmd.RemovePartIDs)...); len(removed) > 0 {
		changes["removed_part_ids"] = mapper.MapSlice(removed, partLineID)
	}

	lines, err := uc.resolver.AvailableParts(ctx, cmd.AddPartIDs, t.PartIDs()...)
	if err != nil {
		return err
	}
	if err := t.AttachParts(lines...); err != nil {
		return err
	}
	if len(lines) > 0 {
		changes["added_part_ids"] = mapper.MapSlice(lines, partLineID)
	}
	return nil
}

func partLineID(line ticket.PartLine) uint { return line.PartID }

// validateCommand checks the command before any row is locked and returns
// the parsed target status, nil when the status is left alone.
func (uc *PatchTicketUseCase) validateCommand(cmd PatchTicketCommand) (*vo.TicketStatus, error) {
	if err := validateTicketID(cmd.TicketID); err != nil {
		return nil, err
	}
	if cmd.isEmpty() {
		return nil, errors.NewValidationError("no fields to update")
	}
	var target *vo.TicketStatus
	if cmd.Status != nil {
		status, err := vo.NewTicketStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status", "must be one of open, in_progress, closed")
		}
		target = &status
	}
	if cmd.WorkSummary != nil && *cmd.WorkSummary == "" {
		return nil, errors.NewValidationError("work_summary cannot be empty")
	}
	removing := setutil.NewUintSet(cmd.RemovePartIDs...)
	for _, id := range cmd.AddPartIDs {
		if removing.Has(id) {
			return nil, errors.NewValidationError("conflicting part ids",
				fmt.Sprintf("part %d is both added and removed", id))
		}
	}
	return target, nil
}
