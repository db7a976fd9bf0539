package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/garagehq/repairshop/internal/application/ticket/dto"
	"github.com/garagehq/repairshop/internal/application/ticket/services"
	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	vo "github.com/garagehq/repairshop/internal/domain/ticket/valueobjects"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

type CreateTicketCommand struct {
	CustomerID  uint
	VIN         string
	WorkSummary string
	// Status defaults to open when empty.
	Status      string
	EmployeeIDs []uint
	ServiceIDs  []uint
	PartIDs     []uint
	ActorID     uint
}

type CreateTicketUseCase struct {
	ticketRepo   ticket.Repository
	historyRepo  ticket.HistoryRepository
	customerRepo customer.Repository
	resolver     *services.AssociationResolver
	settlement   *services.CloseSettlement
	txMgr        TxManager
	assembler    *dto.Assembler
	receipts     receiptSender
	logger       logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	customerRepo customer.Repository,
	resolver *services.AssociationResolver,
	settlement *services.CloseSettlement,
	txMgr TxManager,
	assembler *dto.Assembler,
	notifier ReceiptNotifier,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:   ticketRepo,
		historyRepo:  historyRepo,
		customerRepo: customerRepo,
		resolver:     resolver,
		settlement:   settlement,
		txMgr:        txMgr,
		assembler:    assembler,
		receipts:     receiptSender{notifier: notifier, logger: logger},
		logger:       logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	log := uc.logger.WithContext(ctx)
	log.Infow("executing create ticket use case",
		"customer_id", cmd.CustomerID,
		"status", cmd.Status,
		"employee_ids", cmd.EmployeeIDs,
		"service_ids", cmd.ServiceIDs,
		"part_ids", cmd.PartIDs,
	)

	status, err := uc.validateCommand(cmd)
	if err != nil {
		log.Errorw("invalid create ticket command", "error", err)
		return nil, err
	}

	var created *ticket.ServiceTicket
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		owner, err := uc.customerRepo.GetByIDForUpdate(txCtx, cmd.CustomerID)
		if err != nil {
			if stderrors.Is(err, customer.ErrCustomerNotFound) {
				return errors.NewNotFoundError("customer not found", fmt.Sprintf("customer %d does not exist", cmd.CustomerID))
			}
			return fmt.Errorf("failed to load customer: %w", err)
		}

		t, err := ticket.NewServiceTicket(
			ticket.CustomerRef{ID: owner.ID(), Name: owner.Name(), Email: owner.Email()},
			cmd.VIN,
			cmd.WorkSummary,
			status,
		)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}

		mechanics, err := uc.resolver.Mechanics(txCtx, cmd.EmployeeIDs)
		if err != nil {
			return err
		}
		lines, err := uc.resolver.Services(txCtx, cmd.ServiceIDs)
		if err != nil {
			return err
		}
		parts, err := uc.resolver.AvailableParts(txCtx, cmd.PartIDs)
		if err != nil {
			return err
		}

		t.AddMechanics(mechanics...)
		t.AddServices(lines...)
		if err := t.AttachParts(parts...); err != nil {
			return err
		}

		if err := uc.settlement.Settle(txCtx, t); err != nil {
			return err
		}

		if err := uc.ticketRepo.Create(txCtx, t); err != nil {
			return err
		}

		entry := ticket.NewHistoryEntry(t.ID(), ticket.ActionCreated, cmd.ActorID, map[string]any{
			"status":       t.Status().String(),
			"employee_ids": t.MechanicIDs(),
			"service_ids":  t.ServiceIDs(),
			"part_ids":     t.PartIDs(),
			"cost":         t.Cost().StringFixed(2),
		})
		if err := uc.historyRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("failed to record ticket history: %w", err)
		}

		created = t
		return nil
	})
	if err != nil {
		log.Errorw("failed to create service ticket", "customer_id", cmd.CustomerID, "error", err)
		return nil, translateError(err)
	}

	log.Infow("service ticket created successfully",
		"ticket_id", created.ID(),
		"customer_id", created.CustomerID(),
		"status", created.Status(),
		"cost", created.Cost().StringFixed(2),
	)

	uc.receipts.send(ctx, created)

	return uc.assembler.ToTicketDTO(created), nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) (vo.TicketStatus, error) {
	if cmd.CustomerID == 0 {
		return "", errors.NewValidationError("customer_id is required")
	}
	if cmd.VIN == "" {
		return "", errors.NewValidationError("vin is required")
	}
	if cmd.WorkSummary == "" {
		return "", errors.NewValidationError("work_summary is required")
	}
	if cmd.Status == "" {
		return vo.StatusOpen, nil
	}
	status, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return "", errors.NewValidationError("invalid status", "must be one of open, in_progress, closed")
	}
	return status, nil
}
