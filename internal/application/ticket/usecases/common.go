package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

// translateError maps repository sentinels onto API errors. Anything it does
// not recognise is returned as is and ends up as a 500.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, ticket.ErrTicketNotFound):
		return errors.NewNotFoundError("service ticket not found")
	case stderrors.Is(err, ticket.ErrConcurrentModification):
		return errors.NewConflictError("service ticket was modified concurrently", "reload the ticket and retry")
	case stderrors.Is(err, ticket.ErrPartAlreadyLinked):
		return errors.NewStateError("parts not available", err.Error())
	case stderrors.Is(err, ticket.ErrPartNotAttachable):
		return errors.NewStateError("parts not available", err.Error())
	}
	return err
}

func validateTicketID(id uint) error {
	if id == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	return nil
}

// receiptSender notifies the customer of a close. Delivery problems are
// logged and never reach the caller.
type receiptSender struct {
	notifier ReceiptNotifier
	logger   logger.Interface
}

func (s receiptSender) send(ctx context.Context, t *ticket.ServiceTicket) {
	if s.notifier == nil || !t.IsClosed() || t.Customer().Email == "" {
		return
	}
	if err := s.notifier.NotifyTicketClosed(ctx, newClosingReceipt(t)); err != nil {
		s.logger.Warnw("failed to send closing receipt", "ticket_id", t.ID(), "error", err)
	}
}

func newClosingReceipt(t *ticket.ServiceTicket) ClosingReceipt {
	receipt := ClosingReceipt{
		TicketID:      t.ID(),
		VIN:           t.VIN(),
		CustomerName:  t.Customer().Name,
		CustomerEmail: t.Customer().Email,
		Cost:          t.Cost().StringFixed(2),
		ClosedAt:      time.Now(),
	}
	if t.ClosedAt() != nil {
		receipt.ClosedAt = *t.ClosedAt()
	}
	for _, s := range t.Services() {
		receipt.Services = append(receipt.Services, fmt.Sprintf("%s (%s)", s.ServiceType, s.BasePrice.StringFixed(2)))
	}
	for _, p := range t.Parts() {
		receipt.Parts = append(receipt.Parts, fmt.Sprintf("%s %s (%s)", p.InventoryName, p.SerialNumber, p.UnitPrice.StringFixed(2)))
	}
	return receipt
}
