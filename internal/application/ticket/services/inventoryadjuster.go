package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

// InventoryAdjuster applies the physical side effects of installing a part:
// the part becomes used and its inventory loses one unit of stock. Each
// link is consumed at most once, tracked by PartLine.Consumed.
type InventoryAdjuster struct {
	parts  inventory.PartRepository
	stock  inventory.Repository
	logger logger.Interface
}

func NewInventoryAdjuster(parts inventory.PartRepository, stock inventory.Repository, logger logger.Interface) *InventoryAdjuster {
	return &InventoryAdjuster{
		parts:  parts,
		stock:  stock,
		logger: logger,
	}
}

// ConsumePending consumes every linked part of t that is not yet consumed.
func (a *InventoryAdjuster) ConsumePending(ctx context.Context, t *ticket.ServiceTicket) error {
	for _, line := range t.PendingConsumption() {
		if err := a.consume(ctx, t, line); err != nil {
			return err
		}
	}
	return nil
}

// ConsumePart consumes a single linked part. Already consumed parts are skipped.
func (a *InventoryAdjuster) ConsumePart(ctx context.Context, t *ticket.ServiceTicket, partID uint) error {
	for _, line := range t.PendingConsumption() {
		if line.PartID == partID {
			return a.consume(ctx, t, line)
		}
	}
	return nil
}

func (a *InventoryAdjuster) consume(ctx context.Context, t *ticket.ServiceTicket, line ticket.PartLine) error {
	if err := a.parts.MarkUsed(ctx, line.PartID); err != nil {
		if stderrors.Is(err, inventory.ErrPartNotAvailable) {
			return errors.NewStateError("parts not available",
				fmt.Sprintf("part %d (%s) is no longer available", line.PartID, line.SerialNumber))
		}
		return fmt.Errorf("failed to mark part %d used: %w", line.PartID, err)
	}

	if err := a.stock.DecrementStock(ctx, line.InventoryID); err != nil {
		return fmt.Errorf("failed to decrement stock for inventory %d: %w", line.InventoryID, err)
	}

	if err := t.MarkPartConsumed(line.PartID); err != nil {
		return err
	}

	a.logger.Debugw("part consumed", "ticket_id", t.ID(), "part_id", line.PartID, "inventory_id", line.InventoryID)
	return nil
}
