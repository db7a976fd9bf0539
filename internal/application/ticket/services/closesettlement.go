package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/garagehq/repairshop/internal/domain/ticket"
)

// CostCalculator prices a ticket from its service and part prices.
type CostCalculator interface {
	Compute(servicePrices, partPrices []decimal.Decimal) decimal.Decimal
}

// CloseSettlement runs the closing side effects for a ticket whose
// resulting status is closed: pending parts are consumed and the cost is
// recomputed from the current links. It does nothing for open tickets.
type CloseSettlement struct {
	calculator CostCalculator
	adjuster   *InventoryAdjuster
}

func NewCloseSettlement(calculator CostCalculator, adjuster *InventoryAdjuster) *CloseSettlement {
	return &CloseSettlement{
		calculator: calculator,
		adjuster:   adjuster,
	}
}

func (s *CloseSettlement) Settle(ctx context.Context, t *ticket.ServiceTicket) error {
	if !t.IsClosed() {
		return nil
	}
	if err := s.adjuster.ConsumePending(ctx, t); err != nil {
		return err
	}
	return t.ApplyCost(s.calculator.Compute(t.ServicePrices(), t.PartPrices()))
}
