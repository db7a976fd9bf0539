package usecases

import (
	"context"
	"fmt"

	"github.com/garagehq/repairshop/internal/application/ticket/dto"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

// MechanicWorkloadUseCase ranks employees by the number of live tickets they
// are assigned to, busiest first. Employees with no tickets are left out.
type MechanicWorkloadUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewMechanicWorkloadUseCase(ticketRepo ticket.Repository, logger logger.Interface) *MechanicWorkloadUseCase {
	return &MechanicWorkloadUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *MechanicWorkloadUseCase) Execute(ctx context.Context) ([]dto.MechanicWorkloadDTO, error) {
	rows, err := uc.ticketRepo.RankMechanicsByTicketCount(ctx)
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to rank mechanics by ticket count", "error", err)
		return nil, fmt.Errorf("failed to rank mechanics: %w", err)
	}
	return dto.ToMechanicWorkloadDTOs(rows), nil
}
